package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("userHistory")
		collection.Fields.Add(
			&core.TextField{
				Name:     "operationId",
				Required: true,
			},
			&core.TextField{
				Name:     "userId",
				Required: true,
			},
			&core.TextField{
				Name:     "movieId",
				Required: true,
			},
			&core.TextField{
				Name:     "showtimeId",
				Required: true,
			},
			&core.SelectField{
				Name:      "action",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"purchased", "cancelled"},
			},
			&core.DateField{
				Name:     "actionDate",
				Required: true,
			},
			&core.TextField{
				Name: "details",
			},
			&core.URLField{
				Name: "moviePosterUrl",
			},
			&core.NumberField{
				Name:    "numberOfTickets",
				OnlyInt: true,
				Min:     types.Pointer(0.0),
			},
			&core.NumberField{
				Name: "totalAmount",
			},
			// Denormalized so clients can tell whether the screening
			// has finished without extra lookups.
			&core.DateField{
				Name: "showtimeStartTime",
			},
			&core.NumberField{
				Name:    "durationMinutes",
				OnlyInt: true,
				Min:     types.Pointer(0.0),
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)

		collection.AddIndex("idx_userHistory_operation", true, "operationId", "")
		collection.AddIndex("idx_userHistory_user_date", false, "userId, actionDate", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("userHistory")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
