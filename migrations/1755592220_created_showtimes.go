package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("showtimes")
		collection.Fields.Add(
			&core.TextField{
				Name:     "movieId",
				Required: true,
			},
			&core.TextField{
				Name:     "theaterId",
				Required: true,
			},
			&core.DateField{
				Name:     "startTime",
				Required: true,
			},
			&core.DateField{
				Name: "endTime",
			},
			&core.NumberField{
				Name: "price",
				Min:  types.Pointer(0.0),
			},
			// Bounded below at the schema level too; the upper bound
			// (theater capacity) is enforced by the inventory service.
			&core.NumberField{
				Name:    "availableSeats",
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

		collection.AddIndex("idx_showtimes_movie_start", false, "movieId, startTime", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("showtimes")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
