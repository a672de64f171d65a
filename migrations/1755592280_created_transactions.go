package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("transactions")
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
				Name:     "showtimeId",
				Required: true,
			},
			&core.TextField{
				Name:     "movieId",
				Required: true,
			},
			&core.NumberField{
				Name:     "numberOfTickets",
				Required: true,
				OnlyInt:  true,
				Min:      types.Pointer(1.0),
			},
			// Signed: positive for purchases, negative for refunds.
			&core.NumberField{
				Name: "totalAmount",
			},
			&core.DateField{
				Name:     "transactionDate",
				Required: true,
			},
			&core.SelectField{
				Name:      "transactionType",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"purchase", "cancellation"},
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"completed"},
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

		// The unique operation id is what makes recorder retries
		// overwrite instead of duplicate.
		collection.AddIndex("idx_transactions_operation", true, "operationId", "")
		collection.AddIndex("idx_transactions_user", false, "userId", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("transactions")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
