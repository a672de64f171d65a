package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("theaters")
		collection.Fields.Add(
			&core.TextField{
				Name:     "name",
				Required: true,
			},
			&core.NumberField{
				Name:     "capacity",
				Required: true,
				OnlyInt:  true,
				Min:      types.Pointer(1.0),
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

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("theaters")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
