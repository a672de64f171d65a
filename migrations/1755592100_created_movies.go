package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("movies")
		collection.Fields.Add(
			&core.TextField{
				Name:     "title",
				Required: true,
			},
			&core.TextField{
				Name: "description",
			},
			&core.TextField{
				Name: "genre",
			},
			&core.URLField{
				Name: "posterUrl",
			},
			&core.NumberField{
				Name:    "durationMinutes",
				OnlyInt: true,
				Min:     types.Pointer(0.0),
			},
			&core.BoolField{
				Name: "available",
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
		collection, err := app.FindCollectionByNameOrId("movies")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
