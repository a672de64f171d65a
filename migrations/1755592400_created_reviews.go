package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("reviews")
		collection.Fields.Add(
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
			&core.NumberField{
				Name:     "rating",
				Required: true,
				OnlyInt:  true,
				Min:      types.Pointer(1.0),
				Max:      types.Pointer(5.0),
			},
			&core.TextField{
				Name:     "comment",
				Required: true,
			},
			&core.DateField{
				Name:     "reviewDate",
				Required: true,
			},
			&core.URLField{
				Name: "mediaUrl",
			},
			&core.SelectField{
				Name:      "mediaType",
				MaxSelect: 1,
				Values:    []string{"photo", "video", "audio"},
			},
			&core.TextField{
				Name: "movieTitle",
			},
			&core.URLField{
				Name: "moviePosterUrl",
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

		collection.AddIndex("idx_reviews_movie", false, "movieId", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("reviews")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
