package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"cineapp/blob"
	"cineapp/config"
	"cineapp/handlers"
	_ "cineapp/migrations"
	"cineapp/services"
	"cineapp/store"
	"cineapp/utils"
)

func main() {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Redis backs the catalog cache; the app still works without it.
	var redisClient *redis.Client
	if client, err := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB); err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", "error", err)
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	// Blob store collaborator for review media
	blobStore := blob.NewHTTPStore(cfg.BlobEndpoint, cfg.BlobTimeout)

	// Document store and services
	documents := store.NewPBStore(app)
	inventoryService := services.NewInventoryService(documents, logger)
	ledgerService := services.NewLedgerService(documents)
	ticketService := services.NewTicketService(documents, inventoryService, ledgerService, logger)
	catalogService := services.NewCatalogService(documents, redisClient, cfg.CatalogCacheTTL, logger)
	historyService := services.NewHistoryService(documents)
	reviewService := services.NewReviewService(documents, blobStore, logger)

	// Handlers
	ticketHandler := handlers.NewTicketHandler(documents, ticketService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Catalog endpoints
		e.Router.GET("/api/catalog/movies", catalogHandler.ListMovies)
		e.Router.GET("/api/catalog/movies/{movieId}", catalogHandler.MovieDetails)
		e.Router.GET("/api/catalog/movies/{movieId}/reviews", reviewHandler.ListMovieReviews)

		// Ticket endpoints
		e.Router.POST("/api/tickets/purchase", ticketHandler.Purchase)
		e.Router.POST("/api/tickets/cancel", ticketHandler.Cancel)

		// History endpoint
		e.Router.GET("/api/history", historyHandler.ListHistory)

		// Review endpoint
		e.Router.POST("/api/reviews", reviewHandler.SubmitReview)

		if cfg.EnableMetrics {
			metricsHandler := promhttp.Handler()
			e.Router.GET("/metrics", func(e *core.RequestEvent) error {
				metricsHandler.ServeHTTP(e.Response, e.Request)
				return nil
			})
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if redisClient != nil {
				if err := utils.RedisHealthCheck(redisClient); err != nil {
					return e.JSON(http.StatusServiceUnavailable, map[string]string{
						"status": "degraded",
						"error":  err.Error(),
					})
				}
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		logger.Info("server routes registered", "environment", cfg.Environment)

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
