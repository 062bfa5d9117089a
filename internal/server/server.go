package server

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"venuebook/config"
	"venuebook/internal/assets"
	"venuebook/internal/handlers"
	"venuebook/internal/middleware"
	"venuebook/internal/services"
	"venuebook/internal/store"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	assetCfg, err := config.LoadAssetConfig()
	if err != nil {
		return fmt.Errorf("failed to load asset config: %v", err)
	}
	assetStore, err := config.InitAssetStore(context.Background(), assetCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize asset store: %v", err)
	}

	middleware.InitPrometheus()

	r := gin.Default()
	r.Use(middleware.Metrics())

	setupRoutes(r, db, assetStore)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, assetStore assets.Store) {
	entityStore := store.New(db)
	assetManager := assets.NewManager(assetStore)

	venueHandler := handlers.NewVenueHandler(services.NewVenueService(entityStore, assetManager))
	eventHandler := handlers.NewEventHandler(services.NewEventService(entityStore))
	bookingHandler := handlers.NewBookingHandler(services.NewBookingService(entityStore))

	v1 := r.Group("/v1")
	{
		venues := v1.Group("/venues")
		{
			venues.GET("", venueHandler.List)
			venues.GET("/:id", venueHandler.Get)
			venues.POST("", venueHandler.Create)
			venues.PUT("/:id", venueHandler.Update)
			venues.DELETE("/:id", venueHandler.Delete)
		}

		events := v1.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.GET("/:id", eventHandler.Get)
			events.POST("", eventHandler.Create)
			events.PUT("/:id", eventHandler.Update)
			events.DELETE("/:id", eventHandler.Delete)
		}

		bookings := v1.Group("/bookings")
		{
			bookings.GET("", bookingHandler.List)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.POST("", bookingHandler.Create)
			bookings.PUT("/:id", bookingHandler.Update)
			bookings.DELETE("/:id", bookingHandler.Delete)
		}
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
