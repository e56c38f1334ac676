package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"places-api/cache"
	"places-api/config"
	"places-api/events"
	"places-api/handlers"
	"places-api/middleware"
	"places-api/provider"
	"places-api/routes"
	"places-api/services"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()
	log := config.NewLogger()

	db, err := config.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	// Cache tier: redis when configured, in-memory otherwise
	var cacheStore cache.Store
	if redisClient := config.NewRedis(cfg); redisClient != nil {
		cacheStore = cache.NewRedisStore(redisClient)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, using in-memory cache")
		cacheStore = cache.NewMemoryStore()
	}

	// Event side-channel: kafka when configured, dropped otherwise
	var publisher events.Publisher = events.NopPublisher{}
	if writer := config.NewKafkaWriter(cfg); writer != nil {
		publisher = events.NewKafkaPublisher(writer, log)
	} else {
		log.Warn().Msg("KAFKA_BROKERS not set, place events disabled")
	}

	providerClient := provider.NewHTTPClient(cfg.PlacesBaseURL, cfg.PlacesAPIKey, log)

	resolver := services.NewResolver(db, cacheStore, providerClient, publisher, cfg.CacheTTL, log)
	claimService := services.NewClaimService(db, resolver, log)
	favoriteService := services.NewFavoriteService(db, resolver, log)
	ratingService := services.NewRatingService(db, resolver, log)
	reviewService := services.NewReviewService(db, log)

	auth := middleware.NewAuth(cfg.JWTSecret)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Places API",
			"version": "1.0.0",
		})
	})

	routes.Setup(r, auth, routes.Handlers{
		Auth:       handlers.NewAuthHandler(db, auth),
		Places:     handlers.NewPlacesHandler(resolver),
		Claims:     handlers.NewClaimHandler(claimService),
		Engagement: handlers.NewEngagementHandler(favoriteService, ratingService),
		Reviews:    handlers.NewReviewsHandler(reviewService),
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
