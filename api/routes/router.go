// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"parkly/internal/bookings"
	"parkly/internal/recommendations"
	"parkly/internal/shared/config"
	"parkly/internal/shared/database"
	"parkly/internal/spots"
	"parkly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB

	eventPublisher bookings.EventPublisher

	// Shared across route groups for dependency injection
	cacheService cache.Service
	spotService  spots.Service
	bookingRepo  bookings.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
	}
}

// SetEventPublisher injects the booking event stream (optional)
func (r *Router) SetEventPublisher(publisher bookings.EventPublisher) {
	r.eventPublisher = publisher
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Spot routes first: the booking and recommendation groups
		// depend on the spot service
		r.setupSpotRoutes(api)
		r.setupBookingRoutes(api)
		r.setupRecommendationRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "parkly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "parkly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupSpotRoutes configures spot catalog routes
func (r *Router) setupSpotRoutes(rg *gin.RouterGroup) {
	spotRepo := spots.NewRepository(r.db.GetPostgreSQL())
	spotService := spots.NewService(spotRepo)

	if r.cacheService != nil {
		spotService.SetCacheService(r.cacheService, r.config.Redis.SpotCacheTTL)
	}

	// Keep for injection into bookings and recommendations
	r.spotService = spotService

	spotController := spots.NewController(spotService)
	spots.SetupSpotRoutes(rg, spotController)
}

// setupBookingRoutes configures booking lifecycle routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.spotService, r.config.Booking)

	if r.eventPublisher != nil {
		bookingService.SetEventPublisher(r.eventPublisher)
	}

	// Keep for occupancy derivation in recommendations
	r.bookingRepo = bookingRepo

	bookingController := bookings.NewController(bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupRecommendationRoutes configures the spot recommendation endpoint
func (r *Router) setupRecommendationRoutes(rg *gin.RouterGroup) {
	recService := recommendations.NewService(r.spotService, r.bookingRepo, r.config.Recommendation)

	if r.cacheService != nil {
		recService.SetCacheService(r.cacheService, r.config.Redis.OccupancyCacheTTL)
	}

	recController := recommendations.NewController(recService)
	recommendations.SetupRoutes(rg, recController)
}
