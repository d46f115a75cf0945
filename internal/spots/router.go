package spots

import (
	"parkly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSpotRoutes configures all spot catalog routes
func SetupSpotRoutes(rg *gin.RouterGroup, controller *Controller) {
	spots := rg.Group("/spots")
	{
		// Public browsing
		spots.GET("", controller.GetAllSpots)
		spots.GET("/:id", controller.GetSpot)

		// Catalog mutations require an authenticated owner or admin
		protected := spots.Group("")
		protected.Use(middleware.JWTAuth(), middleware.RequireRoles("OWNER", "ADMIN"))
		{
			protected.POST("", controller.CreateSpot)
			protected.PUT("/:id", controller.UpdateSpot)
			protected.DELETE("/:id", controller.DeleteSpot)
		}
	}
}
