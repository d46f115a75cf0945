package bookings

import (
	"parkly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking lifecycle routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles("DRIVER", "OWNER", "ADMIN"))
	{
		bookings.POST("", controller.CreateBooking)                             // POST /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)                             // GET  /api/v1/bookings/:id
		bookings.GET("/requester/:requesterId", controller.GetRequesterBookings) // GET  /api/v1/bookings/requester/:requesterId
		bookings.POST("/scan", controller.Scan)                                 // POST /api/v1/bookings/scan
		bookings.POST("/:id/extend", controller.ExtendBooking)                  // POST /api/v1/bookings/:id/extend
		bookings.POST("/:id/cancel", controller.CancelBooking)                  // POST /api/v1/bookings/:id/cancel
	}
}
