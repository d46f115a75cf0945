package bookings

import (
	"errors"
	"net/http"

	"parkly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	spotID, err := uuid.Parse(req.SpotID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid spot ID", nil, nil)
		return
	}
	requesterID, err := uuid.Parse(req.RequesterID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid requester ID", nil, nil)
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), spotID, requesterID, req.StartTime, req.EndTime, req.Price)
	if err != nil {
		c.respondError(ctx, "Failed to create booking", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		c.respondError(ctx, "Failed to get booking", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// GetRequesterBookings handles GET /api/v1/bookings/requester/:requesterId
func (c *Controller) GetRequesterBookings(ctx *gin.Context) {
	requesterID, err := uuid.Parse(ctx.Param("requesterId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid requester ID", nil, nil)
		return
	}

	result, err := c.service.GetRequesterBookings(ctx.Request.Context(), requesterID)
	if err != nil {
		c.respondError(ctx, "Failed to get bookings", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings": result,
		"count":    len(result),
	}, nil)
}

// Scan handles POST /api/v1/bookings/scan
func (c *Controller) Scan(ctx *gin.Context) {
	var req ScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	result, err := c.service.Scan(ctx.Request.Context(), bookingID)
	if err != nil {
		c.respondError(ctx, "Failed to scan booking", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking scanned successfully", result, nil)
}

// ExtendBooking handles POST /api/v1/bookings/:id/extend
func (c *Controller) ExtendBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req ExtendBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.ExtendBooking(ctx.Request.Context(), bookingID, req.ExtraHours)
	if err != nil {
		c.respondError(ctx, "Failed to extend booking", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking extended successfully", result, nil)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req CancelBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	requesterID, err := uuid.Parse(req.RequesterID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid requester ID", nil, nil)
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), bookingID, requesterID)
	if err != nil {
		c.respondError(ctx, "Failed to cancel booking", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

// respondError maps domain errors onto HTTP status codes. Unexpected
// persistence failures become a generic server error; nothing is swallowed.
func (c *Controller) respondError(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, ErrInvalidWindow):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, message, nil, err.Error())
	case errors.Is(err, ErrSpotUnavailable):
		response.RespondJSON(ctx, "error", http.StatusConflict, message, nil, err.Error())
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrSpotNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, message, nil, err.Error())
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrAlreadyCheckedIn),
		errors.Is(err, ErrAlreadyCompleted):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, message, nil, err.Error())
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, message, nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, err.Error())
	}
}
