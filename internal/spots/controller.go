package spots

import (
	"errors"
	"net/http"

	"parkly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateSpot handles POST /api/v1/spots
func (c *Controller) CreateSpot(ctx *gin.Context) {
	var req CreateSpotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	spot, err := c.service.CreateSpot(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create spot", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Spot created successfully", spot, nil)
}

// GetSpot handles GET /api/v1/spots/:id
func (c *Controller) GetSpot(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid spot ID", nil, nil)
		return
	}

	spot, err := c.service.GetSpotByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Spot not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get spot", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Spot retrieved successfully", spot, nil)
}

// GetAllSpots handles GET /api/v1/spots
func (c *Controller) GetAllSpots(ctx *gin.Context) {
	result, err := c.service.GetAllSpots(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list spots", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Spots retrieved successfully", gin.H{
		"spots": result,
		"count": len(result),
	}, nil)
}

// UpdateSpot handles PUT /api/v1/spots/:id
func (c *Controller) UpdateSpot(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid spot ID", nil, nil)
		return
	}

	var req UpdateSpotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	spot, err := c.service.UpdateSpot(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Spot not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update spot", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Spot updated successfully", spot, nil)
}

// DeleteSpot handles DELETE /api/v1/spots/:id
func (c *Controller) DeleteSpot(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid spot ID", nil, nil)
		return
	}

	if err := c.service.DeleteSpot(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Spot not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete spot", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Spot deleted successfully", nil, nil)
}
