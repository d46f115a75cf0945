package recommendations

import (
	"net/http"

	"parkly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetRecommendations(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetRecommendations handles GET /recommendations?lat=..&lng=..&mode=..
func (ctrl *controller) GetRecommendations(c *gin.Context) {
	var query RecommendationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Latitude and longitude are required", nil, err.Error())
		return
	}

	mode := Mode(query.Mode)
	if query.Mode == "" {
		mode = ModeBest
	}

	results, err := ctrl.service.Recommend(c.Request.Context(), *query.Lat, *query.Lng, mode)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to compute recommendations", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Recommendations computed successfully", ListResponse{
		Mode:  mode,
		Count: len(results),
		Spots: results,
	}, nil)
}
