package recommendations

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the public recommendation endpoint
func SetupRoutes(rg *gin.RouterGroup, controller Controller) {
	rg.GET("/recommendations", controller.GetRecommendations)
}
