package market

import (
	"time"

	"spreadedge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles market data routes
type Router struct {
	controller *Controller
	timeout    time.Duration
}

func NewRouter(controller *Controller, timeout time.Duration) *Router {
	return &Router{controller: controller, timeout: timeout}
}

// SetupRoutes registers all market routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	market := rg.Group("/market")
	if r.timeout > 0 {
		market.Use(middleware.Timeout(r.timeout))
	}
	{
		market.GET("/analysis", r.controller.GetAnalysis)
		market.GET("/:class", r.controller.GetQuotes)
	}
}
