package signals

import (
	"time"

	"spreadedge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles signal routes
type Router struct {
	controller *Controller
	timeout    time.Duration
}

func NewRouter(controller *Controller, timeout time.Duration) *Router {
	return &Router{controller: controller, timeout: timeout}
}

// SetupRoutes registers all signal routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	signals := rg.Group("/signals")
	if r.timeout > 0 {
		signals.Use(middleware.Timeout(r.timeout))
	}
	signals.GET("", r.controller.GetSignals)
}
