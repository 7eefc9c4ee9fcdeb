package copytrade

import (
	"spreadedge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles copy trading routes
type Router struct {
	controller *Controller
	auth       *middleware.Authenticator
}

func NewRouter(controller *Controller, auth *middleware.Authenticator) *Router {
	return &Router{controller: controller, auth: auth}
}

// SetupRoutes registers all copy trading routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	copyTrade := rg.Group("/copy-trade")
	{
		copyTrade.GET("/traders", r.auth.OptionalAuth(), r.controller.GetTraders)
		copyTrade.POST("/toggle", r.auth.RequireAuth(), r.controller.ToggleFollow)
	}
}
