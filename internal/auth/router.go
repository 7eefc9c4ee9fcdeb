package auth

import (
	"spreadedge/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	auth       *middleware.Authenticator
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, auth *middleware.Authenticator) *Router {
	return &Router{
		controller: controller,
		auth:       auth,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	// OAuth2 password flow paths the clients already use
	rg.POST("/token", authRouter.controller.Login)
	rg.POST("/refresh-token", authRouter.auth.RequireAnyToken(), authRouter.controller.RefreshToken)

	rg.POST("/auth/register", authRouter.controller.Register)

	rg.GET("/users/me", authRouter.auth.RequireAuth(), authRouter.controller.GetMe)
}
