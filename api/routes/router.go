// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "spreadedge/docs"
	"spreadedge/internal/auth"
	"spreadedge/internal/copytrade"
	"spreadedge/internal/market"
	"spreadedge/internal/shared/config"
	"spreadedge/internal/shared/database"
	"spreadedge/internal/shared/middleware"
	"spreadedge/internal/signals"
	"spreadedge/internal/token"
	"spreadedge/pkg/cache"
	"spreadedge/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the stores and clients chosen at startup
type Dependencies struct {
	DB        *database.DB
	Tokens    *token.Service
	Cache     cache.Service
	Users     auth.Repository
	Follows   copytrade.FollowStore
	Provider  market.Provider
	Publisher signals.Publisher
	Log       *logger.Logger
}

// Router holds all route dependencies
type Router struct {
	config *config.Config
	deps   Dependencies
	auth   *middleware.Authenticator

	marketService  market.Service
	signalsService signals.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, deps Dependencies) *Router {
	return &Router{
		config: cfg,
		deps:   deps,
		auth:   middleware.NewAuthenticator(deps.Tokens, deps.Log),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	engine.GET(r.config.GetAPIBasePath()+"/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupMarketRoutes(api)
		r.setupSignalRoutes(api)
		r.setupCopyTradeRoutes(api)
	}
}

// Close drains background work started by the routes
func (r *Router) Close() error {
	if r.signalsService != nil {
		return r.signalsService.Close()
	}
	return nil
}

// Health godoc
//
//	@Summary	Backend health
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	503	{object}	map[string]interface{}
//	@Router		/health [get]
func (r *Router) health(c *gin.Context) {
	checks := r.deps.DB.HealthCheck(c.Request.Context())

	code, status := http.StatusOK, "healthy"
	if !database.Healthy(checks) {
		code, status = http.StatusServiceUnavailable, "unhealthy"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now(),
		"service":   "spreadedge-backend",
	})
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to SpreadEdge API"})
	})

	engine.GET("/health", r.health)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "operational",
			"api_version":     r.config.APIVersion,
			"market_provider": r.deps.Provider.Name(),
			"timestamp":       time.Now(),
		})
	})
}

// setupAuthRoutes configures token and account routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.deps.Users, r.deps.Tokens, r.deps.Log)
	authController := auth.NewController(authService, r.deps.Log)
	auth.NewRouter(authController, r.auth).SetupRoutes(rg)
}

// setupMarketRoutes configures quote routes
func (r *Router) setupMarketRoutes(rg *gin.RouterGroup) {
	serviceCfg := market.DefaultServiceConfig()
	serviceCfg.CacheTTL = r.config.Market.CacheTTL

	breaker := market.NewCircuitBreaker(market.DefaultBreakerConfig(r.deps.Provider.Name()), r.deps.Log)
	r.marketService = market.NewService(r.deps.Provider, r.deps.Cache, breaker, serviceCfg, r.deps.Log)

	marketController := market.NewController(r.marketService, r.deps.Log)
	market.NewRouter(marketController, r.config.RequestTimeout).SetupRoutes(rg)
}

// setupSignalRoutes configures signal routes. Requires the market service.
func (r *Router) setupSignalRoutes(rg *gin.RouterGroup) {
	r.signalsService = signals.NewService(r.marketService, signals.NewGenerator(), r.deps.Publisher, r.deps.Log)
	signals.NewRouter(signals.NewController(r.signalsService), r.config.RequestTimeout).SetupRoutes(rg)
}

// setupCopyTradeRoutes configures copy trading routes
func (r *Router) setupCopyTradeRoutes(rg *gin.RouterGroup) {
	copyService := copytrade.NewService(copytrade.NewRoster(), r.deps.Follows, r.deps.Log)
	copytrade.NewRouter(copytrade.NewController(copyService, r.deps.Log), r.auth).SetupRoutes(rg)
}
