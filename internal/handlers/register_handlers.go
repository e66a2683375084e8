package handlers

import (
	"github.com/SscSPs/reconciliation_engine/cmd/docs"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/middleware"
	"github.com/SscSPs/reconciliation_engine/internal/platform/config"
	"github.com/SscSPs/reconciliation_engine/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// financeOnly guards the routes that move money or change reported figures.
var financeOnly = middleware.RequireRole(utils.RoleFinance)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// rateLimiter may be nil to disable rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	// API keys are checked first so machine clients skip the bearer token
	chain := []gin.HandlerFunc{
		middleware.APIKeyAuth(cfg.APIKeys),
		middleware.AuthMiddleware(cfg.JWTSecret),
	}
	if rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(rateLimiter))
	}
	v1 := r.Group("/api/v1", chain...)

	registerCashRoutes(v1, services.CashBalance)
	registerCommissionRoutes(v1, newCommissionHandler(services.Commissions, services.Settlement, cfg.BusinessLocation))
	registerReportRoutes(v1, services.Reports, services.Overrides)
	registerImportRoutes(v1, services.Import)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
