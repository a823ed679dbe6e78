package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/portfolio_tracker/cmd/docs"
	portssvc "github.com/SscSPs/portfolio_tracker/internal/core/ports/services"
	"github.com/SscSPs/portfolio_tracker/internal/middleware"
	"github.com/SscSPs/portfolio_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	apiLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("api rate limit: %w", err)
	}
	loginLimiter, err := middleware.NewRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	public := r.Group("/api/v1")
	registerAuthRoutes(public, middleware.RateLimit(loginLimiter), services.User, services.Token)

	setupAPIV1Routes(r, cfg, middleware.RateLimit(apiLimiter), services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	limit gin.HandlerFunc,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", limit, middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerUserRoutes(v1, service.User)
	registerSecurityRoutes(v1, service.Security, service.Price)
	registerExchangeRateRoutes(v1, service.ExchangeRate)
	registerReportingRoutes(v1, service.Reporting)

	account := registerAccountRoutes(v1, service.Account)
	registerActivityRoutes(account, service.Activity)
	registerPortfolioRoutes(account, service.Account, service.Portfolio)
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
