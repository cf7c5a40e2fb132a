package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/transactions_app/cmd/docs"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/middleware"
	"github.com/SscSPs/transactions_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// gatherer backs /metrics; pass nil to leave the route out.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	gatherer prometheus.Gatherer,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	r.GET("/", getHome)

	// Add health check route
	r.GET("/health", healthHandler(cfg, services.Health))

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	setupAPIV1Routes(r, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, service *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerReportRoutes(v1, service.Reporting)
	registerTransactionRoutes(v1, service.Transaction)
	registerCurrencyRoutes(v1)
}

// healthHandler answers OK, pinging the store first when cfg.EnableDBCheck is set.
func healthHandler(cfg *config.Config, health portssvc.HealthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.EnableDBCheck && health != nil {
			if err := health.CheckHealth(c.Request.Context()); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Health check failed", slog.String("error", err.Error()))
				c.String(http.StatusServiceUnavailable, "UNAVAILABLE")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
