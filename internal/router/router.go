package router

import (
	"log"

	"github.com/gin-gonic/gin"

	"invoiceqc/internal/config"
	"invoiceqc/internal/handler"
	"invoiceqc/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger *log.Logger,
	qcH *handler.QCHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	invoices := v1.Group("/invoices")
	invoices.POST("/validate", qcH.ValidateBatch)
	invoices.POST("/extract-and-validate", qcH.ExtractAndValidate)

	return r
}
