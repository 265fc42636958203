// Package http assembles the gin engine and runs the API server.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeCheck/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeCheck/internal/interfaces/http/handlers"
	"github.com/turtacn/InfringeCheck/internal/interfaces/http/middleware"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

// RouterConfig aggregates the handler and middleware dependencies required to
// construct the route tree.  Nil handlers leave their routes unregistered.
type RouterConfig struct {
	// Handlers
	AnalysisHandler *handlers.AnalysisHandler
	ReportHandler   *handlers.ReportHandler
	HealthHandler   *handlers.HealthHandler

	// Middleware
	CORSAllowedOrigins []string
	Logging            middleware.LoggingConfig
	RequestRecorder    middleware.RequestRecorder

	// Infrastructure
	Logger         logging.Logger
	MetricsHandler http.Handler
}

// NewRouter constructs the route tree.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestID(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RequestLogging(logger, cfg.Logging),
	)
	if cfg.RequestRecorder != nil {
		r.Use(middleware.Metrics(cfg.RequestRecorder))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Code:    errors.ErrCodeNotFound.String(),
			Message: "Route not found",
		})
	})

	if h := cfg.HealthHandler; h != nil {
		r.GET("/healthz", h.Liveness)
		r.GET("/readyz", h.Readiness)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api/v1")
	if h := cfg.AnalysisHandler; h != nil {
		api.POST("/analyze-infringement", h.Analyze)
	}
	if h := cfg.ReportHandler; h != nil {
		api.POST("/save-report", h.Save)
		api.GET("/reports", h.List)
		api.GET("/reports/:id", h.Get)
		api.GET("/reports/:id/view", h.View)
	}
	return r
}

//Personal.AI order the ending
