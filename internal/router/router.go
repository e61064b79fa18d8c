package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/careops/hospital-platform/internal/config"
	"github.com/careops/hospital-platform/internal/handler/health"
	"github.com/careops/hospital-platform/internal/middleware"
	"github.com/careops/hospital-platform/pkg/metrics"
)

// New assembles the shared engine every service starts from: recovery,
// request ids, structured logging, metrics, rate limiting and the caller
// identity set by the edge.
func New(service string, cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(m),
		middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		middleware.Timeout(cfg.Server.WriteTimeout),
		middleware.Identity(),
	)

	health.NewHandler(service).RegisterRoutes(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))

	return engine
}
