package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wellbeing-backend/internal/audit"
	"wellbeing-backend/internal/services/health"
	"wellbeing-backend/internal/shared/config"
	"wellbeing-backend/internal/shared/metrics"
	"wellbeing-backend/internal/shared/server/middleware"
	"wellbeing-backend/internal/shared/server/respond"
	"wellbeing-backend/internal/wellbeing"
)

// RouterDeps carries the handlers mounted on the router.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *wellbeing.Handler
	AuditHandler    *audit.Handler
	Health          *health.Service
	Limiter         *middleware.RateLimiter
}

const (
	rateGroupDefault = "DEFAULT"
	rateGroupAnalyze = "ANALYZE"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: rateGroupDefault,
			GroupFor:     rateGroupFor,
			Limiter:      deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				rateGroupAnalyze: middleware.PerMinute(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		respond.OK(c, deps.Health.Status(c.Request.Context()))
	})
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if cfg.Env == "dev" && deps.AuditHandler != nil {
		dev := api.Group("/dev")
		deps.AuditHandler.RegisterDevRoutes(dev)
	}

	return r
}

// rateGroupFor puts analysis submissions in their own bucket; other routes are unlimited.
func rateGroupFor(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/analyze" {
		return rateGroupAnalyze
	}
	return rateGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
