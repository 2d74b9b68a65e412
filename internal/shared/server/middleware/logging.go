package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wellbeing-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	StrategyKey   = "strategy"
	AnalysisIDKey = "analysisId"
	FallbackKey   = "fallbackReason"
)

// Logging emits a structured log per request. Request bodies are never logged.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for _, key := range []struct{ ctx, log string }{
			{StrategyKey, "strategy"},
			{AnalysisIDKey, "analysis_id"},
			{FallbackKey, "fallback_reason"},
		} {
			if v := c.GetString(key.ctx); v != "" {
				fields[key.log] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}
