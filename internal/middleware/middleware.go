package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/careops/hospital-platform/internal/gateway"
	"github.com/careops/hospital-platform/pkg/metrics"
)

const (
	HeaderRequestID = "X-Request-ID"

	// ContextUserName is where Identity stores the caller set by the edge.
	ContextUserName = "user_name"
)

// RequestID tags every request, reusing the inbound id when present so
// traces survive the hop through the gateway.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(HeaderRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Logger emits one structured line per request.
func Logger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetString(HeaderRequestID)).
			Msg("request")
	}
}

// Metrics records request counts and latency per route.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.RequestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= http.StatusInternalServerError {
			m.ErrorTotal.WithLabelValues(c.Request.Method, route, "server_error").Inc()
		}
	}
}

// RateLimit applies a process-wide token bucket.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			return
		}
		c.Next()
	}
}

// Timeout bounds handler execution via the request context. Handlers that
// respect ctx cancellation unwind on their own.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Identity exposes the gateway-verified caller to handlers. Services sit
// behind the gateway, so an absent header just means an internal or
// unauthenticated path.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := c.GetHeader(gateway.HeaderUserName); user != "" {
			c.Set(ContextUserName, user)
		}
		c.Next()
	}
}
