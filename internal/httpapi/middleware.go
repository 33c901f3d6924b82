package httpapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/jayaganeshk/shoptrace/internal/telemetry"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func loggingMiddleware(serviceName string) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logrus.WithFields(logrus.Fields{
			"service":    serviceName,
			"method":     param.Method,
			"path":       param.Path,
			"status":     param.StatusCode,
			"latency":    param.Latency,
			"client_ip":  param.ClientIP,
			"session_id": param.Request.Header.Get("x-session-id"),
		}).Info("HTTP request")
		return ""
	})
}

// identityMiddleware builds the request's TraceContext from the x-session-id
// header and the bearer token's claims, then binds it to the request context
// so the enrichment processor stamps it on every span. Token verification is
// the gateway's job; claims are read as-is and default to "unknown".
func identityMiddleware() gin.HandlerFunc {
	parser := jwt.NewParser()
	return func(c *gin.Context) {
		tc := telemetry.TraceContext{
			SessionID: c.GetHeader("x-session-id"),
		}

		auth := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			claims := jwt.MapClaims{}
			if _, _, err := parser.ParseUnverified(token, claims); err == nil {
				tc.UserID, _ = claims["sub"].(string)
				tc.Email, _ = claims["email"].(string)
				if username, ok := claims["cognito:username"].(string); ok {
					tc.Username = username
				} else {
					tc.Username, _ = claims["username"].(string)
				}
			}
		}

		c.Request = c.Request.WithContext(telemetry.WithTraceContext(c.Request.Context(), tc))
		c.Next()
	}
}
