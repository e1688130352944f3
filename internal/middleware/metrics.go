// Package middleware provides the gin middleware of the mock NGO Connect service:
// request IDs, Prometheus HTTP metrics, structured access logs, and actor/role checks
// driven by the identity headers the client attaches.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngoconnect/ngoconnect/internal/telemetry"
)

// noRoute labels requests that matched no route so raw URLs never become label values
const noRoute = "<no-route>"

// MetricsMiddleware records http_requests_total{method,path,status} and
// http_request_duration_seconds{method,path} for every request. path is the gin route
// template (e.g. /ngo/pendingRequirements/:email), never the raw URL.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = noRoute
		}

		method := c.Request.Method
		telemetry.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		telemetry.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
