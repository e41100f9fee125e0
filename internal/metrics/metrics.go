package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kejani_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "kejani_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "path"},
	)

	StkPushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kejani_mpesa_stk_pushes_total",
			Help: "Total number of STK push attempts by outcome",
		},
		[]string{"outcome"},
	)

	AlertDigestsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kejani_search_alert_digests_sent_total",
			Help: "Total number of saved-search digest emails sent",
		},
	)
)

// Middleware records a counter and latency histogram per request. Routes
// are labeled by their registered pattern, not the raw URL, so path
// parameters do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
