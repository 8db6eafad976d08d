package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeNoResults = "no_results"
	OutcomeError     = "error"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_ideas_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_ideas_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Search metrics
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_ideas_searches_total",
			Help: "Total number of recipe searches by outcome",
		},
		[]string{"outcome"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_ideas_search_duration_seconds",
			Help:    "Latency of recipe service lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	staleResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_ideas_stale_responses_total",
			Help: "Search responses discarded because a newer search was issued",
		},
	)

	// Rate limiting metrics
	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_ideas_rate_limit_rejects_total",
			Help: "Total number of requests rejected due to rate limiting",
		},
	)

	liveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_ideas_live_sessions",
			Help: "Number of live search sessions held in memory",
		},
	)
)

// ObserveSearch records one completed lookup.
func ObserveSearch(outcome string, elapsed time.Duration) {
	searchesTotal.WithLabelValues(outcome).Inc()
	searchDuration.Observe(elapsed.Seconds())
}

// StaleResponseDiscarded counts a response dropped by the sequence check.
func StaleResponseDiscarded() { staleResponses.Inc() }

// RateLimitRejected counts a request rejected by the rate limiter.
func RateLimitRejected() { rateLimitRejects.Inc() }

// SetLiveSessions sets the live session gauge.
func SetLiveSessions(n int) { liveSessions.Set(float64(n)) }

// Middleware instruments gin requests. The route template is used as the
// path label so query strings and IDs do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
