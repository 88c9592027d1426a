package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	// ValidationsTotal counts full-document pipeline runs by terminal stage
	// and outcome (passed, rejected, error).
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validations_total",
			Help: "Full-document validation runs by stage and outcome",
		},
		[]string{"stage", "outcome"},
	)

	// DictionaryFallbackTotal counts lookups that degraded to the heuristic.
	DictionaryFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dictionary_fallback_total",
			Help: "Dictionary lookups degraded to the heuristic fallback",
		},
	)

	// OracleFallbackTotal counts quality evaluations that used the
	// deterministic word-count fallback verdict.
	OracleFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oracle_fallback_total",
			Help: "Quality evaluations that fell back to the word-count verdict",
		},
	)

	OracleRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "oracle_request_duration_seconds",
			Help:    "Quality oracle request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	QualityScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "evaluation_quality_score",
			Help:    "Distribution of content quality scores (0-100)",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	RefundRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refund_requests_total",
			Help: "Refund request state transitions",
		},
		[]string{"status"},
	)
)

// InitMetrics registers all collectors once per process.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(ValidationsTotal)
	prometheus.MustRegister(DictionaryFallbackTotal)
	prometheus.MustRegister(OracleFallbackTotal)
	prometheus.MustRegister(OracleRequestDuration)
	prometheus.MustRegister(QualityScoreHistogram)
	prometheus.MustRegister(RefundRequestsTotal)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// RecordValidation tracks a pipeline run ending at stage with outcome.
func RecordValidation(stage, outcome string) {
	ValidationsTotal.WithLabelValues(stage, outcome).Inc()
}

// RecordRefundTransition tracks a refund request entering status.
func RecordRefundTransition(status string) {
	RefundRequestsTotal.WithLabelValues(status).Inc()
}
