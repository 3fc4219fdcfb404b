package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/kevinmilly/yt-breeze/internal/service"
)

// Metrics holds all Prometheus collectors for the analyzer backend.
var Metrics = struct {
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	AnalysesServed   prometheus.CounterFunc
	CacheHits        prometheus.CounterFunc
	CacheMisses      prometheus.CounterFunc
	QuotaRejections  prometheus.CounterFunc
	ModelCalls       prometheus.CounterFunc
	ModelErrors      prometheus.CounterFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup. The
// counter collectors read live values from the service's stats block, the
// same source the /api/stats endpoint serves.
func InitMetrics(stats *service.Stats) {
	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ytbreeze_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint, method and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ytbreeze_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.AnalysesServed = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ytbreeze_analyses_served_total",
			Help: "Total analyses returned to clients, cached or fresh.",
		},
		func() float64 { return float64(stats.AnalysesServed.Load()) },
	)

	Metrics.CacheHits = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ytbreeze_cache_hits_total",
			Help: "Total analysis cache hits.",
		},
		func() float64 { return float64(stats.CacheHits.Load()) },
	)

	Metrics.CacheMisses = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ytbreeze_cache_misses_total",
			Help: "Total analysis cache misses.",
		},
		func() float64 { return float64(stats.CacheMisses.Load()) },
	)

	Metrics.QuotaRejections = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ytbreeze_quota_rejections_total",
			Help: "Total requests rejected by the free-tier quota.",
		},
		func() float64 { return float64(stats.QuotaRejections.Load()) },
	)

	Metrics.ModelCalls = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ytbreeze_model_calls_total",
			Help: "Total completion calls sent to the model provider.",
		},
		func() float64 { return float64(stats.ModelCalls.Load()) },
	)

	Metrics.ModelErrors = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ytbreeze_model_errors_total",
			Help: "Total failed completion calls or unparseable model outputs.",
		},
		func() float64 { return float64(stats.ModelErrors.Load()) },
	)

	prometheus.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.AnalysesServed,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.QuotaRejections,
		Metrics.ModelCalls,
		Metrics.ModelErrors,
	)
}

// MetricsMiddleware records request duration and in-flight count.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers.
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(path, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
