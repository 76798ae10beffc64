package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the Scene backend.
var Metrics = struct {
	LogsCreated       prometheus.Counter
	NotificationsPush *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	DBPoolActive      prometheus.GaugeFunc
	DBPoolIdle        prometheus.GaugeFunc
	RequestsInFlight  prometheus.Gauge
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	UpstreamDuration  *prometheus.HistogramVec
	WebsocketClients  prometheus.GaugeFunc
	SceneBotMessages  prometheus.Counter
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
// clientCount reports the number of connected realtime clients.
func InitMetrics(pool *pgxpool.Pool, clientCount func() int) {
	Metrics.LogsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scene_logs_created_total",
			Help: "Total diary logs created.",
		},
	)

	Metrics.NotificationsPush = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scene_notifications_pushed_total",
			Help: "Total notifications pushed over websockets, by kind.",
		},
		[]string{"kind"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scene_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "scene_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scene_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scene_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	Metrics.UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scene_upstream_request_duration_seconds",
			Help:    "Duration of upstream API calls, by service.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	Metrics.SceneBotMessages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scene_scenebot_messages_total",
			Help: "Total SceneBot chat completions served.",
		},
	)

	if clientCount != nil {
		Metrics.WebsocketClients = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "scene_websocket_clients",
				Help: "Number of connected realtime clients.",
			},
			func() float64 {
				return float64(clientCount())
			},
		)
		prometheus.MustRegister(Metrics.WebsocketClients)
	}

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "scene_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "scene_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.LogsCreated,
		Metrics.NotificationsPush,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.UpstreamDuration,
		Metrics.SceneBotMessages,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/users/"):
		return "/api/users/:userId"
	case strings.HasPrefix(path, "/api/logs/"):
		return "/api/logs/:logId"
	case strings.HasPrefix(path, "/api/lists/"):
		return "/api/lists/:listId"
	case strings.HasPrefix(path, "/api/polls/"):
		return "/api/polls/:pollId"
	case strings.HasPrefix(path, "/api/movies/"):
		return "/api/movies/:tmdbId"
	case strings.HasPrefix(path, "/api/notifications/"):
		return "/api/notifications/:notificationId"
	default:
		return path
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
