// Package metrics exposes Prometheus collectors for generation outcomes and
// HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels used by the generation and image counters.
const (
	OutcomeSuccess = "success"
	OutcomeMock    = "mock"
	OutcomeError   = "error"
)

// BackendUnknown labels generation requests naming a backend that does not
// exist. Caller input never becomes a label value.
const BackendUnknown = "unknown"

// Metrics owns its registry so several instances can live in one test binary.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	generationsTotal   *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	imageRequestsTotal *prometheus.CounterVec
	httpRequestsTotal  *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		generationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_generations_total",
			Help: "Recipe generation attempts by backend and outcome",
		}, []string{"backend", "outcome"}),
		generationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recipe_generation_duration_seconds",
			Help:    "Time spent producing a recipe, including mock fallback",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),
		imageRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_image_requests_total",
			Help: "Image analysis and generation requests by outcome",
		}, []string{"kind", "outcome"}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status_code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

func (m *Metrics) ObserveGeneration(backend, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.generationsTotal.WithLabelValues(backend, outcome).Inc()
	m.generationDuration.WithLabelValues(backend).Observe(d.Seconds())
}

func (m *Metrics) ObserveImage(kind, outcome string) {
	if m == nil {
		return
	}
	m.imageRequestsTotal.WithLabelValues(kind, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
