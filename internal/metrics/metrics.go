// Package metrics exposes Prometheus instruments for the API.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	ServiceName string
	Environment string
}

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	registry         *prometheus.Registry
	documentsSaved   *prometheus.CounterVec
	stockRejections  prometheus.Counter
	shareResolutions *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

func New(cfg Config) *Metrics {
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "billbook"
	}

	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		documentsSaved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "billbook_documents_saved_total",
				Help:        "Documents saved, by kind.",
				ConstLabels: constLabels,
			},
			[]string{"kind"}, // invoice | bill
		),
		stockRejections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "billbook_stock_rejections_total",
				Help:        "Bills rejected because a product lacked stock.",
				ConstLabels: constLabels,
			},
		),
		shareResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "billbook_share_resolutions_total",
				Help:        "Share link lookups, by outcome.",
				ConstLabels: constLabels,
			},
			[]string{"result"}, // ok | not_found | expired
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "billbook_http_request_duration_seconds",
				Help:        "HTTP request latency by route pattern.",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.documentsSaved,
		m.stockRejections,
		m.shareResolutions,
		m.requestDuration,
	)

	return m
}

func (m *Metrics) DocumentSaved(kind string) {
	if m == nil {
		return
	}

	m.documentsSaved.WithLabelValues(kind).Inc()
}

func (m *Metrics) StockRejected() {
	if m == nil {
		return
	}

	m.stockRejections.Inc()
}

func (m *Metrics) ShareResolved(result string) {
	if m == nil {
		return
	}

	m.shareResolutions.WithLabelValues(result).Inc()
}

// Middleware records request latency labelled with the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests and additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
