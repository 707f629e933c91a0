package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysesSubmittedTotal prometheus.Counter
	reportsRenderedTotal   prometheus.Counter
	newsProxyTotal         *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unmasked",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "unmasked",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "unmasked",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analysesSubmittedTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "unmasked",
			Subsystem: "api",
			Name:      "analyses_submitted_total",
			Help:      "Total accepted video uploads.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	reportsRenderedTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "unmasked",
			Subsystem: "api",
			Name:      "reports_rendered_total",
			Help:      "Total PDF reports rendered.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	newsProxyTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unmasked",
			Subsystem: "api",
			Name:      "news_proxy_total",
			Help:      "Total upstream news proxy calls by outcome.",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(requestTotal, requestDuration, requestInFlight, analysesSubmittedTotal, reportsRenderedTotal, newsProxyTotal)

	return &HTTPServerMetrics{
		registry:               registry,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		requestInFlight:        requestInFlight,
		analysesSubmittedTotal: analysesSubmittedTotal,
		reportsRenderedTotal:   reportsRenderedTotal,
		newsProxyTotal:         newsProxyTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) ObserveRequest(service, method, path string, status int, elapsed time.Duration) {
	m.requestTotal.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(service, method, path).Observe(elapsed.Seconds())
}

func (m *HTTPServerMetrics) RequestStarted() {
	m.requestInFlight.Inc()
}

func (m *HTTPServerMetrics) RequestFinished() {
	m.requestInFlight.Dec()
}

func (m *HTTPServerMetrics) AnalysisSubmitted() {
	m.analysesSubmittedTotal.Inc()
}

func (m *HTTPServerMetrics) ReportRendered() {
	m.reportsRenderedTotal.Inc()
}

func (m *HTTPServerMetrics) NewsProxyCall(service, outcome string) {
	m.newsProxyTotal.WithLabelValues(service, outcome).Inc()
}
