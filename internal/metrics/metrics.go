package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	fetchesTotal     *prometheus.CounterVec
	fallbacksTotal   prometheus.Counter
	signalsPublished *prometheus.CounterVec
	dispatchesTotal  *prometheus.CounterVec
	refreshDuration  prometheus.Histogram
	streamEvents     *prometheus.CounterVec
	outcomesTotal    *prometheus.CounterVec
	executionsTotal  *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_signal_fetches_total",
			Help: "Total number of signal fetches by serving source",
		},
		[]string{"source"},
	)
	r.fallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pulse_source_fallbacks_total",
			Help: "Total number of remote failures absorbed by the mock fallback",
		},
	)
	r.signalsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_signals_published_total",
			Help: "Total number of signals published to the latest slot",
		},
		[]string{"direction", "status"},
	)
	r.dispatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_notifier_dispatches_total",
			Help: "Total number of notifier dispatch attempts",
		},
		[]string{"notifier", "status"},
	)
	r.refreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pulse_refresh_duration_seconds",
			Help:    "Refresh cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.streamEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_stream_events_total",
			Help: "Total number of realtime stream events received",
		},
		[]string{"event"},
	)
	r.outcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_outcomes_total",
			Help: "Total number of reported trade outcomes",
		},
		[]string{"result"},
	)
	r.executionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_executions_total",
			Help: "Total number of execute requests",
		},
		[]string{"status"},
	)

	reg.MustRegister(r.fetchesTotal)
	reg.MustRegister(r.fallbacksTotal)
	reg.MustRegister(r.signalsPublished)
	reg.MustRegister(r.dispatchesTotal)
	reg.MustRegister(r.refreshDuration)
	reg.MustRegister(r.streamEvents)
	reg.MustRegister(r.outcomesTotal)
	reg.MustRegister(r.executionsTotal)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordFetch records a signal fetch served by the given source.
func (r *Registry) RecordFetch(source string) {
	r.fetchesTotal.WithLabelValues(source).Inc()
	if source == "mock" {
		r.fallbacksTotal.Inc()
	}
}

// RecordPublish records a signal published to the latest slot.
func (r *Registry) RecordPublish(direction, status string) {
	r.signalsPublished.WithLabelValues(direction, status).Inc()
}

// RecordDispatch records a notifier dispatch attempt.
func (r *Registry) RecordDispatch(notifier, status string) {
	r.dispatchesTotal.WithLabelValues(notifier, status).Inc()
}

// RecordRefresh records a refresh cycle duration.
func (r *Registry) RecordRefresh(duration float64) {
	r.refreshDuration.Observe(duration)
}

// RecordStreamEvent records a realtime stream event.
func (r *Registry) RecordStreamEvent(event string) {
	r.streamEvents.WithLabelValues(event).Inc()
}

// RecordOutcome records a reported trade outcome.
func (r *Registry) RecordOutcome(result string) {
	r.outcomesTotal.WithLabelValues(result).Inc()
}

// RecordExecution records an execute request.
func (r *Registry) RecordExecution(status string) {
	r.executionsTotal.WithLabelValues(status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
