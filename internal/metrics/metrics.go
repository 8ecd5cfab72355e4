package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nyaya/internal/analysis"
	"nyaya/internal/domain"
)

const namespace = "nyaya"

var (
	httpDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	providerDurationBuckets = []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30}
)

// Metrics owns the service's Prometheus registry and collectors. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal        *prometheus.CounterVec
	AnalysisDuration     prometheus.Histogram
	FallbacksTotal       *prometheus.CounterVec
	ProviderCallDuration *prometheus.HistogramVec
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	BackupsTotal         *prometheus.CounterVec
	SessionsExpiredTotal prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)

	m := &Metrics{
		registry: reg,
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed case analyses.",
		}, []string{"category", "urgency"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end case analysis duration.",
			Buckets:   providerDurationBuckets,
		}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_fallbacks_total",
			Help:      "Provider calls replaced by a default value.",
		}, []string{"stage"}),
		ProviderCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "External provider call duration by pipeline stage.",
			Buckets:   providerDurationBuckets,
		}, []string{"stage"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration.",
			Buckets:   httpDurationBuckets,
		}, []string{"method", "route"}),
		BackupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_total",
			Help:      "Case backup runs by result.",
		}, []string{"result"}),
		SessionsExpiredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Sessions marked expired by the cleanup job.",
		}),
	}
	reg.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.FallbacksTotal,
		m.ProviderCallDuration,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BackupsTotal,
		m.SessionsExpiredTotal,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveStage records one provider call. It satisfies analysis.StageObserver.
func (m *Metrics) ObserveStage(stage analysis.Stage, elapsed time.Duration, fellBack bool) {
	if m == nil {
		return
	}
	m.ProviderCallDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
	if fellBack {
		m.FallbacksTotal.WithLabelValues(string(stage)).Inc()
	}
}

// ObserveAnalysis records a completed analysis.
func (m *Metrics) ObserveAnalysis(category domain.Category, urgency domain.UrgencyLevel, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(string(category), string(urgency)).Inc()
	m.AnalysisDuration.Observe(elapsed.Seconds())
}

// ObserveHTTP records a served request. route is the matched route template.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveBackup records the result of a backup run.
func (m *Metrics) ObserveBackup(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.BackupsTotal.WithLabelValues(result).Inc()
}

// AddExpiredSessions records sessions expired by the cleanup job.
func (m *Metrics) AddExpiredSessions(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsExpiredTotal.Add(float64(n))
}
