package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

const (
	LabelService = "service"
	LabelStatus  = "status"
)

// ServiceMetrics bundles the Prometheus collectors for the analysis service.
type ServiceMetrics struct {
	AnalysesTotal     *prometheus.CounterVec
	AnalysisDuration  prometheus.Histogram
	AnalysesInFlight  prometheus.Gauge
	SuggestionsIssued prometheus.Counter

	registry *prometheus.Registry
}

// NewServiceMetrics creates and registers the collectors on a dedicated
// registry.
func NewServiceMetrics(serviceName string) *ServiceMetrics {
	m := &ServiceMetrics{
		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "analyses_total",
				Help:        "Total number of page analyses",
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
			[]string{LabelStatus},
		),

		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "analysis_duration_seconds",
				Help:        "Page analysis duration in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
		),

		AnalysesInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "analyses_in_flight",
				Help:        "Current number of analyses being served",
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
		),

		SuggestionsIssued: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "suggestions_issued_total",
				Help:        "Total number of improvement suggestions issued",
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
		),

		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.AnalysesInFlight,
		m.SuggestionsIssued,
	)

	return m
}

// RecordAnalysis records one completed analysis.
func (m *ServiceMetrics) RecordAnalysis(status string, duration time.Duration, suggestions int) {
	m.AnalysesTotal.WithLabelValues(status).Inc()
	m.AnalysisDuration.Observe(duration.Seconds())
	m.SuggestionsIssued.Add(float64(suggestions))
}

// Handler exposes the registry for the /metrics endpoint.
func (m *ServiceMetrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
