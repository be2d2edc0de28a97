package metrics

import "github.com/prometheus/client_golang/prometheus"

// DialogMetrics exposes counters/histograms for turn resolution.
type DialogMetrics struct {
	resolutionsTotal *prometheus.CounterVec
	turnLatency      *prometheus.HistogramVec
}

func NewDialogMetrics(reg prometheus.Registerer) *DialogMetrics {
	m := &DialogMetrics{
		resolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "showroom",
			Subsystem: "dialog",
			Name:      "resolutions_total",
			Help:      "Total processed turns by resolution outcome",
		}, []string{"outcome"}),
		turnLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "showroom",
			Subsystem: "dialog",
			Name:      "turn_latency_seconds",
			Help:      "Latency of turn processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.resolutionsTotal, m.turnLatency)
	return m
}

func (m *DialogMetrics) ObserveResolution(outcome string) {
	if m == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(outcome).Inc()
}

func (m *DialogMetrics) ObserveTurnLatency(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.turnLatency.WithLabelValues(outcome).Observe(seconds)
}
