package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveResolution(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDialogMetrics(reg)

	m.ObserveResolution("intent")
	m.ObserveResolution("intent")
	m.ObserveResolution("failure")

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.resolutionsTotal.WithLabelValues("intent")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.resolutionsTotal.WithLabelValues("failure")), 1e-9)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *DialogMetrics
	assert.NotPanics(t, func() {
		m.ObserveResolution("intent")
		m.ObserveTurnLatency("intent", 0.01)
	})
}
