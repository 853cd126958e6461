package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/support/campuses", "GET", 200, 15*time.Millisecond)
	m.RecordSource("campuses", "partners")
	m.RecordSource("campuses", "partners")
	m.RecordFanOutFailures(2)
	m.RecordFanOutFailures(0)
	m.RecordCacheLookup("campuses", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/support/campuses", "GET", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sources.WithLabelValues("campuses", "partners")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.fanOutFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("campuses", "hit")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordSource("a", "b")
		m.RecordCacheLookup("a", false)
	})
	assert.Nil(t, m.Registry())
}
