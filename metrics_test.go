package cascade

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	router := New(WithMetrics(reg))
	router.GET("/x", func(c *Context) error { return nil })

	dispatch(t, router, "GET", "/x")
	dispatch(t, router, "GET", "/missing")

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		byName[f.GetName()] = f
	}

	counters := byName["cascade_dispatches_total"]
	require.NotNil(t, counters, "dispatch counter not registered")

	statuses := make(map[string]float64)
	for _, m := range counters.GetMetric() {
		var status string
		for _, l := range m.GetLabel() {
			if l.GetName() == "status" {
				status = l.GetValue()
			}
			if l.GetName() == "method" {
				assert.Equal(t, "GET", l.GetValue())
			}
		}
		statuses[status] += m.GetCounter().GetValue()
	}
	assert.Equal(t, 1.0, statuses["200"])
	assert.Equal(t, 1.0, statuses["404"])

	require.NotNil(t, byName["cascade_dispatch_duration_seconds"], "latency histogram not registered")
}

func TestWithoutMetricsIsQuiet(t *testing.T) {
	t.Parallel()

	router := New()
	router.GET("/x", func(c *Context) error { return nil })

	// No registry wired in, nothing to observe, nothing to panic about.
	res := dispatch(t, router, "GET", "/x")
	assert.Equal(t, 200, res.Status())
}
