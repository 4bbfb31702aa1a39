package metrics_test

import (
	"testing"
	"time"

	"github.com/petasbytes/toolloop/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectors_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollectors(reg)
	require.NoError(t, err)

	c.ObserveTool("add", metrics.OutcomeOK, 10*time.Millisecond)
	c.ObserveTool("add", metrics.OutcomeOK, 5*time.Millisecond)
	c.ObserveTool("flaky", metrics.OutcomeError, time.Millisecond)
	c.ObserveTool("ghost", metrics.OutcomeNotFound, 0)
	c.ObserveRound()
	c.ObserveRound()
	c.ObserveExhausted()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ToolCalls.WithLabelValues("add", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ToolCalls.WithLabelValues("flaky", metrics.OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ToolCalls.WithLabelValues("ghost", metrics.OutcomeNotFound)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.ModelRounds))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Exhausted))

	// not_found dispatches never ran, so they add no duration sample.
	assert.Equal(t, 2, testutil.CollectAndCount(c.ToolDuration))
}

func TestCollectors_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewCollectors(reg)
	require.NoError(t, err)
	_, err = metrics.NewCollectors(reg)
	assert.Error(t, err)
}

func TestCollectors_NilSafe(t *testing.T) {
	var c *metrics.Collectors
	c.ObserveTool("x", metrics.OutcomeOK, time.Second)
	c.ObserveRound()
	c.ObserveExhausted()

	unregistered, err := metrics.NewCollectors(nil)
	require.NoError(t, err)
	unregistered.ObserveRound()
	assert.Equal(t, 1.0, testutil.ToFloat64(unregistered.ModelRounds))
}
