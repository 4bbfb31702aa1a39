package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "toolloop"

// Tool call outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
)

// Collectors groups the orchestration metrics. A nil *Collectors is valid
// and records nothing.
type Collectors struct {
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec
	ModelRounds  prometheus.Counter
	Exhausted    prometheus.Counter
}

// NewCollectors creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Tool dispatches by tool name and outcome.",
			},
			[]string{"tool", "outcome"},
		),
		ToolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_duration_seconds",
				Help:      "Duration of tool invocations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		ModelRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_rounds_total",
			Help:      "Model round trips issued.",
		}),
		Exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iteration_budget_exhausted_total",
			Help:      "Tool loops that stopped on the iteration budget.",
		}),
	}
	if reg == nil {
		return c, nil
	}
	for _, col := range []prometheus.Collector{c.ToolCalls, c.ToolDuration, c.ModelRounds, c.Exhausted} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collectors) ObserveTool(tool, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.ToolCalls.WithLabelValues(tool, outcome).Inc()
	if outcome != OutcomeNotFound {
		c.ToolDuration.WithLabelValues(tool).Observe(d.Seconds())
	}
}

func (c *Collectors) ObserveRound() {
	if c == nil {
		return
	}
	c.ModelRounds.Inc()
}

func (c *Collectors) ObserveExhausted() {
	if c == nil {
		return
	}
	c.Exhausted.Inc()
}
