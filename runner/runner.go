package runner

import (
	"errors"
	"log/slog"

	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/internal/logging"
	"github.com/petasbytes/toolloop/internal/metrics"
	"github.com/petasbytes/toolloop/internal/telemetry"
	"github.com/petasbytes/toolloop/internal/windowing"
	"github.com/petasbytes/toolloop/provider"
	"github.com/petasbytes/toolloop/tools"
)

// ErrNewestOverBudget is returned when the newest turn group alone exceeds
// the configured token budget.
var ErrNewestOverBudget = errors.New("runner: newest turn group exceeds token budget")

var errNilClient = errors.New("runner: nil client")

const (
	DefaultModel         = "claude-3-7-sonnet-20250219"
	DefaultMaxTokens     = 1000
	DefaultTemperature   = 1.0
	DefaultMaxIterations = 5
)

// Config holds per-runner defaults. TokenBudget <= 0 disables windowing.
type Config struct {
	Model         string
	MaxTokens     int64
	Temperature   float64
	MaxIterations int
	TokenBudget   int
}

func DefaultConfig() Config {
	return Config{
		Model:         DefaultModel,
		MaxTokens:     DefaultMaxTokens,
		Temperature:   DefaultTemperature,
		MaxIterations: DefaultMaxIterations,
	}
}

// Params are per-call overrides. Zero values fall back to the runner Config;
// Temperature is a pointer so an explicit 0 is honoured.
type Params struct {
	System        string
	MaxTokens     int64
	Temperature   *float64
	MaxIterations int
	History       conversation.History
}

type Option func(*Runner)

// WithConfig replaces the defaults. Empty Model, MaxTokens and MaxIterations
// keep their default values.
func WithConfig(cfg Config) Option {
	return func(r *Runner) {
		def := DefaultConfig()
		if cfg.Model == "" {
			cfg.Model = def.Model
		}
		if cfg.MaxTokens <= 0 {
			cfg.MaxTokens = def.MaxTokens
		}
		if cfg.MaxIterations <= 0 {
			cfg.MaxIterations = def.MaxIterations
		}
		r.cfg = cfg
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

func WithMetrics(c *metrics.Collectors) Option {
	return func(r *Runner) { r.metrics = c }
}

func WithTelemetry(s *telemetry.Sink) Option {
	return func(r *Runner) { r.sink = s }
}

// WithArgumentValidation checks decoded arguments against the tool's schema
// before invoking it. Off by default.
func WithArgumentValidation(on bool) Option {
	return func(r *Runner) { r.validate = on }
}

// WithTokenCounter swaps the estimator used for windowing.
func WithTokenCounter(c windowing.TokenCounter) Option {
	return func(r *Runner) {
		if c != nil {
			r.counter = c
		}
	}
}

// Runner drives one orchestration session per call. Each call owns its
// transcript and invocation trail; the registry is not locked, so callers
// serialize registration and runs that share it.
type Runner struct {
	client   provider.Client
	registry *tools.Registry
	cfg      Config
	log      *slog.Logger
	metrics  *metrics.Collectors
	sink     *telemetry.Sink
	validate bool
	counter  windowing.TokenCounter
}

// New returns a Runner. A nil registry behaves as an empty one.
func New(client provider.Client, registry *tools.Registry, opts ...Option) *Runner {
	if registry == nil {
		registry = tools.NewRegistry()
	}
	r := &Runner{
		client:   client,
		registry: registry,
		cfg:      DefaultConfig(),
		log:      logging.NewNop(),
		counter:  windowing.HeuristicCounter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the registry tool requests are dispatched to.
func (r *Runner) Registry() *tools.Registry { return r.registry }

// Register adds or replaces a tool on the runner's registry.
func (r *Runner) Register(name string, c tools.Callable, description string, opts ...tools.RegisterOption) error {
	return r.registry.Register(name, c, description, opts...)
}

func (r *Runner) Config() Config { return r.cfg }

func (r *Runner) baseRequest(p Params) provider.Request {
	req := provider.Request{
		Model:       r.cfg.Model,
		System:      p.System,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	}
	if p.MaxTokens > 0 {
		req.MaxTokens = p.MaxTokens
	}
	if p.Temperature != nil {
		req.Temperature = *p.Temperature
	}
	return req
}

func (r *Runner) maxIterations(p Params) int {
	if p.MaxIterations > 0 {
		return p.MaxIterations
	}
	return r.cfg.MaxIterations
}
