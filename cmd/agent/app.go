package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/petasbytes/toolloop/internal/config"
	"github.com/petasbytes/toolloop/internal/fsops"
	"github.com/petasbytes/toolloop/internal/logging"
	"github.com/petasbytes/toolloop/internal/metrics"
	"github.com/petasbytes/toolloop/internal/store"
	"github.com/petasbytes/toolloop/internal/telemetry"
	"github.com/petasbytes/toolloop/provider"
	"github.com/petasbytes/toolloop/runner"
	"github.com/petasbytes/toolloop/tools"
	"github.com/petasbytes/toolloop/tools/demo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// app is the wired object graph shared by the subcommands.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	registry *tools.Registry
	runner   *runner.Runner

	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("shutdown", "err", err)
		}
	}
}

// loadConfig reads the config file and environment, then applies flag
// overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if ts, _ := cmd.Flags().GetString("toolset"); ts != "" {
		cfg.Toolsets = config.SplitList(ts)
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// buildRegistry wires the configured toolsets. It needs no credentials.
func buildRegistry(ctx context.Context, cfg config.Config, log *slog.Logger) (*tools.Registry, []func() error, error) {
	var closers []func() error

	var st store.Store = store.NewMemory()
	if cfg.Redis.Addr != "" {
		var opts []store.RedisOption
		if cfg.Redis.Prefix != "" {
			opts = append(opts, store.WithPrefix(cfg.Redis.Prefix))
		}
		rs := store.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rs.Ping(pingCtx)
		cancel()
		if err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		closers = append(closers, rs.Close)
		st = rs
		log.Debug("tool state in redis", "addr", cfg.Redis.Addr)
	}

	// An empty notes_dir falls back to AGT_READ_ROOT / AGT_WRITE_ROOT.
	var (
		sb  *fsops.Sandbox
		err error
	)
	if cfg.NotesDir != "" {
		if err := os.MkdirAll(cfg.NotesDir, 0o755); err != nil {
			return nil, closers, fmt.Errorf("notes dir: %w", err)
		}
		sb, err = fsops.New(cfg.NotesDir, "")
	} else {
		sb, err = fsops.FromEnv()
	}
	if err != nil {
		return nil, closers, err
	}
	deps := demo.Deps{Store: st, Sandbox: sb, Log: log}

	reg := tools.NewRegistry()
	if err := demo.Register(reg, deps, cfg.Toolsets...); err != nil {
		return nil, closers, err
	}
	return reg, closers, nil
}

// serveMetrics exposes reg on addr until the returned closer runs.
func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) func() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", "err", err)
		}
	}()
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}
	reg, closers, err := buildRegistry(cmd.Context(), cfg, log)
	a.closers = append(a.closers, closers...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.registry = reg

	client, err := provider.New(cfg.Provider, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		a.Close()
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	collectors, err := metrics.NewCollectors(promReg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		a.closers = append(a.closers, serveMetrics(addr, promReg, log))
	}

	sink := telemetry.New(cfg.Telemetry.Dir, cfg.Telemetry.Enabled)

	a.runner = runner.New(client, reg,
		runner.WithConfig(runner.Config{
			Model:         cfg.Model,
			MaxTokens:     cfg.MaxTokens,
			Temperature:   cfg.Temperature,
			MaxIterations: cfg.MaxIterations,
			TokenBudget:   cfg.TokenBudget,
		}),
		runner.WithLogger(log),
		runner.WithMetrics(collectors),
		runner.WithTelemetry(sink),
		runner.WithArgumentValidation(cfg.ValidateArgs),
	)
	log.Debug("ready", "provider", cfg.Provider, "model", cfg.Model, "tools", reg.Names())
	return a, nil
}
