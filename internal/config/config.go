// Package config loads runtime settings from defaults, an optional YAML file
// and the environment, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingCredential is returned by Validate when no API key is available
// for the selected provider.
var ErrMissingCredential = errors.New("missing API credential")

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

const (
	DefaultAnthropicModel = "claude-3-7-sonnet-20250219"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultMaxTokens      = 1000
	DefaultTemperature    = 1.0
	DefaultMaxIterations  = 5
)

type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type Config struct {
	Provider      string          `yaml:"provider"`
	Model         string          `yaml:"model"`
	APIKey        string          `yaml:"api_key"`
	BaseURL       string          `yaml:"base_url"`
	MaxTokens     int64           `yaml:"max_tokens"`
	Temperature   float64         `yaml:"temperature"`
	MaxIterations int             `yaml:"max_iterations"`
	TokenBudget   int             `yaml:"token_budget"`
	System        string          `yaml:"system"`
	ValidateArgs  bool            `yaml:"validate_args"`
	LogLevel      string          `yaml:"log_level"`
	Toolsets      []string        `yaml:"toolsets"`
	NotesDir      string          `yaml:"notes_dir"`
	Telemetry     TelemetryConfig `yaml:"telemetry"`
	Redis         RedisConfig     `yaml:"redis"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Provider:      ProviderAnthropic,
		MaxTokens:     DefaultMaxTokens,
		Temperature:   DefaultTemperature,
		MaxIterations: DefaultMaxIterations,
		LogLevel:      "info",
		Toolsets:      []string{"basic"},
		NotesDir:      "notes",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	return cfg, nil
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultAnthropicModel
}

// CredentialEnv names the environment variable holding the provider's key.
func CredentialEnv(provider string) string {
	if provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, set func(string) error) {
		if v, ok := lookup(key); ok && v != "" {
			if err := set(v); err != nil {
				errs = append(errs, fmt.Errorf("invalid %s %q: %w", key, v, err))
			}
		}
	}

	str("AGT_PROVIDER", &c.Provider)
	c.Provider = strings.ToLower(c.Provider)
	str("AGT_MODEL", &c.Model)
	str("AGT_BASE_URL", &c.BaseURL)
	str("AGT_SYSTEM", &c.System)
	str("AGT_LOG_LEVEL", &c.LogLevel)
	str("AGT_NOTES_DIR", &c.NotesDir)
	str("AGT_ARTIFACTS_DIR", &c.Telemetry.Dir)
	str("AGT_REDIS_ADDR", &c.Redis.Addr)
	str("AGT_REDIS_PASSWORD", &c.Redis.Password)
	if c.APIKey == "" {
		str(CredentialEnv(c.Provider), &c.APIKey)
	}
	if v, ok := lookup("AGT_TOOLSETS"); ok && v != "" {
		c.Toolsets = SplitList(v)
	}

	num("AGT_MAX_TOKENS", func(v string) (err error) {
		c.MaxTokens, err = strconv.ParseInt(v, 10, 64)
		return err
	})
	num("AGT_TEMPERATURE", func(v string) (err error) {
		c.Temperature, err = strconv.ParseFloat(v, 64)
		return err
	})
	num("AGT_MAX_ITERATIONS", func(v string) (err error) {
		c.MaxIterations, err = strconv.Atoi(v)
		return err
	})
	num("AGT_TOKEN_BUDGET", func(v string) (err error) {
		c.TokenBudget, err = strconv.Atoi(v)
		return err
	})
	num("AGT_REDIS_DB", func(v string) (err error) {
		c.Redis.DB, err = strconv.Atoi(v)
		return err
	})
	num("AGT_VALIDATE_ARGS", func(v string) (err error) {
		c.ValidateArgs, err = strconv.ParseBool(v)
		return err
	})
	num("AGT_OBSERVE_JSON", func(v string) (err error) {
		c.Telemetry.Enabled, err = strconv.ParseBool(v)
		return err
	})
	return errors.Join(errs...)
}

// Validate reports settings that make a client impossible to construct.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: set %s or api_key", ErrMissingCredential, CredentialEnv(c.Provider))
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.TokenBudget < 0 {
		return fmt.Errorf("token_budget must not be negative, got %d", c.TokenBudget)
	}
	return nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
