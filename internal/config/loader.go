package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "STRIDE_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if STRIDE_CONFIG is set
//  3. env (prefix STRIDE_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// STRIDE_QUEUE_SIZE -> queue_size; comma separated values become lists.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "cors_allow_origins" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ProviderKind != ProviderFixture && c.ProviderKind != ProviderPostgres:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, c.ProviderKind)
	case c.ProviderKind == ProviderPostgres && c.DatabaseURL == "":
		return fmt.Errorf("%w: database_url is required for the postgres provider", ErrInvalidConfig)
	case c.ProviderKind == ProviderPostgres && c.AthleteID == "":
		return fmt.Errorf("%w: athlete_id is required for the postgres provider", ErrInvalidConfig)
	case c.FixtureLatencyMinMS < 0 || c.FixtureLatencyMaxMS < c.FixtureLatencyMinMS:
		return fmt.Errorf("%w: fixture latency range [%d, %d] is invalid",
			ErrInvalidConfig, c.FixtureLatencyMinMS, c.FixtureLatencyMaxMS)
	case c.NarrativeTimeoutMS <= 0:
		return fmt.Errorf("%w: narrative_timeout_ms must be positive", ErrInvalidConfig)
	case c.RateLimitRequests > 0 && c.RateLimitWindowSec <= 0:
		return fmt.Errorf("%w: rate_limit_window_sec must be positive", ErrInvalidConfig)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
