// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults; Load layers file and env on top.
// - Validation errors wrap ErrInvalidConfig, loader failures wrap ErrLoadConfig.
package config

import (
	"runtime"
)

// Provider kinds accepted by ProviderKind.
const (
	ProviderFixture  = "fixture"
	ProviderPostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CORSAllowOrigins lists browser origins allowed to call the API.
	CORSAllowOrigins []string `koanf:"cors_allow_origins"`
	// RateLimitRequests per RateLimitWindowSec per client IP; 0 disables limiting.
	RateLimitRequests  int `koanf:"rate_limit_requests"`
	RateLimitWindowSec int `koanf:"rate_limit_window_sec"`
	// TrustProxy takes the client IP from X-Forwarded-For; set only behind a proxy.
	TrustProxy bool `koanf:"trust_proxy"`

	// ProviderKind selects the data provider: fixture or postgres.
	ProviderKind string `koanf:"provider"`
	// FixturesPath optionally points at a YAML fixture file for the fixture provider.
	FixturesPath string `koanf:"fixtures_path"`
	// FixtureLatencyMinMS and FixtureLatencyMaxMS simulate backend latency.
	FixtureLatencyMinMS int `koanf:"fixture_latency_min_ms"`
	FixtureLatencyMaxMS int `koanf:"fixture_latency_max_ms"`

	// DatabaseURL and AthleteID configure the postgres provider.
	DatabaseURL    string `koanf:"database_url"`
	DBPoolMaxConns int    `koanf:"db_pool_max_conns"`
	AthleteID      string `koanf:"athlete_id"`

	// GenAIAPIKey enables narrative generation; empty means fallbacks only.
	GenAIAPIKey string `koanf:"genai_api_key"`
	// GenAIModel names the generative model.
	GenAIModel string `koanf:"genai_model"`
	// NarrativeTimeoutMS bounds a single narrative call.
	NarrativeTimeoutMS int `koanf:"narrative_timeout_ms"`
	// NarrativeRatePerMin caps outbound narrative calls; 0 means unlimited.
	NarrativeRatePerMin int `koanf:"narrative_rate_per_min"`

	// CritiqueQueueSize bounds pending practice-frame critique jobs.
	CritiqueQueueSize int `koanf:"critique_queue_size"`
	// CritiqueWorkers sets the number of critique workers.
	CritiqueWorkers int `koanf:"critique_workers"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Addr:      ":9080",
		CORSAllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		RateLimitRequests:   120,
		RateLimitWindowSec:  60,
		ProviderKind:        ProviderFixture,
		FixtureLatencyMinMS: 200,
		FixtureLatencyMaxMS: 500,
		DBPoolMaxConns:      4,
		AthleteID:           "a1",
		GenAIModel:          "gemini-2.5-flash",
		NarrativeTimeoutMS:  15_000,
		NarrativeRatePerMin: 60,
		CritiqueQueueSize:   64,
		CritiqueWorkers:     runtime.NumCPU(),
	}
}
