package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/stride/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.ProviderKind, convey.ShouldEqual, config.ProviderFixture)
				convey.So(cfg.AthleteID, convey.ShouldEqual, "a1")
				convey.So(cfg.GenAIModel, convey.ShouldEqual, "gemini-2.5-flash")
				convey.So(cfg.FixtureLatencyMaxMS, convey.ShouldEqual, 500)
				convey.So(cfg.TrustProxy, convey.ShouldBeFalse)
				convey.So(cfg.CORSAllowOrigins, convey.ShouldResemble,
					[]string{"http://localhost:3000", "http://localhost:5173"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("STRIDE_ADDR", ":8080")
			_ = os.Setenv("STRIDE_CRITIQUE_QUEUE_SIZE", "16")
			_ = os.Setenv("STRIDE_CRITIQUE_WORKERS", "3")
			_ = os.Setenv("STRIDE_FIXTURE_LATENCY_MIN_MS", "0")
			_ = os.Setenv("STRIDE_FIXTURE_LATENCY_MAX_MS", "0")
			_ = os.Setenv("STRIDE_CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
			_ = os.Setenv("STRIDE_GENAI_API_KEY", "secret")
			_ = os.Setenv("STRIDE_TRUST_PROXY", "true")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.CritiqueQueueSize, convey.ShouldEqual, 16)
				convey.So(cfg.CritiqueWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.FixtureLatencyMinMS, convey.ShouldEqual, 0)
				convey.So(cfg.FixtureLatencyMaxMS, convey.ShouldEqual, 0)
				convey.So(cfg.GenAIAPIKey, convey.ShouldEqual, "secret")
				convey.So(cfg.TrustProxy, convey.ShouldBeTrue)
				convey.So(cfg.CORSAllowOrigins, convey.ShouldResemble,
					[]string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
# local overrides
addr: ":9090"
provider: postgres
database_url: "postgres://stride@localhost:5432/stride"
athlete_id: a7
narrative_timeout_ms: 2000
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("STRIDE_CONFIG", tmpFile)
			_ = os.Setenv("STRIDE_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ProviderKind, convey.ShouldEqual, config.ProviderPostgres)
				convey.So(cfg.DatabaseURL, convey.ShouldEqual, "postgres://stride@localhost:5432/stride")
				convey.So(cfg.AthleteID, convey.ShouldEqual, "a7")
				convey.So(cfg.NarrativeTimeoutMS, convey.ShouldEqual, 2000)
				convey.So(cfg.RateLimitRequests, convey.ShouldEqual, 120)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("STRIDE_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("STRIDE_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("STRIDE_CRITIQUE_WORKERS", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("STRIDE_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When selecting postgres without a database url", func() {
			_ = os.Setenv("STRIDE_PROVIDER", "postgres")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "database_url")
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.So(cfg.Validate(), convey.ShouldBeNil)

		convey.Convey("An unknown provider is rejected", func() {
			cfg.ProviderKind = "sqlite"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An inverted latency range is rejected", func() {
			cfg.FixtureLatencyMinMS = 400
			cfg.FixtureLatencyMaxMS = 100
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("A non-positive narrative timeout is rejected", func() {
			cfg.NarrativeTimeoutMS = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Rate limiting without a window is rejected", func() {
			cfg.RateLimitWindowSec = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)

			cfg.RateLimitRequests = 0
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"STRIDE_CONFIG",
		"STRIDE_ADDR",
		"STRIDE_PROVIDER",
		"STRIDE_CRITIQUE_QUEUE_SIZE",
		"STRIDE_CRITIQUE_WORKERS",
		"STRIDE_FIXTURE_LATENCY_MIN_MS",
		"STRIDE_FIXTURE_LATENCY_MAX_MS",
		"STRIDE_CORS_ALLOW_ORIGINS",
		"STRIDE_GENAI_API_KEY",
		"STRIDE_TRUST_PROXY",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "stride-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
