package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/stride/internal/adapters/narrative"
	"github.com/okian/stride/internal/adapters/provider"
	"github.com/okian/stride/internal/config"
	"github.com/okian/stride/pkg/logger"
)

// Build assembles a Service from cfg: the configured provider wrapped with
// metrics, and a Gemini gateway when an API key is set. The returned
// cleanup releases the database pool, if any.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, func(), error) {
	p, cleanup, err := buildProvider(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	gw, err := buildGateway(ctx, cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	svc := New(
		WithLogger(log),
		WithProvider(provider.Instrumented(p, log)),
		WithGateway(gw),
		WithWorkerCount(cfg.CritiqueWorkers),
		WithQueueSize(cfg.CritiqueQueueSize),
	)
	return svc, cleanup, nil
}

func buildProvider(ctx context.Context, cfg *config.Config) (provider.Provider, func(), error) {
	switch cfg.ProviderKind {
	case config.ProviderPostgres:
		pool, err := provider.OpenPool(ctx, cfg.DatabaseURL, cfg.DBPoolMaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres provider: %w", err)
		}
		return provider.NewPostgresProvider(pool, cfg.AthleteID), pool.Close, nil
	default:
		opts := []provider.FixtureOption{provider.WithLatency(
			time.Duration(cfg.FixtureLatencyMinMS)*time.Millisecond,
			time.Duration(cfg.FixtureLatencyMaxMS)*time.Millisecond,
		)}
		if cfg.FixturesPath != "" {
			snap, err := provider.LoadFixtures(cfg.FixturesPath)
			if err != nil {
				return nil, nil, err
			}
			opts = append(opts, provider.WithSnapshot(snap))
		}
		return provider.NewFixtureProvider(opts...), func() {}, nil
	}
}

func buildGateway(ctx context.Context, cfg *config.Config, log logger.Logger) (*narrative.Gateway, error) {
	gopts := []narrative.Option{
		narrative.WithTimeout(time.Duration(cfg.NarrativeTimeoutMS) * time.Millisecond),
		narrative.WithLogger(log),
	}
	if cfg.GenAIAPIKey == "" {
		log.Info(ctx, "no genai_api_key configured; narratives use fallbacks")
		return narrative.Offline(gopts...), nil
	}
	gen, err := narrative.NewGenAIGenerator(ctx, cfg.GenAIAPIKey,
		narrative.WithModel(cfg.GenAIModel),
		narrative.WithRatePerMinute(cfg.NarrativeRatePerMin),
	)
	if err != nil {
		return nil, fmt.Errorf("create narrative generator: %w", err)
	}
	return narrative.NewGateway(gen, gopts...), nil
}
