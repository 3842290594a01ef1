package provider

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/okian/stride/internal/domain/model"
)

// Default fixture configuration constants.
const (
	defaultMinLatency = 200 * time.Millisecond
	defaultMaxLatency = 500 * time.Millisecond
)

// FixtureOption applies a configuration option to the FixtureProvider.
type FixtureOption func(*FixtureProvider)

// WithLatency sets the simulated backend latency range. Zero disables it.
func WithLatency(minLatency, maxLatency time.Duration) FixtureOption {
	return func(p *FixtureProvider) {
		if minLatency >= 0 && maxLatency >= minLatency {
			p.minLatency = minLatency
			p.maxLatency = maxLatency
		}
	}
}

// WithSnapshot serves s instead of the demo athlete.
func WithSnapshot(s Snapshot) FixtureOption {
	return func(p *FixtureProvider) {
		p.data = s.Clone()
	}
}

// WithUnavailable starts the provider in the failing state.
func WithUnavailable() FixtureOption {
	return func(p *FixtureProvider) {
		p.down = true
	}
}

// FixtureProvider serves an in-memory snapshot behind simulated latency.
type FixtureProvider struct {
	data       Snapshot
	minLatency time.Duration
	maxLatency time.Duration
	down       bool
}

// NewFixtureProvider creates a provider over DefaultSnapshot unless WithSnapshot is given.
func NewFixtureProvider(opts ...FixtureOption) *FixtureProvider {
	p := &FixtureProvider{
		data:       DefaultSnapshot(),
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *FixtureProvider) Profile(ctx context.Context) (model.AthleteProfile, error) {
	if err := p.wait(ctx, OpProfile); err != nil {
		return model.AthleteProfile{}, err
	}
	return p.data.Profile, nil
}

func (p *FixtureProvider) PerformanceLogs(ctx context.Context) ([]model.PerformanceLog, error) {
	if err := p.wait(ctx, OpPerformance); err != nil {
		return nil, err
	}
	return clone(p.data.Performance), nil
}

func (p *FixtureProvider) InjuryHistory(ctx context.Context) ([]model.InjuryRecord, error) {
	if err := p.wait(ctx, OpInjuries); err != nil {
		return nil, err
	}
	return clone(p.data.Injuries), nil
}

func (p *FixtureProvider) DietLogs(ctx context.Context) ([]model.DietLog, error) {
	if err := p.wait(ctx, OpDiet); err != nil {
		return nil, err
	}
	return clone(p.data.Diet), nil
}

func (p *FixtureProvider) FinancialRecords(ctx context.Context) ([]model.FinancialRecord, error) {
	if err := p.wait(ctx, OpFinance); err != nil {
		return nil, err
	}
	return clone(p.data.Finance), nil
}

func (p *FixtureProvider) CareerGoals(ctx context.Context) ([]model.CareerGoal, error) {
	if err := p.wait(ctx, OpGoals); err != nil {
		return nil, err
	}
	return clone(p.data.Goals), nil
}

// wait simulates the backend round trip, honoring ctx for cancellation.
func (p *FixtureProvider) wait(ctx context.Context, op string) error {
	latency := p.minLatency
	if spread := p.maxLatency - p.minLatency; spread > 0 {
		latency += time.Duration(rand.Int64N(int64(spread))) //nolint:gosec // jitter only
	}
	if latency > 0 {
		t := time.NewTimer(latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %w", ErrDataUnavailable, op, ctx.Err())
		case <-t.C:
		}
	}
	if p.down {
		return fmt.Errorf("%w: %s: fixture source offline", ErrDataUnavailable, op)
	}
	return nil
}
