package provider

import (
	"context"
	"time"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/logger"
	"github.com/okian/stride/pkg/metrics"
)

// InstrumentedProvider records latency and outcome of every read and logs failures.
type InstrumentedProvider struct {
	next Provider
	log  logger.Logger
}

// Instrumented wraps p. A nil log discards failure logs.
func Instrumented(p Provider, log logger.Logger) *InstrumentedProvider {
	if log == nil {
		log = logger.Nop()
	}
	return &InstrumentedProvider{next: p, log: log.Named("provider")}
}

func (i *InstrumentedProvider) Profile(ctx context.Context) (model.AthleteProfile, error) {
	return observe(ctx, i, OpProfile, i.next.Profile)
}

func (i *InstrumentedProvider) PerformanceLogs(ctx context.Context) ([]model.PerformanceLog, error) {
	return observe(ctx, i, OpPerformance, i.next.PerformanceLogs)
}

func (i *InstrumentedProvider) InjuryHistory(ctx context.Context) ([]model.InjuryRecord, error) {
	return observe(ctx, i, OpInjuries, i.next.InjuryHistory)
}

func (i *InstrumentedProvider) DietLogs(ctx context.Context) ([]model.DietLog, error) {
	return observe(ctx, i, OpDiet, i.next.DietLogs)
}

func (i *InstrumentedProvider) FinancialRecords(ctx context.Context) ([]model.FinancialRecord, error) {
	return observe(ctx, i, OpFinance, i.next.FinancialRecords)
}

func (i *InstrumentedProvider) CareerGoals(ctx context.Context) ([]model.CareerGoal, error) {
	return observe(ctx, i, OpGoals, i.next.CareerGoals)
}

func observe[T any](ctx context.Context, i *InstrumentedProvider, op string, read func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	v, err := read(ctx)
	elapsed := time.Since(start)

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
		i.log.Warn(ctx, "provider read failed",
			logger.String("operation", op),
			logger.Duration("elapsed", elapsed),
			logger.Error(err),
		)
	}
	metrics.RecordProviderFetch(op, outcome, float64(elapsed.Microseconds())/1000)
	return v, err
}
