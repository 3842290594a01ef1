// Package provider supplies the athlete's domain records.
//
// Every read is all-or-nothing. A failed read returns an error wrapping
// ErrDataUnavailable; a successful read of nothing returns an empty, non-nil slice.
package provider

import (
	"context"

	"github.com/okian/stride/internal/domain/model"
)

// Provider is the read surface over the athlete's data.
type Provider interface {
	Profile(ctx context.Context) (model.AthleteProfile, error)
	PerformanceLogs(ctx context.Context) ([]model.PerformanceLog, error)
	InjuryHistory(ctx context.Context) ([]model.InjuryRecord, error)
	DietLogs(ctx context.Context) ([]model.DietLog, error)
	FinancialRecords(ctx context.Context) ([]model.FinancialRecord, error)
	CareerGoals(ctx context.Context) ([]model.CareerGoal, error)
}

// Operation names, used for metrics and logs.
const (
	OpProfile     = "profile"
	OpPerformance = "performance_logs"
	OpInjuries    = "injury_history"
	OpDiet        = "diet_logs"
	OpFinance     = "financial_records"
	OpGoals       = "career_goals"
)

// Snapshot is a full set of records for one athlete.
type Snapshot struct {
	Profile     model.AthleteProfile    `yaml:"profile"`
	Performance []model.PerformanceLog  `yaml:"performance"`
	Injuries    []model.InjuryRecord    `yaml:"injuries"`
	Diet        []model.DietLog         `yaml:"diet"`
	Finance     []model.FinancialRecord `yaml:"finance"`
	Goals       []model.CareerGoal      `yaml:"goals"`
}

// Validate checks every record of the snapshot.
func (s Snapshot) Validate() error {
	for _, v := range []any{s.Profile, s.Performance, s.Injuries, s.Diet, s.Finance, s.Goals} {
		if err := model.Validate(v); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy. Slices are never nil.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Profile:     s.Profile,
		Performance: clone(s.Performance),
		Injuries:    clone(s.Injuries),
		Diet:        clone(s.Diet),
		Finance:     clone(s.Finance),
		Goals:       clone(s.Goals),
	}
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
