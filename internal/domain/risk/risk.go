// Package risk computes the injury-risk heuristic from recent training strain
// and the injury history.
//
// Everything here is pure: no I/O, no clocks, no shared state.
package risk

import (
	"math"

	"github.com/okian/stride/internal/domain/model"
)

// Heuristic constants. Thresholds are strict: a value equal to a threshold
// falls in the lower band.
const (
	WindowSize = 5

	baseRisk           = 0.2
	highStrainRisk     = 0.4
	normalStrainRisk   = 0.1
	perActiveInjury    = 0.25
	maxRisk            = 0.99
	riskStrainCutoff   = 8.0
	factorStrainCutoff = 7.5

	highLevelAbove     = 0.7
	moderateLevelAbove = 0.4
)

// Factor strings, in the order Predict emits them.
const (
	FactorHighStrain     = "High Recent Strain"
	FactorModerateStrain = "Moderate Strain"
	FactorActiveRecovery = "Active Recovery in Progress"
	FactorNoActive       = "No Active Injuries"
	FactorMonotony       = "Training Load Monotony Detected"
)

// Prediction is the raw output of the heuristic.
type Prediction struct {
	Score          float64
	Factors        []string
	AvgStrain      float64
	ActiveInjuries int
}

// Window returns the most recent WindowSize logs, or all of them if fewer.
// Logs are expected in ascending date order.
func Window(logs []model.PerformanceLog) []model.PerformanceLog {
	if len(logs) <= WindowSize {
		return logs
	}
	return logs[len(logs)-WindowSize:]
}

// AverageStrain is the mean strain over the window; 0 for no logs.
func AverageStrain(logs []model.PerformanceLog) float64 {
	w := Window(logs)
	if len(w) == 0 {
		return 0
	}
	var sum float64
	for _, l := range w {
		sum += l.Strain
	}
	return sum / float64(len(w))
}

// ActiveInjuries counts records that are not resolved.
func ActiveInjuries(injuries []model.InjuryRecord) int {
	n := 0
	for _, inj := range injuries {
		if inj.Status != model.InjuryResolved {
			n++
		}
	}
	return n
}

// Predict scores injury risk. The score is always within [0.2, 0.99].
func Predict(logs []model.PerformanceLog, injuries []model.InjuryRecord) (Prediction, error) {
	if len(logs) == 0 {
		return Prediction{}, ErrInsufficientData
	}

	avg := AverageStrain(logs)
	active := ActiveInjuries(injuries)

	factor := normalStrainRisk
	if avg > riskStrainCutoff {
		factor = highStrainRisk
	}
	total := math.Min(baseRisk+factor+float64(active)*perActiveInjury, maxRisk)

	factors := make([]string, 0, 3)
	if avg > factorStrainCutoff {
		factors = append(factors, FactorHighStrain)
	} else {
		factors = append(factors, FactorModerateStrain)
	}
	if active > 0 {
		factors = append(factors, FactorActiveRecovery)
	} else {
		factors = append(factors, FactorNoActive)
	}
	// Always flagged; the load variance is not consulted.
	factors = append(factors, FactorMonotony)

	return Prediction{
		Score:          roundCents(total),
		Factors:        factors,
		AvgStrain:      avg,
		ActiveInjuries: active,
	}, nil
}

// Level bands a score. Lower bounds are exclusive: 0.7 is Moderate, 0.4 is Low.
func Level(score float64) model.RiskLevel {
	switch {
	case score > highLevelAbove:
		return model.RiskHigh
	case score > moderateLevelAbove:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}

// Assess turns a prediction and its narrative explanation into the derived record.
func Assess(p Prediction, explanation string) model.InjuryRiskAssessment {
	factors := make([]string, len(p.Factors))
	copy(factors, p.Factors)
	return model.InjuryRiskAssessment{
		RiskScore:   p.Score,
		RiskLevel:   Level(p.Score),
		Factors:     factors,
		Explanation: explanation,
	}
}

// Every term of the sum is a multiple of 0.05, so rounding only strips float noise.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
