// Package insight summarizes domain records for presentation and for the
// narrative request payloads.
//
// All functions are pure and total: empty input yields zero values or empty
// slices, never an error.
package insight

import (
	"strings"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/risk"
)

// Macros are summed grams (and calories) over a set of meals.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// MacroTotals sums macros across every diet log.
func MacroTotals(diet []model.DietLog) Macros {
	var m Macros
	for _, d := range diet {
		m.Calories += d.Calories
		m.Protein += d.Protein
		m.Carbs += d.Carbs
		m.Fats += d.Fats
	}
	return m
}

// Split is the percentage share of each macro by grams.
type Split struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

// MacroSplit returns the gram share of each macro; all zero when nothing was eaten.
func MacroSplit(m Macros) Split {
	total := m.Protein + m.Carbs + m.Fats
	if total <= 0 {
		return Split{}
	}
	return Split{
		Protein: m.Protein / total * 100,
		Carbs:   m.Carbs / total * 100,
		Fats:    m.Fats / total * 100,
	}
}

// Totals keeps income and expense apart; they are never netted.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// FinancialTotals sums amounts by transaction type.
func FinancialTotals(records []model.FinancialRecord) Totals {
	var t Totals
	for _, r := range records {
		switch r.Type {
		case model.Income:
			t.Income += r.Amount
		case model.Expense:
			t.Expense += r.Amount
		}
	}
	return t
}

// LastSession returns the final log in received order. No sorting is done.
func LastSession(logs []model.PerformanceLog) (model.PerformanceLog, bool) {
	if len(logs) == 0 {
		return model.PerformanceLog{}, false
	}
	return logs[len(logs)-1], true
}

// SprintMarker selects sprint sessions. Matching is case-sensitive.
const SprintMarker = "Sprint"

// SprintSeries keeps logs whose metric contains SprintMarker, in order.
func SprintSeries(logs []model.PerformanceLog) []model.PerformanceLog {
	out := make([]model.PerformanceLog, 0, len(logs))
	for _, l := range logs {
		if strings.Contains(l.Metric, SprintMarker) {
			out = append(out, l)
		}
	}
	return out
}

// Recent returns a copy of the last n logs, or all of them if fewer.
func Recent(logs []model.PerformanceLog, n int) []model.PerformanceLog {
	if n <= 0 {
		return []model.PerformanceLog{}
	}
	if len(logs) > n {
		logs = logs[len(logs)-n:]
	}
	out := make([]model.PerformanceLog, len(logs))
	copy(out, logs)
	return out
}

// Load bands for the training load card.
const (
	LoadLow      = "Low"
	LoadModerate = "Moderate"
	LoadHigh     = "High"
)

// TrainingLoad summarizes the strain over the risk window.
type TrainingLoad struct {
	Band      string  `json:"band"`
	AvgStrain float64 `json:"avgStrain"`
	// AvgLoad is the mean of strain times duration.
	AvgLoad  float64 `json:"avgLoad"`
	Sessions int     `json:"sessions"`
}

// TrainingLoadOf reports the load of the same window the risk engine scores.
func TrainingLoadOf(logs []model.PerformanceLog) TrainingLoad {
	w := risk.Window(logs)
	if len(w) == 0 {
		return TrainingLoad{Band: LoadLow}
	}
	var load float64
	for _, l := range w {
		load += l.Strain * float64(l.DurationMin)
	}
	avg := risk.AverageStrain(w)
	band := LoadLow
	switch {
	case avg > 8:
		band = LoadHigh
	case avg > 5:
		band = LoadModerate
	}
	return TrainingLoad{
		Band:      band,
		AvgStrain: avg,
		AvgLoad:   load / float64(len(w)),
		Sessions:  len(w),
	}
}

// GoalSummary counts goals per status. Every status is present, possibly zero.
func GoalSummary(goals []model.CareerGoal) map[model.GoalStatus]int {
	out := map[model.GoalStatus]int{
		model.GoalPending:    0,
		model.GoalInProgress: 0,
		model.GoalAchieved:   0,
	}
	for _, g := range goals {
		out[g.Status]++
	}
	return out
}
