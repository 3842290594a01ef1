// Package model contains domain records passed between layers.
//
// Records are plain values. The provider hands out copies, the risk engine and
// the insight aggregator read them and build new derived values.
package model

import (
	"time"
)

// Date is a calendar day in YYYY-MM-DD form, as stored by every data source.
type Date string

// Time parses the date. Callers that only compare or display dates can use the string.
func (d Date) Time() (time.Time, error) {
	return time.Parse(time.DateOnly, string(d))
}

// AthleteProfile describes the athlete the dashboard is built for.
type AthleteProfile struct {
	ID        string  `json:"id"        yaml:"id"        validate:"required"`
	Name      string  `json:"name"      yaml:"name"      validate:"required"`
	Sport     string  `json:"sport"     yaml:"sport"`
	Age       int     `json:"age"       yaml:"age"       validate:"gt=0"`
	HeightCm  float64 `json:"heightCm"  yaml:"heightCm"  validate:"gt=0"`
	WeightKg  float64 `json:"weightKg"  yaml:"weightKg"  validate:"gt=0"`
	Role      Role    `json:"role"      yaml:"role"      validate:"enum"`
	AvatarURL string  `json:"avatarUrl" yaml:"avatarUrl" validate:"omitempty,url"`
}

// PerformanceLog is one training session. Strain is the self-reported RPE.
type PerformanceLog struct {
	ID          string  `json:"id"          yaml:"id"          validate:"required"`
	Date        Date    `json:"date"        yaml:"date"        validate:"datetime=2006-01-02"`
	Metric      string  `json:"metric"      yaml:"metric"`
	Value       float64 `json:"value"       yaml:"value"`
	Unit        string  `json:"unit"        yaml:"unit"`
	Strain      float64 `json:"strain"      yaml:"strain"      validate:"min=1,max=10"`
	DurationMin int     `json:"durationMin" yaml:"durationMin" validate:"gt=0"`
}

// InjuryRecord is one entry of the injury history.
type InjuryRecord struct {
	ID        string       `json:"id"        yaml:"id"        validate:"required"`
	Date      Date         `json:"date"      yaml:"date"      validate:"datetime=2006-01-02"`
	Area      string       `json:"area"      yaml:"area"`
	Severity  Severity     `json:"severity"  yaml:"severity"  validate:"enum"`
	Status    InjuryStatus `json:"status"    yaml:"status"    validate:"enum"`
	PainLevel int          `json:"painLevel" yaml:"painLevel" validate:"min=0,max=10"`
}

// DietLog is one meal. Macros are grams.
type DietLog struct {
	ID          string  `json:"id"          yaml:"id"          validate:"required"`
	Date        Date    `json:"date"        yaml:"date"        validate:"datetime=2006-01-02"`
	Meal        string  `json:"meal"        yaml:"meal"`
	Calories    float64 `json:"calories"    yaml:"calories"    validate:"gte=0"`
	Protein     float64 `json:"protein"     yaml:"protein"     validate:"gte=0"`
	Carbs       float64 `json:"carbs"       yaml:"carbs"       validate:"gte=0"`
	Fats        float64 `json:"fats"        yaml:"fats"        validate:"gte=0"`
	Description string  `json:"description" yaml:"description"`
}

// FinancialRecord is an income or expense entry.
type FinancialRecord struct {
	ID          string          `json:"id"          yaml:"id"          validate:"required"`
	Date        Date            `json:"date"        yaml:"date"        validate:"datetime=2006-01-02"`
	Type        TransactionType `json:"type"        yaml:"type"        validate:"enum"`
	Category    string          `json:"category"    yaml:"category"`
	Amount      float64         `json:"amount"      yaml:"amount"      validate:"gte=0"`
	Description string          `json:"description" yaml:"description"`
}

// CareerGoal is a milestone with a target date.
type CareerGoal struct {
	ID         string     `json:"id"         yaml:"id"         validate:"required"`
	Title      string     `json:"title"      yaml:"title"      validate:"required"`
	TargetDate Date       `json:"targetDate" yaml:"targetDate" validate:"datetime=2006-01-02"`
	Status     GoalStatus `json:"status"     yaml:"status"     validate:"enum"`
}

// InjuryRiskAssessment is derived per request and never stored.
type InjuryRiskAssessment struct {
	RiskScore   float64   `json:"riskScore"`
	RiskLevel   RiskLevel `json:"riskLevel"`
	Factors     []string  `json:"factors"`
	Explanation string    `json:"explanation"`
}

// DietAnalysis is the structured nutrition verdict.
type DietAnalysis struct {
	Status          DietStatus `json:"status"`
	MacroBalance    string     `json:"macroBalance"`
	Recommendations []string   `json:"recommendations"`
}
