package narrative

import (
	"github.com/okian/stride/internal/domain/model"
)

// Insight is the dashboard narrative.
type Insight struct {
	Motivation string `json:"motivation"`
	FocusArea  string `json:"focusArea"`
}

// RiskExplanation is the injury narrative.
type RiskExplanation struct {
	Explanation string   `json:"explanation"`
	Tips        []string `json:"tips"`
}

// FallbackInsight is the dashboard narrative used when generation fails.
// Each Fallback accessor returns a fresh copy.
func FallbackInsight() Insight {
	return Insight{Motivation: "Keep pushing your limits!", FocusArea: "Consistency"}
}

// FallbackRiskExplanation is the injury narrative used when generation fails.
func FallbackRiskExplanation() RiskExplanation {
	return RiskExplanation{
		Explanation: "Unable to generate detailed analysis.",
		Tips:        []string{"Rest well", "Hydrate", "Stretch"},
	}
}

// FallbackDietAnalysis is the diet analysis used when generation fails.
func FallbackDietAnalysis() model.DietAnalysis {
	return model.DietAnalysis{
		Status:          model.DietNeedsImprovement,
		MacroBalance:    "Unknown",
		Recommendations: []string{"Eat more protein"},
	}
}

const (
	// FallbackFinanceAdvice replaces failed finance advice.
	FallbackFinanceAdvice = "Track your expenses closely to save for upcoming tournaments."
	// FallbackPracticeCritique replaces a failed frame critique.
	FallbackPracticeCritique = "Could not analyze the image. Please try again with better lighting."
)
