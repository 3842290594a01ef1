package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okian/stride/internal/domain/model"
)

func dashboardPrompt(athlete string, recent []model.PerformanceLog) string {
	return fmt.Sprintf(`Analyze the following recent performance data for athlete %s.
Data: %s

Provide a 2-sentence motivational summary and one key focus area for the week.
Return in JSON format: { "motivation": "string", "focusArea": "string" }`,
		athlete, mustJSON(recent))
}

func injuryPrompt(score float64, factors []string, recent []model.PerformanceLog) string {
	return fmt.Sprintf(`You are a sports physiotherapist.
The calculated injury risk score for this athlete is %.2f (0-1 scale).
Risk Factors Identified: %s.
Recent Training Load: %s

Provide a short paragraph explaining why the risk is at this level and 3 specific actionable recovery tips.
Return JSON: { "explanation": "string", "tips": ["string", "string", "string"] }`,
		score, strings.Join(factors, ", "), mustJSON(recent))
}

func dietPrompt(logs []model.DietLog) string {
	return fmt.Sprintf(`Analyze the following daily food log:
%s

Classify the diet as "Optimal", "Needs Improvement", or "Poor".
Calculate the approximate macro split (Protein/Carb/Fat).
Provide 3 specific dietary adjustments for an athlete.

Return JSON: {
  "status": "Optimal" | "Needs Improvement" | "Poor",
  "macroBalance": "string (e.g. 30P/50C/20F)",
  "recommendations": ["string", "string", "string"]
}`, mustJSON(logs))
}

func financePrompt(records []model.FinancialRecord) string {
	return fmt.Sprintf(`Analyze these financial records for a semi-pro athlete:
%s

Provide a brief summary of spending habits and 2 tips for saving money for better equipment or training camps.`,
		mustJSON(records))
}

const practicePrompt = `You are an elite sports coach. Analyze this image captured during a practice session.
Identify the exercise or movement being performed.
Critique the form/posture if visible.
Give 2 quick tips to improve technique.`

// mustJSON encodes plain records; they have no values json can reject.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
