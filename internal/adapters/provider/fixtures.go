package provider

import (
	"github.com/okian/stride/internal/domain/model"
)

// DefaultSnapshot is the demo athlete served when no fixture file is configured.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Profile: model.AthleteProfile{
			ID:        "a1",
			Name:      "Rohan Gupta",
			Sport:     "Athletics (Sprints)",
			Age:       22,
			HeightCm:  178,
			WeightKg:  72,
			Role:      model.RoleAthlete,
			AvatarURL: "https://picsum.photos/200/200",
		},
		Performance: []model.PerformanceLog{
			{ID: "p1", Date: "2023-10-20", Metric: "100m Sprint", Value: 11.2, Unit: "s", Strain: 7, DurationMin: 60},
			{ID: "p2", Date: "2023-10-22", Metric: "100m Sprint", Value: 11.0, Unit: "s", Strain: 8, DurationMin: 90},
			{ID: "p3", Date: "2023-10-24", Metric: "100m Sprint", Value: 10.9, Unit: "s", Strain: 9, DurationMin: 60},
			{ID: "p4", Date: "2023-10-26", Metric: "Squat 1RM", Value: 140, Unit: "kg", Strain: 9, DurationMin: 45},
			{ID: "p5", Date: "2023-10-28", Metric: "100m Sprint", Value: 10.85, Unit: "s", Strain: 8, DurationMin: 75},
		},
		Injuries: []model.InjuryRecord{
			{ID: "i1", Date: "2023-09-10", Area: "Right Hamstring", Severity: model.SeverityMedium, Status: model.InjuryResolved, PainLevel: 0},
			{ID: "i2", Date: "2023-10-25", Area: "Left Ankle", Severity: model.SeverityLow, Status: model.InjuryActive, PainLevel: 3},
		},
		Diet: []model.DietLog{
			{ID: "d1", Date: "2023-10-28", Meal: "Breakfast", Calories: 600, Protein: 30, Carbs: 80, Fats: 15, Description: "Oatmeal with whey and banana"},
			{ID: "d2", Date: "2023-10-28", Meal: "Lunch", Calories: 850, Protein: 45, Carbs: 100, Fats: 25, Description: "Chicken curry with rice and dal"},
			{ID: "d3", Date: "2023-10-28", Meal: "Dinner", Calories: 500, Protein: 35, Carbs: 40, Fats: 15, Description: "Grilled paneer salad"},
		},
		Finance: []model.FinancialRecord{
			{ID: "f1", Date: "2023-10-01", Type: model.Income, Category: "Sponsorship", Amount: 25000, Description: "Local Brand Deal"},
			{ID: "f2", Date: "2023-10-05", Type: model.Expense, Category: "Equipment", Amount: 8000, Description: "New Spikes"},
			{ID: "f3", Date: "2023-10-15", Type: model.Expense, Category: "Travel", Amount: 5000, Description: "Transport to State Meet"},
		},
		Goals: []model.CareerGoal{
			{ID: "c1", Title: "Qualify for Nationals", TargetDate: "2024-03-01", Status: model.GoalInProgress},
			{ID: "c2", Title: "Sub 10.5s 100m", TargetDate: "2024-06-01", Status: model.GoalPending},
		},
	}
}
