package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/stride/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func validLog() model.PerformanceLog {
	return model.PerformanceLog{
		ID: "p1", Date: "2023-10-20", Metric: "100m Sprint",
		Value: 11.2, Unit: "s", Strain: 7, DurationMin: 60,
	}
}

func TestValidate(t *testing.T) {
	Convey("Given model records", t, func() {
		Convey("A well formed performance log passes", func() {
			So(model.Validate(validLog()), ShouldBeNil)
		})

		Convey("Strain outside [1,10] is rejected", func() {
			l := validLog()
			l.Strain = 11
			err := model.Validate(l)
			So(errors.Is(err, model.ErrInvalidRecord), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Strain")

			l.Strain = 0
			So(errors.Is(model.Validate(l), model.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("A zero duration is rejected", func() {
			l := validLog()
			l.DurationMin = 0
			So(errors.Is(model.Validate(l), model.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("A malformed date is rejected", func() {
			l := validLog()
			l.Date = "20/10/2023"
			So(errors.Is(model.Validate(l), model.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("Unknown enum members are rejected", func() {
			inj := model.InjuryRecord{
				ID: "i1", Date: "2023-09-10", Area: "Right Hamstring",
				Severity: model.SeverityMedium, Status: "Healed", PainLevel: 0,
			}
			So(errors.Is(model.Validate(inj), model.ErrInvalidRecord), ShouldBeTrue)

			inj.Status = model.InjuryResolved
			So(model.Validate(inj), ShouldBeNil)

			p := model.AthleteProfile{ID: "a1", Name: "Rohan Gupta", Age: 22, HeightCm: 178, WeightKg: 72, Role: "MANAGER"}
			So(errors.Is(model.Validate(p), model.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("Slices are validated element by element", func() {
			goals := []model.CareerGoal{
				{ID: "c1", Title: "Qualify for Nationals", TargetDate: "2024-03-01", Status: model.GoalInProgress},
				{ID: "c2", Title: "Sub 10.5s 100m", TargetDate: "2024-06-01", Status: model.GoalPending},
			}
			So(model.Validate(goals), ShouldBeNil)

			goals[1].Status = "Done"
			So(errors.Is(model.Validate(goals), model.ErrInvalidRecord), ShouldBeTrue)

			So(model.Validate([]model.DietLog{}), ShouldBeNil)
		})

		Convey("Negative amounts are rejected", func() {
			f := model.FinancialRecord{ID: "f1", Date: "2023-10-01", Type: model.Income, Amount: -1}
			So(errors.Is(model.Validate(f), model.ErrInvalidRecord), ShouldBeTrue)
		})
	})
}

func TestInjuryStatus(t *testing.T) {
	Convey("Only the three lifecycle states are valid", t, func() {
		for _, s := range []model.InjuryStatus{model.InjuryActive, model.InjuryRecovering, model.InjuryResolved} {
			So(s.Valid(), ShouldBeTrue)
		}
		So(model.InjuryStatus("Healed").Valid(), ShouldBeFalse)
		So(model.InjuryStatus("").Valid(), ShouldBeFalse)
	})

	Convey("A record with an unknown status is rejected", t, func() {
		r := model.InjuryRecord{ID: "i1", Date: "2023-10-01", Area: "Knee", Severity: model.SeverityLow, Status: "Healed"}
		So(errors.Is(model.Validate(r), model.ErrInvalidRecord), ShouldBeTrue)
	})
}

func TestWireNames(t *testing.T) {
	Convey("Records keep their camelCase wire names", t, func() {
		b, err := json.Marshal(model.CareerGoal{ID: "c1", Title: "t", TargetDate: "2024-03-01", Status: model.GoalInProgress})
		So(err, ShouldBeNil)
		So(string(b), ShouldEqual, `{"id":"c1","title":"t","targetDate":"2024-03-01","status":"In Progress"}`)

		b, err = json.Marshal(model.InjuryRiskAssessment{RiskScore: 0.85, RiskLevel: model.RiskHigh, Factors: []string{"x"}})
		So(err, ShouldBeNil)
		So(string(b), ShouldContainSubstring, `"riskScore":0.85`)
		So(string(b), ShouldContainSubstring, `"riskLevel":"High"`)
	})

	Convey("Dates parse as calendar days", t, func() {
		ts, err := model.Date("2023-10-28").Time()
		So(err, ShouldBeNil)
		So(ts.Day(), ShouldEqual, 28)

		_, err = model.Date("yesterday").Time()
		So(err, ShouldNotBeNil)
	})
}
