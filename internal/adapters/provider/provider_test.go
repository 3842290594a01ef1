package provider_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/stride/internal/adapters/provider"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func fastProvider(opts ...provider.FixtureOption) *provider.FixtureProvider {
	return provider.NewFixtureProvider(append([]provider.FixtureOption{provider.WithLatency(0, 0)}, opts...)...)
}

func TestFixtureProvider(t *testing.T) {
	Convey("Given a fixture provider over the demo athlete", t, func() {
		ctx := context.Background()
		p := fastProvider()

		Convey("It serves the demo profile", func() {
			prof, err := p.Profile(ctx)
			So(err, ShouldBeNil)
			So(prof.ID, ShouldEqual, "a1")
			So(prof.Name, ShouldEqual, "Rohan Gupta")
			So(prof.Role, ShouldEqual, model.RoleAthlete)
		})

		Convey("It serves every collection in date order", func() {
			logs, err := p.PerformanceLogs(ctx)
			So(err, ShouldBeNil)
			So(len(logs), ShouldEqual, 5)
			So(logs[0].ID, ShouldEqual, "p1")
			So(logs[4].Strain, ShouldEqual, 8)

			inj, err := p.InjuryHistory(ctx)
			So(err, ShouldBeNil)
			So(len(inj), ShouldEqual, 2)

			diet, err := p.DietLogs(ctx)
			So(err, ShouldBeNil)
			So(len(diet), ShouldEqual, 3)

			fin, err := p.FinancialRecords(ctx)
			So(err, ShouldBeNil)
			So(len(fin), ShouldEqual, 3)

			goals, err := p.CareerGoals(ctx)
			So(err, ShouldBeNil)
			So(len(goals), ShouldEqual, 2)
		})

		Convey("It returns copies", func() {
			logs, _ := p.PerformanceLogs(ctx)
			logs[0].Strain = 10
			again, _ := p.PerformanceLogs(ctx)
			So(again[0].Strain, ShouldEqual, 7)
		})

		Convey("The demo snapshot satisfies every invariant", func() {
			So(provider.DefaultSnapshot().Validate(), ShouldBeNil)
		})

		Convey("An empty snapshot yields empty, non-nil collections", func() {
			empty := fastProvider(provider.WithSnapshot(provider.Snapshot{}))
			logs, err := empty.PerformanceLogs(ctx)
			So(err, ShouldBeNil)
			So(logs, ShouldNotBeNil)
			So(logs, ShouldBeEmpty)
		})

		Convey("When the source is offline", func() {
			_, err := fastProvider(provider.WithUnavailable()).DietLogs(ctx)

			Convey("Then reads fail with data unavailable", func() {
				So(errors.Is(err, provider.ErrDataUnavailable), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, provider.OpDiet)
			})
		})

		Convey("WithUnavailable starts offline", func() {
			_, err := fastProvider(provider.WithUnavailable()).Profile(ctx)
			So(errors.Is(err, provider.ErrDataUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given a slow fixture provider", t, func() {
		p := provider.NewFixtureProvider(provider.WithLatency(time.Second, 2*time.Second))

		Convey("A cancelled context aborts the read", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err := p.PerformanceLogs(ctx)
			So(errors.Is(err, provider.ErrDataUnavailable), ShouldBeTrue)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			So(time.Since(start), ShouldBeLessThan, time.Second)
		})
	})
}

const fixtureYAML = `
profile:
  id: a9
  name: Meera Nair
  sport: Swimming
  age: 19
  heightCm: 170
  weightKg: 60
  role: ATHLETE
performance:
  - {id: p1, date: "2024-01-02", metric: "50m Freestyle", value: 26.1, unit: s, strain: 6, durationMin: 50}
injuries: []
diet:
  - {id: d1, date: "2024-01-02", meal: Breakfast, calories: 500, protein: 25, carbs: 70, fats: 12, description: Poha}
finance: []
goals:
  - {id: c1, title: State Trials, targetDate: "2024-05-01", status: Pending}
`

func TestLoadFixtures(t *testing.T) {
	Convey("Given a YAML fixture file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "athlete.yaml")

		Convey("A valid file loads into a snapshot", func() {
			So(os.WriteFile(path, []byte(fixtureYAML), 0o600), ShouldBeNil)
			s, err := provider.LoadFixtures(path)
			So(err, ShouldBeNil)
			So(s.Profile.Name, ShouldEqual, "Meera Nair")
			So(len(s.Performance), ShouldEqual, 1)
			So(s.Goals[0].Status, ShouldEqual, model.GoalPending)
			So(s.Injuries, ShouldNotBeNil)

			p := fastProvider(provider.WithSnapshot(s))
			prof, err := p.Profile(context.Background())
			So(err, ShouldBeNil)
			So(prof.ID, ShouldEqual, "a9")
		})

		Convey("A record breaking an invariant is rejected", func() {
			bad := []byte(`
profile: {id: a1, name: X, age: 20, heightCm: 170, weightKg: 60, role: ATHLETE}
performance:
  - {id: p1, date: "2024-01-02", metric: Run, value: 1, unit: km, strain: 12, durationMin: 30}
`)
			_, err := provider.ParseFixtures(bad)
			So(errors.Is(err, provider.ErrInvalidFixtures), ShouldBeTrue)
			So(errors.Is(err, model.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("Unknown keys are rejected", func() {
			_, err := provider.ParseFixtures([]byte("profiles: {}\n"))
			So(errors.Is(err, provider.ErrInvalidFixtures), ShouldBeTrue)
		})

		Convey("A missing file is rejected", func() {
			_, err := provider.LoadFixtures(filepath.Join(dir, "missing.yaml"))
			So(errors.Is(err, provider.ErrInvalidFixtures), ShouldBeTrue)
		})
	})
}

func TestInstrumented(t *testing.T) {
	Convey("Given an instrumented provider", t, func() {
		ctx := context.Background()
		inner := fastProvider()
		p := provider.Instrumented(inner, nil)

		Convey("Reads pass through unchanged", func() {
			goals, err := p.CareerGoals(ctx)
			So(err, ShouldBeNil)
			So(len(goals), ShouldEqual, 2)
		})

		Convey("Failures keep their sentinel", func() {
			inner.SetAvailable(false)
			_, err := p.FinancialRecords(ctx)
			So(errors.Is(err, provider.ErrDataUnavailable), ShouldBeTrue)
		})

		Convey("Each read is counted", func() {
			before, err := testutil.GatherAndCount(metrics.GetRegistry(), "stride_reporting_provider_fetch_total")
			So(err, ShouldBeNil)
			_, _ = p.Profile(ctx)
			after, err := testutil.GatherAndCount(metrics.GetRegistry(), "stride_reporting_provider_fetch_total")
			So(err, ShouldBeNil)
			So(after, ShouldBeGreaterThanOrEqualTo, before)
			So(after, ShouldBeGreaterThan, 0)
		})
	})
}
