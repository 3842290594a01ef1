package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/stride/internal/adapters/narrative"
	"github.com/okian/stride/internal/domain/insight"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/risk"
	"github.com/okian/stride/pkg/logger"
	"github.com/okian/stride/pkg/metrics"
)

// View names, used for metrics and logs.
const (
	ViewProfile     = "profile"
	ViewDashboard   = "dashboard"
	ViewPerformance = "performance"
	ViewInjury      = "injury"
	ViewNutrition   = "nutrition"
	ViewFinance     = "finance"
	ViewReport      = "report"
)

// DashboardView is the landing page.
type DashboardView struct {
	Profile        model.AthleteProfile   `json:"profile"`
	LastSession    *model.PerformanceLog  `json:"lastSession"`
	TrainingLoad   insight.TrainingLoad   `json:"trainingLoad"`
	RecentSessions []model.PerformanceLog `json:"recentSessions"`
	Insight        narrative.Insight      `json:"insight"`
}

// PerformanceView lists every session and the sprint chart series.
type PerformanceView struct {
	Logs        []model.PerformanceLog `json:"logs"`
	Sprints     []model.PerformanceLog `json:"sprints"`
	LastSession *model.PerformanceLog  `json:"lastSession"`
}

// InjuryView is the risk card plus the injury history.
type InjuryView struct {
	Assessment     model.InjuryRiskAssessment `json:"assessment"`
	Tips           []string                   `json:"tips"`
	Injuries       []model.InjuryRecord       `json:"injuries"`
	ActiveInjuries int                        `json:"activeInjuries"`
}

// NutritionView is the day's meals, their totals and the diet analysis.
type NutritionView struct {
	Logs     []model.DietLog    `json:"logs"`
	Totals   insight.Macros     `json:"totals"`
	Split    insight.Split      `json:"split"`
	Analysis model.DietAnalysis `json:"analysis"`
}

// FinanceCareerView combines the ledger and the career goals.
type FinanceCareerView struct {
	Records     []model.FinancialRecord  `json:"records"`
	Totals      insight.Totals           `json:"totals"`
	Advice      string                   `json:"advice"`
	Goals       []model.CareerGoal       `json:"goals"`
	GoalSummary map[model.GoalStatus]int `json:"goalSummary"`
}

// ReportView is every view built from a single fetch of each record set.
type ReportView struct {
	Dashboard   DashboardView     `json:"dashboard"`
	Performance PerformanceView   `json:"performance"`
	Injury      InjuryView        `json:"injury"`
	Nutrition   NutritionView     `json:"nutrition"`
	Finance     FinanceCareerView `json:"finance"`
}

// Profile returns the athlete profile.
func (s *Service) Profile(ctx context.Context) (model.AthleteProfile, error) {
	start := time.Now()
	p, err := s.provider.Profile(ctx)
	return finish(ctx, s, ViewProfile, start, p, err)
}

// Dashboard fetches the profile and sessions, derives the load card and
// narrates the last three sessions.
func (s *Service) Dashboard(ctx context.Context) (DashboardView, error) {
	start := time.Now()
	var (
		profile model.AthleteProfile
		logs    []model.PerformanceLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { profile, err = s.provider.Profile(gctx); return err })
	g.Go(func() (err error) { logs, err = s.provider.PerformanceLogs(gctx); return err })
	if err := g.Wait(); err != nil {
		return finish(ctx, s, ViewDashboard, start, DashboardView{}, err)
	}

	v := deriveDashboard(profile, logs)
	v.Insight = s.gateway.DashboardInsight(ctx, profile.Name, logs)
	return finish(ctx, s, ViewDashboard, start, v, nil)
}

// Performance returns every session and the sprint series.
func (s *Service) Performance(ctx context.Context) (PerformanceView, error) {
	start := time.Now()
	logs, err := s.provider.PerformanceLogs(ctx)
	if err != nil {
		return finish(ctx, s, ViewPerformance, start, PerformanceView{}, err)
	}
	return finish(ctx, s, ViewPerformance, start, derivePerformance(logs), nil)
}

// InjuryReport scores the injury risk and explains it. An empty session
// history fails with risk.ErrInsufficientData before any narration.
func (s *Service) InjuryReport(ctx context.Context) (InjuryView, error) {
	start := time.Now()
	var (
		logs     []model.PerformanceLog
		injuries []model.InjuryRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { logs, err = s.provider.PerformanceLogs(gctx); return err })
	g.Go(func() (err error) { injuries, err = s.provider.InjuryHistory(gctx); return err })
	if err := g.Wait(); err != nil {
		return finish(ctx, s, ViewInjury, start, InjuryView{}, err)
	}

	p, err := predict(logs, injuries)
	if err != nil {
		return finish(ctx, s, ViewInjury, start, InjuryView{}, err)
	}
	ex := s.gateway.ExplainInjuryRisk(ctx, p.Score, p.Factors, logs)
	return finish(ctx, s, ViewInjury, start, injuryView(p, ex, injuries), nil)
}

// Nutrition sums the meals and analyzes the diet.
func (s *Service) Nutrition(ctx context.Context) (NutritionView, error) {
	start := time.Now()
	diet, err := s.provider.DietLogs(ctx)
	if err != nil {
		return finish(ctx, s, ViewNutrition, start, NutritionView{}, err)
	}
	v := deriveNutrition(diet)
	v.Analysis = s.gateway.AnalyzeDiet(ctx, diet)
	return finish(ctx, s, ViewNutrition, start, v, nil)
}

// FinanceCareer sums the ledger, counts goals and asks for savings advice.
func (s *Service) FinanceCareer(ctx context.Context) (FinanceCareerView, error) {
	start := time.Now()
	var (
		records []model.FinancialRecord
		goals   []model.CareerGoal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { records, err = s.provider.FinancialRecords(gctx); return err })
	g.Go(func() (err error) { goals, err = s.provider.CareerGoals(gctx); return err })
	if err := g.Wait(); err != nil {
		return finish(ctx, s, ViewFinance, start, FinanceCareerView{}, err)
	}

	v := deriveFinance(records, goals)
	v.Advice = s.gateway.AdviseFinances(ctx, records)
	return finish(ctx, s, ViewFinance, start, v, nil)
}

// Report fetches all six record sets at once, derives every view and runs
// the four narratives concurrently.
func (s *Service) Report(ctx context.Context) (ReportView, error) {
	start := time.Now()
	var (
		profile  model.AthleteProfile
		logs     []model.PerformanceLog
		injuries []model.InjuryRecord
		diet     []model.DietLog
		records  []model.FinancialRecord
		goals    []model.CareerGoal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { profile, err = s.provider.Profile(gctx); return err })
	g.Go(func() (err error) { logs, err = s.provider.PerformanceLogs(gctx); return err })
	g.Go(func() (err error) { injuries, err = s.provider.InjuryHistory(gctx); return err })
	g.Go(func() (err error) { diet, err = s.provider.DietLogs(gctx); return err })
	g.Go(func() (err error) { records, err = s.provider.FinancialRecords(gctx); return err })
	g.Go(func() (err error) { goals, err = s.provider.CareerGoals(gctx); return err })
	if err := g.Wait(); err != nil {
		return finish(ctx, s, ViewReport, start, ReportView{}, err)
	}

	p, err := predict(logs, injuries)
	if err != nil {
		return finish(ctx, s, ViewReport, start, ReportView{}, err)
	}
	r := ReportView{
		Dashboard:   deriveDashboard(profile, logs),
		Performance: derivePerformance(logs),
		Nutrition:   deriveNutrition(diet),
		Finance:     deriveFinance(records, goals),
	}

	var (
		nw errgroup.Group
		ex narrative.RiskExplanation
	)
	nw.Go(func() error { r.Dashboard.Insight = s.gateway.DashboardInsight(ctx, profile.Name, logs); return nil })
	nw.Go(func() error { ex = s.gateway.ExplainInjuryRisk(ctx, p.Score, p.Factors, logs); return nil })
	nw.Go(func() error { r.Nutrition.Analysis = s.gateway.AnalyzeDiet(ctx, diet); return nil })
	nw.Go(func() error { r.Finance.Advice = s.gateway.AdviseFinances(ctx, records); return nil })
	_ = nw.Wait()

	r.Injury = injuryView(p, ex, injuries)
	return finish(ctx, s, ViewReport, start, r, nil)
}

// CritiqueFrame critiques one practice frame synchronously.
func (s *Service) CritiqueFrame(ctx context.Context, image string) string {
	return s.gateway.CritiquePracticeFrame(ctx, image)
}

func deriveDashboard(profile model.AthleteProfile, logs []model.PerformanceLog) DashboardView {
	return DashboardView{
		Profile:        profile,
		LastSession:    lastSession(logs),
		TrainingLoad:   insight.TrainingLoadOf(logs),
		RecentSessions: insight.Recent(logs, risk.WindowSize),
	}
}

func derivePerformance(logs []model.PerformanceLog) PerformanceView {
	return PerformanceView{
		Logs:        logs,
		Sprints:     insight.SprintSeries(logs),
		LastSession: lastSession(logs),
	}
}

func deriveNutrition(diet []model.DietLog) NutritionView {
	totals := insight.MacroTotals(diet)
	return NutritionView{
		Logs:   diet,
		Totals: totals,
		Split:  insight.MacroSplit(totals),
	}
}

func deriveFinance(records []model.FinancialRecord, goals []model.CareerGoal) FinanceCareerView {
	return FinanceCareerView{
		Records:     records,
		Totals:      insight.FinancialTotals(records),
		Goals:       goals,
		GoalSummary: insight.GoalSummary(goals),
	}
}

func predict(logs []model.PerformanceLog, injuries []model.InjuryRecord) (risk.Prediction, error) {
	p, err := risk.Predict(logs, injuries)
	if err != nil {
		if errors.Is(err, risk.ErrInsufficientData) {
			metrics.RecordRiskInsufficientData()
		}
		return risk.Prediction{}, err
	}
	metrics.RecordRiskAssessment(string(risk.Level(p.Score)), p.Score)
	return p, nil
}

func injuryView(p risk.Prediction, ex narrative.RiskExplanation, injuries []model.InjuryRecord) InjuryView {
	return InjuryView{
		Assessment:     risk.Assess(p, ex.Explanation),
		Tips:           ex.Tips,
		Injuries:       injuries,
		ActiveInjuries: p.ActiveInjuries,
	}
}

func lastSession(logs []model.PerformanceLog) *model.PerformanceLog {
	l, ok := insight.LastSession(logs)
	if !ok {
		return nil
	}
	return &l
}

// finish records the view outcome and passes the result through.
func finish[T any](ctx context.Context, s *Service, view string, start time.Time, v T, err error) (T, error) {
	elapsed := time.Since(start)
	latency := float64(elapsed.Microseconds()) / 1000
	if err != nil {
		metrics.RecordView(view, metrics.OutcomeError, latency)
		s.logger.Warn(ctx, "view failed",
			logger.String("view", view),
			logger.Duration("elapsed", elapsed),
			logger.Error(err),
		)
		var zero T
		return zero, err
	}
	metrics.RecordView(view, metrics.OutcomeOK, latency)
	s.logger.Debug(ctx, "view built", logger.String("view", view), logger.Duration("elapsed", elapsed))
	return v, nil
}
