package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okian/stride/internal/domain/model"
)

// Querier is the subset of *pgxpool.Pool the provider reads through.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Read-only queries against the existing schema. Dates are rendered as text so
// they land in model.Date unchanged.
const (
	sqlProfile = `SELECT id, name, sport, age, height_cm::float8, weight_kg::float8, role, coalesce(avatar_url, '')
		FROM athlete_profiles WHERE id = $1`
	sqlPerformance = `SELECT id, to_char(date, 'YYYY-MM-DD'), metric, value::float8, unit, strain::float8, duration_min
		FROM performance_logs WHERE athlete_id = $1 ORDER BY date ASC, id ASC`
	sqlInjuries = `SELECT id, to_char(date, 'YYYY-MM-DD'), area, severity, status, pain_level
		FROM injury_records WHERE athlete_id = $1 ORDER BY date ASC, id ASC`
	sqlDiet = `SELECT id, to_char(date, 'YYYY-MM-DD'), meal, calories::float8, protein::float8, carbs::float8, fats::float8, description
		FROM diet_logs WHERE athlete_id = $1 ORDER BY date ASC, id ASC`
	sqlFinance = `SELECT id, to_char(date, 'YYYY-MM-DD'), type, category, amount::float8, description
		FROM financial_records WHERE athlete_id = $1 ORDER BY date ASC, id ASC`
	sqlGoals = `SELECT id, title, to_char(target_date, 'YYYY-MM-DD'), status
		FROM career_goals WHERE athlete_id = $1 ORDER BY target_date ASC, id ASC`
)

// OpenPool creates and validates a connection pool.
func OpenPool(ctx context.Context, databaseURL string, maxConns int) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns) //nolint:gosec // bounded by config
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// PostgresProvider reads one athlete's records from Postgres.
type PostgresProvider struct {
	db        Querier
	athleteID string
}

// NewPostgresProvider scopes every read to athleteID.
func NewPostgresProvider(db Querier, athleteID string) *PostgresProvider {
	return &PostgresProvider{db: db, athleteID: athleteID}
}

func (p *PostgresProvider) Profile(ctx context.Context) (model.AthleteProfile, error) {
	var a model.AthleteProfile
	var role string
	err := p.db.QueryRow(ctx, sqlProfile, p.athleteID).Scan(
		&a.ID, &a.Name, &a.Sport, &a.Age, &a.HeightCm, &a.WeightKg, &role, &a.AvatarURL,
	)
	if err != nil {
		return model.AthleteProfile{}, unavailable(OpProfile, err)
	}
	a.Role = model.Role(role)
	if err := model.Validate(a); err != nil {
		return model.AthleteProfile{}, unavailable(OpProfile, err)
	}
	return a, nil
}

func (p *PostgresProvider) PerformanceLogs(ctx context.Context) ([]model.PerformanceLog, error) {
	return queryAll(ctx, p, OpPerformance, sqlPerformance, func(row pgx.Rows) (model.PerformanceLog, error) {
		var l model.PerformanceLog
		var date string
		err := row.Scan(&l.ID, &date, &l.Metric, &l.Value, &l.Unit, &l.Strain, &l.DurationMin)
		l.Date = model.Date(date)
		return l, err
	})
}

func (p *PostgresProvider) InjuryHistory(ctx context.Context) ([]model.InjuryRecord, error) {
	return queryAll(ctx, p, OpInjuries, sqlInjuries, func(row pgx.Rows) (model.InjuryRecord, error) {
		var r model.InjuryRecord
		var date, severity, status string
		err := row.Scan(&r.ID, &date, &r.Area, &severity, &status, &r.PainLevel)
		r.Date, r.Severity, r.Status = model.Date(date), model.Severity(severity), model.InjuryStatus(status)
		return r, err
	})
}

func (p *PostgresProvider) DietLogs(ctx context.Context) ([]model.DietLog, error) {
	return queryAll(ctx, p, OpDiet, sqlDiet, func(row pgx.Rows) (model.DietLog, error) {
		var d model.DietLog
		var date string
		err := row.Scan(&d.ID, &date, &d.Meal, &d.Calories, &d.Protein, &d.Carbs, &d.Fats, &d.Description)
		d.Date = model.Date(date)
		return d, err
	})
}

func (p *PostgresProvider) FinancialRecords(ctx context.Context) ([]model.FinancialRecord, error) {
	return queryAll(ctx, p, OpFinance, sqlFinance, func(row pgx.Rows) (model.FinancialRecord, error) {
		var f model.FinancialRecord
		var date, typ string
		err := row.Scan(&f.ID, &date, &typ, &f.Category, &f.Amount, &f.Description)
		f.Date, f.Type = model.Date(date), model.TransactionType(typ)
		return f, err
	})
}

func (p *PostgresProvider) CareerGoals(ctx context.Context) ([]model.CareerGoal, error) {
	return queryAll(ctx, p, OpGoals, sqlGoals, func(row pgx.Rows) (model.CareerGoal, error) {
		var g model.CareerGoal
		var target, status string
		err := row.Scan(&g.ID, &g.Title, &target, &status)
		g.TargetDate, g.Status = model.Date(target), model.GoalStatus(status)
		return g, err
	})
}

// queryAll reads every row or nothing. Rows that break a model invariant fail the read.
func queryAll[T any](ctx context.Context, p *PostgresProvider, op, sql string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := p.db.Query(ctx, sql, p.athleteID)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, unavailable(op, fmt.Errorf("scan: %w", err))
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	if err := model.Validate(out); err != nil {
		return nil, unavailable(op, err)
	}
	return out, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataUnavailable, op, err)
}
