package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/learnpulse/riskwatch-api/internal/models"
)

// PostgresRosterRepository serves the roster from the hosted student table.
type PostgresRosterRepository struct {
	db *sqlx.DB
}

// NewPostgresRosterRepository constructs a PostgresRosterRepository.
func NewPostgresRosterRepository(db *sqlx.DB) *PostgresRosterRepository {
	return &PostgresRosterRepository{db: db}
}

// studentRow is the raw table shape. Rows are normalised into models.Student
// before they leave this package so nullable columns and casing quirks never
// reach the rest of the service.
type studentRow struct {
	ID                     string         `db:"id"`
	Name                   string         `db:"name"`
	Grade                  string         `db:"grade"`
	RiskLevel              string         `db:"risk_level"`
	RiskScore              float64        `db:"risk_score"`
	RiskFactors            pq.StringArray `db:"risk_factors"`
	Attendance             float64        `db:"attendance"`
	AssignmentCompletion   float64        `db:"assignment_completion"`
	LastActivity           sql.NullString `db:"last_activity"`
	InterventionSuggestion sql.NullString `db:"intervention_suggestion"`
	RecommendedActivity    sql.NullString `db:"recommended_activity"`
}

func (r studentRow) toModel() models.Student {
	return models.Student{
		ID:                     r.ID,
		Name:                   r.Name,
		Grade:                  r.Grade,
		RiskLevel:              models.NormalizeRiskLevel(r.RiskLevel),
		RiskScore:              r.RiskScore,
		RiskFactors:            []string(r.RiskFactors),
		Attendance:             r.Attendance,
		AssignmentCompletion:   r.AssignmentCompletion,
		LastActivity:           r.LastActivity.String,
		InterventionSuggestion: r.InterventionSuggestion.String,
		RecommendedActivity:    r.RecommendedActivity.String,
	}
}

const studentColumns = `id, name, grade, risk_level, risk_score, risk_factors, attendance, assignment_completion, last_activity, intervention_suggestion, recommended_activity`

// ListStudents returns all students ordered by descending risk score.
func (r *PostgresRosterRepository) ListStudents(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students ORDER BY risk_score DESC`, studentColumns)
	var rows []studentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	students := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toModel())
	}
	return students, nil
}

// FindStudent fetches a single student by ID.
func (r *PostgresRosterRepository) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)
	var row studentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	student := row.toModel()
	return &student, nil
}

// ListActiveStrategies returns only strategies flagged active.
func (r *PostgresRosterRepository) ListActiveStrategies(ctx context.Context) ([]models.InterventionStrategy, error) {
	const query = `SELECT name, cost_level, is_active FROM intervention_strategies WHERE is_active = true`
	type strategyRow struct {
		Name      string `db:"name"`
		CostLevel string `db:"cost_level"`
		IsActive  bool   `db:"is_active"`
	}
	var rows []strategyRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}
	strategies := make([]models.InterventionStrategy, 0, len(rows))
	for _, row := range rows {
		strategies = append(strategies, models.InterventionStrategy{
			Name:      row.Name,
			CostLevel: row.CostLevel,
			IsActive:  row.IsActive,
		})
	}
	return strategies, nil
}

// UpdateIntervention persists a new suggestion for exactly one student. The
// identity column is requested back so a write that matched no row is
// reported instead of silently succeeding.
func (r *PostgresRosterRepository) UpdateIntervention(ctx context.Context, id, suggestion string) error {
	const query = `UPDATE students SET intervention_suggestion = $2 WHERE id = $1 RETURNING id`
	var updatedID string
	if err := r.db.GetContext(ctx, &updatedID, query, id, suggestion); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("update intervention: %w", err)
	}
	return nil
}

// ComposeOverrideValue builds the suggestion text persisted by an override.
// The hosted table keeps only the strategy name; the teacher's note is
// accepted at the API but not stored by this variant.
func (r *PostgresRosterRepository) ComposeOverrideValue(strategy, note string) string {
	return strategy
}

// Name identifies the store variant for logging.
func (r *PostgresRosterRepository) Name() string {
	return "postgres"
}
