package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/database"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
)

// ShiftTemplate is a reusable named time-range pattern (e.g. "Morning",
// 09:00-17:00), optionally restricted to specific weekdays (Monday = 0).
// Shifts snapshot template values at creation time, so editing a template
// never rewrites shifts that were created from it.
type ShiftTemplate struct {
	ID         string        `db:"id" json:"id"`
	Name       string        `db:"name" json:"name"`
	StartTime  string        `db:"start_time" json:"start_time"` // HH:MM
	EndTime    string        `db:"end_time" json:"end_time"`     // HH:MM
	Duration   float64       `db:"duration" json:"duration"`
	DaysOfWeek pq.Int64Array `db:"days_of_week" json:"days_of_week,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
	DeletedAt  *time.Time    `db:"deleted_at" json:"-"`
}

// ShiftTemplateRepository handles shift template persistence
type ShiftTemplateRepository struct {
	db *database.DB
}

// NewShiftTemplateRepository creates a new shift template repository
func NewShiftTemplateRepository(db *database.DB) *ShiftTemplateRepository {
	return &ShiftTemplateRepository{db: db}
}

// Create creates a new shift template
func (r *ShiftTemplateRepository) Create(ctx context.Context, tmpl *ShiftTemplate) error {
	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}

	query := `
		INSERT INTO shift_templates (id, name, start_time, end_time, duration, days_of_week)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		tmpl.ID, tmpl.Name, tmpl.StartTime, tmpl.EndTime, tmpl.Duration, tmpl.DaysOfWeek,
	).Scan(&tmpl.CreatedAt, &tmpl.UpdatedAt)
}

// GetByID gets a shift template by ID
func (r *ShiftTemplateRepository) GetByID(ctx context.Context, id string) (*ShiftTemplate, error) {
	var tmpl ShiftTemplate

	query := `
		SELECT id, name, start_time, end_time, duration, days_of_week, created_at, updated_at
		FROM shift_templates
		WHERE id = $1 AND deleted_at IS NULL
	`
	err := r.db.GetContext(ctx, &tmpl, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("shift template")
	}
	if err != nil {
		return nil, err
	}

	return &tmpl, nil
}

// List lists all shift templates ordered by name
func (r *ShiftTemplateRepository) List(ctx context.Context) ([]*ShiftTemplate, error) {
	var templates []*ShiftTemplate

	query := `
		SELECT id, name, start_time, end_time, duration, days_of_week, created_at, updated_at
		FROM shift_templates
		WHERE deleted_at IS NULL
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, err
	}

	return templates, nil
}

// Update updates a shift template
func (r *ShiftTemplateRepository) Update(ctx context.Context, tmpl *ShiftTemplate) error {
	query := `
		UPDATE shift_templates
		SET name = $2, start_time = $3, end_time = $4, duration = $5, days_of_week = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query,
		tmpl.ID, tmpl.Name, tmpl.StartTime, tmpl.EndTime, tmpl.Duration, tmpl.DaysOfWeek,
	)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("shift template")
	}

	return nil
}

// Delete soft deletes a shift template
func (r *ShiftTemplateRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE shift_templates SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("shift template")
	}

	return nil
}
