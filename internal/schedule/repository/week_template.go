package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/database"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
)

// WeekTemplate is a saved snapshot of one week's shift assignments,
// reusable by projecting it onto a different week.
type WeekTemplate struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	StartDate   string    `db:"start_date" json:"start_date"` // YYYY-MM-DD, the captured Monday
	EndDate     string    `db:"end_date" json:"end_date"`     // YYYY-MM-DD, the captured Sunday
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Shifts is populated by GetByID, ordered by capture position.
	Shifts []*WeekTemplateShift `json:"shifts,omitempty"`
}

// WeekTemplateShift is one captured shift inside a week template. All
// dates fall within the template's [StartDate, EndDate] window.
type WeekTemplateShift struct {
	ID             string  `db:"id" json:"id"`
	WeekTemplateID string  `db:"week_template_id" json:"-"`
	EmployeeID     string  `db:"employee_id" json:"employee_id"`
	ShiftDate      string  `db:"shift_date" json:"shift_date"`
	StartTime      string  `db:"start_time" json:"start_time"`
	EndTime        string  `db:"end_time" json:"end_time"`
	Duration       float64 `db:"duration" json:"duration"`
	Notes          *string `db:"notes" json:"notes,omitempty"`
	Position       int     `db:"position" json:"-"`
}

// WeekTemplateRepository handles week template persistence
type WeekTemplateRepository struct {
	db *database.DB
}

// NewWeekTemplateRepository creates a new week template repository
func NewWeekTemplateRepository(db *database.DB) *WeekTemplateRepository {
	return &WeekTemplateRepository{db: db}
}

// Create creates a week template together with its captured shifts
func (r *WeekTemplateRepository) Create(ctx context.Context, tpl *WeekTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}

	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO week_templates (id, name, description, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`
		if err := tx.QueryRowxContext(ctx, query,
			tpl.ID, tpl.Name, tpl.Description, tpl.StartDate, tpl.EndDate,
		).Scan(&tpl.CreatedAt); err != nil {
			return err
		}

		for i, shift := range tpl.Shifts {
			if shift.ID == "" {
				shift.ID = uuid.New().String()
			}
			shift.WeekTemplateID = tpl.ID
			shift.Position = i

			shiftQuery := `
				INSERT INTO week_template_shifts
					(id, week_template_id, employee_id, shift_date, start_time, end_time, duration, notes, position)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`
			if _, err := tx.ExecContext(ctx, shiftQuery,
				shift.ID, shift.WeekTemplateID, shift.EmployeeID, shift.ShiftDate,
				shift.StartTime, shift.EndTime, shift.Duration, shift.Notes, shift.Position,
			); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetByID gets a week template with its shifts
func (r *WeekTemplateRepository) GetByID(ctx context.Context, id string) (*WeekTemplate, error) {
	var tpl WeekTemplate

	query := `
		SELECT id, name, description, start_date::text AS start_date, end_date::text AS end_date, created_at
		FROM week_templates
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &tpl, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("week template")
	}
	if err != nil {
		return nil, err
	}

	shiftsQuery := `
		SELECT id, week_template_id, employee_id, shift_date::text AS shift_date,
		       start_time, end_time, duration, notes, position
		FROM week_template_shifts
		WHERE week_template_id = $1
		ORDER BY position
	`
	if err := r.db.SelectContext(ctx, &tpl.Shifts, shiftsQuery, id); err != nil {
		return nil, err
	}

	return &tpl, nil
}

// List lists all week templates, newest first, without their shifts
func (r *WeekTemplateRepository) List(ctx context.Context) ([]*WeekTemplate, error) {
	var templates []*WeekTemplate

	query := `
		SELECT id, name, description, start_date::text AS start_date, end_date::text AS end_date, created_at
		FROM week_templates
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, err
	}

	return templates, nil
}

// Delete deletes a week template and its shifts
func (r *WeekTemplateRepository) Delete(ctx context.Context, id string) error {
	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM week_template_shifts WHERE week_template_id = $1`, id); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM week_templates WHERE id = $1`, id)
		if err != nil {
			return err
		}

		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.NotFound("week template")
		}

		return nil
	})
}
