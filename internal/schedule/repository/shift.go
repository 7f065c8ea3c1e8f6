package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/database"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
)

// Shift statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Shift represents a single scheduled work assignment: one employee, one
// calendar date, one start/end time pair.
type Shift struct {
	ID         string     `db:"id" json:"id"`
	EmployeeID string     `db:"employee_id" json:"employee_id"`
	ShiftDate  string     `db:"shift_date" json:"shift_date"` // YYYY-MM-DD
	StartTime  string     `db:"start_time" json:"start_time"` // HH:MM
	EndTime    string     `db:"end_time" json:"end_time"`     // HH:MM
	Duration   float64    `db:"duration" json:"duration"`     // decimal hours
	Notes      *string    `db:"notes" json:"notes,omitempty"`
	Status     string     `db:"status" json:"status"` // draft, published
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at" json:"-"`
	CreatedBy  *string    `db:"created_by" json:"created_by,omitempty"`

	// Joined fields (populated by list queries)
	EmployeeName  *string `db:"employee_name" json:"employee_name,omitempty"`
	EmployeeColor *string `db:"employee_color" json:"employee_color,omitempty"`
}

// ShiftListParams holds parameters for listing shifts
type ShiftListParams struct {
	EmployeeID *string
	StartDate  *string // YYYY-MM-DD, inclusive
	EndDate    *string // YYYY-MM-DD, inclusive
	Status     *string
}

// ShiftRepository handles shift persistence
type ShiftRepository struct {
	db *database.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *database.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// Create creates a new shift
func (r *ShiftRepository) Create(ctx context.Context, shift *Shift) error {
	if shift.ID == "" {
		shift.ID = uuid.New().String()
	}
	if shift.Status == "" {
		shift.Status = StatusDraft
	}

	query := `
		INSERT INTO shifts (id, employee_id, shift_date, start_time, end_time, duration, notes, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		shift.ID, shift.EmployeeID, shift.ShiftDate, shift.StartTime, shift.EndTime,
		shift.Duration, shift.Notes, shift.Status, shift.CreatedBy,
	).Scan(&shift.CreatedAt, &shift.UpdatedAt)
}

// GetByID gets a shift by ID
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*Shift, error) {
	var shift Shift

	query := `
		SELECT s.id, s.employee_id, s.shift_date::text AS shift_date, s.start_time, s.end_time,
		       s.duration, s.notes, s.status, s.created_at, s.updated_at, s.created_by,
		       CONCAT(e.first_name, ' ', e.last_name) AS employee_name,
		       e.color AS employee_color
		FROM shifts s
		LEFT JOIN employees e ON s.employee_id = e.id
		WHERE s.id = $1 AND s.deleted_at IS NULL
	`
	err := r.db.GetContext(ctx, &shift, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("shift")
	}
	if err != nil {
		return nil, err
	}

	return &shift, nil
}

// List lists shifts with filters, ordered by date then start time
func (r *ShiftRepository) List(ctx context.Context, params ShiftListParams) ([]*Shift, error) {
	whereClause := "WHERE s.deleted_at IS NULL"
	args := []interface{}{}
	argNum := 1

	if params.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND s.employee_id = $%d", argNum)
		args = append(args, *params.EmployeeID)
		argNum++
	}
	if params.StartDate != nil {
		whereClause += fmt.Sprintf(" AND s.shift_date >= $%d::date", argNum)
		args = append(args, *params.StartDate)
		argNum++
	}
	if params.EndDate != nil {
		whereClause += fmt.Sprintf(" AND s.shift_date <= $%d::date", argNum)
		args = append(args, *params.EndDate)
		argNum++
	}
	if params.Status != nil {
		whereClause += fmt.Sprintf(" AND s.status = $%d", argNum)
		args = append(args, *params.Status)
		argNum++
	}

	query := `
		SELECT s.id, s.employee_id, s.shift_date::text AS shift_date, s.start_time, s.end_time,
		       s.duration, s.notes, s.status, s.created_at, s.updated_at, s.created_by,
		       CONCAT(e.first_name, ' ', e.last_name) AS employee_name,
		       e.color AS employee_color
		FROM shifts s
		LEFT JOIN employees e ON s.employee_id = e.id
	` + whereClause + `
		ORDER BY s.shift_date, s.start_time
	`

	var shifts []*Shift
	if err := r.db.SelectContext(ctx, &shifts, query, args...); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListByDateRange lists all shifts within [startDate, endDate] inclusive
func (r *ShiftRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*Shift, error) {
	return r.List(ctx, ShiftListParams{StartDate: &startDate, EndDate: &endDate})
}

// Update updates a shift
func (r *ShiftRepository) Update(ctx context.Context, shift *Shift) error {
	query := `
		UPDATE shifts
		SET employee_id = $2, shift_date = $3, start_time = $4, end_time = $5,
		    duration = $6, notes = $7, status = $8, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query,
		shift.ID, shift.EmployeeID, shift.ShiftDate, shift.StartTime, shift.EndTime,
		shift.Duration, shift.Notes, shift.Status,
	)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("shift")
	}

	return nil
}

// Delete soft deletes a shift
func (r *ShiftRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE shifts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("shift")
	}

	return nil
}
