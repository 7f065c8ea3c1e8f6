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

// TimeEntry records actual worked time: one clock-in, optionally closed by
// a clock-out.
type TimeEntry struct {
	ID           string     `db:"id" json:"id"`
	EmployeeID   string     `db:"employee_id" json:"employee_id"`
	EntryDate    string     `db:"entry_date" json:"entry_date"` // YYYY-MM-DD
	ClockIn      time.Time  `db:"clock_in" json:"clock_in"`
	ClockOut     *time.Time `db:"clock_out" json:"clock_out,omitempty"`
	TotalMinutes int        `db:"total_minutes" json:"total_minutes"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// TimeEntryListParams holds parameters for listing time entries
type TimeEntryListParams struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
}

// TimeEntryRepository handles time entry persistence
type TimeEntryRepository struct {
	db *database.DB
}

// NewTimeEntryRepository creates a new time entry repository
func NewTimeEntryRepository(db *database.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

// Create creates a new time entry
func (r *TimeEntryRepository) Create(ctx context.Context, entry *TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO time_entries (id, employee_id, entry_date, clock_in)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.EmployeeID, entry.EntryDate, entry.ClockIn,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
}

// GetActiveByEmployeeID gets the employee's open entry (clocked in, not
// yet out). Returns nil when the employee is not clocked in.
func (r *TimeEntryRepository) GetActiveByEmployeeID(ctx context.Context, employeeID string) (*TimeEntry, error) {
	var entry TimeEntry

	query := `
		SELECT id, employee_id, entry_date::text AS entry_date, clock_in, clock_out,
		       total_minutes, created_at, updated_at
		FROM time_entries
		WHERE employee_id = $1 AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &entry, query, employeeID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// Update updates a time entry
func (r *TimeEntryRepository) Update(ctx context.Context, entry *TimeEntry) error {
	query := `
		UPDATE time_entries
		SET clock_out = $2, total_minutes = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, entry.ID, entry.ClockOut, entry.TotalMinutes)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("time entry")
	}

	return nil
}

// List lists time entries with filters, newest first
func (r *TimeEntryRepository) List(ctx context.Context, params TimeEntryListParams) ([]*TimeEntry, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argNum := 1

	if params.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND employee_id = $%d", argNum)
		args = append(args, *params.EmployeeID)
		argNum++
	}
	if params.StartDate != nil {
		whereClause += fmt.Sprintf(" AND entry_date >= $%d::date", argNum)
		args = append(args, *params.StartDate)
		argNum++
	}
	if params.EndDate != nil {
		whereClause += fmt.Sprintf(" AND entry_date <= $%d::date", argNum)
		args = append(args, *params.EndDate)
		argNum++
	}

	query := `
		SELECT id, employee_id, entry_date::text AS entry_date, clock_in, clock_out,
		       total_minutes, created_at, updated_at
		FROM time_entries
	` + whereClause + `
		ORDER BY clock_in DESC
	`

	var entries []*TimeEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, err
	}

	return entries, nil
}
