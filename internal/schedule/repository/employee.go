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

// Employee represents a schedulable staff member
type Employee struct {
	ID        string     `db:"id" json:"id"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	Color     string     `db:"color" json:"color"` // calendar rendering color
	UserID    *string    `db:"user_id" json:"user_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeRepository handles employee persistence
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee
func (r *EmployeeRepository) Create(ctx context.Context, emp *Employee) error {
	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}
	if emp.Color == "" {
		emp.Color = "#3b82f6"
	}

	query := `
		INSERT INTO employees (id, first_name, last_name, color, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		emp.ID, emp.FirstName, emp.LastName, emp.Color, emp.UserID,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
}

// GetByID gets an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee

	query := `
		SELECT id, first_name, last_name, color, user_id, created_at, updated_at
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`
	err := r.db.GetContext(ctx, &emp, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("employee")
	}
	if err != nil {
		return nil, err
	}

	return &emp, nil
}

// GetByUserID gets the employee linked to a user account, if any
func (r *EmployeeRepository) GetByUserID(ctx context.Context, userID string) (*Employee, error) {
	var emp Employee

	query := `
		SELECT id, first_name, last_name, color, user_id, created_at, updated_at
		FROM employees
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	err := r.db.GetContext(ctx, &emp, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &emp, nil
}

// List lists all employees ordered by name
func (r *EmployeeRepository) List(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee

	query := `
		SELECT id, first_name, last_name, color, user_id, created_at, updated_at
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY last_name, first_name
	`
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update updates an employee
func (r *EmployeeRepository) Update(ctx context.Context, emp *Employee) error {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, color = $4, user_id = $5, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query,
		emp.ID, emp.FirstName, emp.LastName, emp.Color, emp.UserID,
	)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("employee")
	}

	return nil
}

// Delete soft deletes an employee and all of their shifts. The cascade runs
// in one transaction so the calendar never shows shifts for a removed
// employee.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE employees SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
		if err != nil {
			return err
		}

		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.NotFound("employee")
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE shifts SET deleted_at = NOW() WHERE employee_id = $1 AND deleted_at IS NULL`, id)
		return err
	})
}
