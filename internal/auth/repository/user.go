package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/database"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
)

// User is an account that can sign in to the API. An employee-role user
// is linked to the employee record it belongs to.
type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`

	// Joined from employees; nil for admin accounts.
	EmployeeID *string `db:"employee_id" json:"employee_id,omitempty"`
}

// UserRepository handles user persistence
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

// GetByUsername gets a user by username, with the linked employee ID if any
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User

	query := `
		SELECT u.id, u.username, u.password_hash, u.role, u.created_at, u.updated_at,
		       e.id AS employee_id
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.username = $1 AND u.deleted_at IS NULL
	`
	err := r.db.GetContext(ctx, &user, query, username)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("user")
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
