// Package actor carries the authenticated identity through the request
// lifecycle. Handlers and services read the actor from the context instead
// of consulting any global session state.
package actor

import (
	"context"
	"fmt"
)

// Roles known to the scheduler.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Actor represents the entity performing an action in the system.
type Actor struct {
	// ID is the unique identifier of the actor (user ID)
	ID string `json:"id"`

	// Username is the actor's login name
	Username string `json:"username"`

	// Role is either RoleAdmin or RoleEmployee
	Role string `json:"role"`

	// EmployeeID links the account to an employee record, when one exists.
	// Nil for pure admin accounts.
	EmployeeID *string `json:"employee_id,omitempty"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// String returns a string representation of the actor for logging
func (a *Actor) String() string {
	if a == nil {
		return "system"
	}
	return fmt.Sprintf("%s (%s)", a.Username, a.Role)
}

// contextKey is the type for context keys to avoid collisions
type contextKey string

const actorContextKey contextKey = "actor"

// FromContext retrieves the Actor from the context.
// Returns nil if no actor is present (e.g., system operations).
func FromContext(ctx context.Context) *Actor {
	if ctx == nil {
		return nil
	}
	a, ok := ctx.Value(actorContextKey).(*Actor)
	if !ok {
		return nil
	}
	return a
}

// WithActor returns a new context with the Actor attached.
func WithActor(ctx context.Context, a *Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorContextKey, a)
}

// SystemActor returns an Actor representing the system itself.
// Use this for scheduled jobs and system-initiated operations.
func SystemActor() *Actor {
	return &Actor{
		ID:       "00000000-0000-0000-0000-000000000000",
		Username: "system",
		Role:     RoleAdmin,
	}
}

// IsSystem returns true if the actor represents the system.
func (a *Actor) IsSystem() bool {
	if a == nil {
		return true
	}
	return a.ID == "00000000-0000-0000-0000-000000000000"
}
