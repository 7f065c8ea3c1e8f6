// Package calendar holds the pure scheduling computations: date utilities,
// the month grid builder, the week template projector and the hours
// aggregator. Nothing in this package performs I/O or reads the wall clock;
// "today" and period boundaries are always injected by the caller.
package calendar

// Shift is the calendar view of a scheduled work assignment.
type Shift struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Color        string  `json:"color,omitempty"`
	Date         string  `json:"date"` // YYYY-MM-DD
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Duration     float64 `json:"duration"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
}

// Day is one cell of the month grid. It is derived on every request and
// never persisted; IsToday in particular is only valid at computation time.
type Day struct {
	Date           string  `json:"date"`
	IsCurrentMonth bool    `json:"is_current_month"`
	IsToday        bool    `json:"is_today"`
	Shifts         []Shift `json:"shifts"`
}

// Employee is the calendar view of an employee record.
type Employee struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Color     string `json:"color"`
}

// EmployeeHours is one row of an hours report.
type EmployeeHours struct {
	EmployeeID string  `json:"employee_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	TotalHours float64 `json:"total_hours"`
}

// TemplateShift is one captured shift inside a week template.
type TemplateShift struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Duration   float64 `json:"duration"`
	Notes      *string `json:"notes,omitempty"`
}

// WeekTemplate is a captured week of shift assignments, anchored at StartDate.
type WeekTemplate struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Shifts    []TemplateShift `json:"shifts"`
}

// ShiftDraft is a shift-creation request produced by the projector.
type ShiftDraft struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Duration   float64 `json:"duration"`
	Notes      *string `json:"notes,omitempty"`
}
