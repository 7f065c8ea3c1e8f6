package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Employee events
	EventEmployeeCreated = "schedule.employee.created"
	EventEmployeeUpdated = "schedule.employee.updated"
	EventEmployeeDeleted = "schedule.employee.deleted"

	// Shift events
	EventShiftCreated  = "schedule.shift.created"
	EventShiftUpdated  = "schedule.shift.updated"
	EventShiftDeleted  = "schedule.shift.deleted"
	EventShiftReminder = "schedule.shift.reminder"

	// Week template events
	EventWeekTemplateApplied = "schedule.weektemplate.applied"

	// Time tracking events
	EventTimeClockIn  = "schedule.time.clock_in"
	EventTimeClockOut = "schedule.time.clock_out"
)

// Exchange names
const (
	ExchangeScheduleEvents = "schedule.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// GenerateEventID returns a unique event identifier
func GenerateEventID() string {
	return uuid.New().String()
}

// Employee events

// EmployeeCreatedEvent is published when an employee is created
type EmployeeCreatedEvent struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	UserID     *string `json:"user_id,omitempty"`
}

// EmployeeUpdatedEvent is published when an employee is updated
type EmployeeUpdatedEvent struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

// EmployeeDeletedEvent is published when an employee is deleted
type EmployeeDeletedEvent struct {
	EmployeeID string `json:"employee_id"`
}

// Shift events

// ShiftChangedEvent is published when a shift is created, updated or deleted.
// Consumers re-fetch the affected window instead of patching local state.
type ShiftChangedEvent struct {
	ShiftID    string `json:"shift_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Status     string `json:"status"`
}

// ShiftReminderEvent is published by the reminder job for next-day shifts
type ShiftReminderEvent struct {
	ShiftID    string `json:"shift_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// WeekTemplateAppliedEvent is published after a week template projection
type WeekTemplateAppliedEvent struct {
	TemplateID string `json:"template_id"`
	TargetDate string `json:"target_date"`
	Requested  int    `json:"requested"`
	Created    int    `json:"created"`
}

// Time tracking events

// TimeClockEvent is published on clock in and clock out
type TimeClockEvent struct {
	EntryID      string `json:"entry_id"`
	EmployeeID   string `json:"employee_id"`
	EntryDate    string `json:"entry_date"`
	TotalMinutes int    `json:"total_minutes,omitempty"`
}
