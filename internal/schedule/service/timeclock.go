package service

import (
	"context"
	"time"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/events"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

// TimeclockService handles clock in/out for employees
type TimeclockService struct {
	timeEntryRepo *repository.TimeEntryRepository
	employeeRepo  *repository.EmployeeRepository
	publisher     *events.SchedulePublisher
	logger        *logger.Logger
	now           func() time.Time
}

// NewTimeclockService creates a new timeclock service
func NewTimeclockService(
	timeEntryRepo *repository.TimeEntryRepository,
	employeeRepo *repository.EmployeeRepository,
	publisher *events.SchedulePublisher,
	log *logger.Logger,
) *TimeclockService {
	return &TimeclockService{
		timeEntryRepo: timeEntryRepo,
		employeeRepo:  employeeRepo,
		publisher:     publisher,
		logger:        log,
		now:           time.Now,
	}
}

// ClockIn opens a time entry for the employee. An employee can have at
// most one open entry at a time.
func (s *TimeclockService) ClockIn(ctx context.Context, employeeID string) (*repository.TimeEntry, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	active, err := s.timeEntryRepo.GetActiveByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, errors.Conflict("employee is already clocked in")
	}

	now := s.now()
	entry := &repository.TimeEntry{
		EmployeeID: employeeID,
		EntryDate:  calendar.FormatDate(now),
		ClockIn:    now,
	}
	if err := s.timeEntryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.publisher.PublishClockIn(ctx, entry)

	s.logger.Info().
		Str("entry_id", entry.ID).
		Str("employee_id", employeeID).
		Msg("employee clocked in")

	return entry, nil
}

// ClockOut closes the employee's open time entry and records the total
// worked minutes.
func (s *TimeclockService) ClockOut(ctx context.Context, employeeID string) (*repository.TimeEntry, error) {
	active, err := s.timeEntryRepo.GetActiveByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, errors.Conflict("employee is not clocked in")
	}

	now := s.now()
	active.ClockOut = &now
	active.TotalMinutes = int(now.Sub(active.ClockIn).Minutes())

	if err := s.timeEntryRepo.Update(ctx, active); err != nil {
		return nil, err
	}

	s.publisher.PublishClockOut(ctx, active)

	s.logger.Info().
		Str("entry_id", active.ID).
		Str("employee_id", employeeID).
		Int("total_minutes", active.TotalMinutes).
		Msg("employee clocked out")

	return active, nil
}

// List lists time entries with filters
func (s *TimeclockService) List(ctx context.Context, params repository.TimeEntryListParams) ([]*repository.TimeEntry, error) {
	return s.timeEntryRepo.List(ctx, params)
}
