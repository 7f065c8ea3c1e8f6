package service

import (
	"context"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/cache"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/events"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/actor"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

// ShiftService handles shift business logic
type ShiftService struct {
	shiftRepo    *repository.ShiftRepository
	employeeRepo *repository.EmployeeRepository
	publisher    *events.SchedulePublisher
	cache        *cache.CalendarCache
	logger       *logger.Logger
}

// NewShiftService creates a new shift service
func NewShiftService(
	shiftRepo *repository.ShiftRepository,
	employeeRepo *repository.EmployeeRepository,
	publisher *events.SchedulePublisher,
	calCache *cache.CalendarCache,
	log *logger.Logger,
) *ShiftService {
	return &ShiftService{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		publisher:    publisher,
		cache:        calCache,
		logger:       log,
	}
}

// validateShift checks the date and times and recomputes the duration.
// The stored duration is always derived from the times, never taken from
// the client, which keeps the duration invariant by construction.
func validateShift(shift *repository.Shift) error {
	if _, err := calendar.ParseDate(shift.ShiftDate); err != nil {
		return errors.BadRequest(err.Error())
	}

	duration, err := calendar.ShiftDuration(shift.StartTime, shift.EndTime)
	if err != nil {
		return errors.BadRequest(err.Error())
	}
	shift.Duration = duration

	if shift.Status != "" && shift.Status != repository.StatusDraft && shift.Status != repository.StatusPublished {
		return errors.BadRequest("status must be draft or published")
	}

	return nil
}

// Create creates a new shift
func (s *ShiftService) Create(ctx context.Context, shift *repository.Shift) error {
	if err := validateShift(shift); err != nil {
		return err
	}

	if _, err := s.employeeRepo.GetByID(ctx, shift.EmployeeID); err != nil {
		return err
	}

	if who := actor.FromContext(ctx); who != nil {
		shift.CreatedBy = &who.ID
	}

	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return err
	}

	s.publisher.PublishShiftCreated(ctx, shift)
	s.cache.InvalidateDate(ctx, shift.ShiftDate)

	s.logger.Info().
		Str("shift_id", shift.ID).
		Str("employee_id", shift.EmployeeID).
		Str("date", shift.ShiftDate).
		Msg("shift created")

	return nil
}

// GetByID gets a shift by ID
func (s *ShiftService) GetByID(ctx context.Context, id string) (*repository.Shift, error) {
	return s.shiftRepo.GetByID(ctx, id)
}

// List lists shifts with filters
func (s *ShiftService) List(ctx context.Context, params repository.ShiftListParams) ([]*repository.Shift, error) {
	return s.shiftRepo.List(ctx, params)
}

// Update updates a shift
func (s *ShiftService) Update(ctx context.Context, shift *repository.Shift) error {
	if err := validateShift(shift); err != nil {
		return err
	}

	existing, err := s.shiftRepo.GetByID(ctx, shift.ID)
	if err != nil {
		return err
	}

	if _, err := s.employeeRepo.GetByID(ctx, shift.EmployeeID); err != nil {
		return err
	}

	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		return err
	}

	s.publisher.PublishShiftUpdated(ctx, shift)
	s.cache.InvalidateDate(ctx, shift.ShiftDate)
	if existing.ShiftDate != shift.ShiftDate {
		// The shift moved: the old date's views are stale too.
		s.cache.InvalidateDate(ctx, existing.ShiftDate)
	}

	s.logger.Info().
		Str("shift_id", shift.ID).
		Str("employee_id", shift.EmployeeID).
		Str("date", shift.ShiftDate).
		Msg("shift updated")

	return nil
}

// Delete deletes a shift
func (s *ShiftService) Delete(ctx context.Context, id string) error {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.PublishShiftDeleted(ctx, shift)
	s.cache.InvalidateDate(ctx, shift.ShiftDate)

	s.logger.Info().
		Str("shift_id", id).
		Msg("shift deleted")

	return nil
}
