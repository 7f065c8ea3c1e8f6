package service

import (
	"context"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/cache"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/events"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

// EmployeeService handles employee business logic
type EmployeeService struct {
	employeeRepo *repository.EmployeeRepository
	shiftRepo    *repository.ShiftRepository
	publisher    *events.SchedulePublisher
	cache        *cache.CalendarCache
	logger       *logger.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo *repository.EmployeeRepository,
	shiftRepo *repository.ShiftRepository,
	publisher *events.SchedulePublisher,
	calCache *cache.CalendarCache,
	log *logger.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
		publisher:    publisher,
		cache:        calCache,
		logger:       log,
	}
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, employee *repository.Employee) error {
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return err
	}

	s.publisher.PublishEmployeeCreated(ctx, employee)

	s.logger.Info().
		Str("employee_id", employee.ID).
		Str("name", employee.FullName()).
		Msg("employee created")

	return nil
}

// GetByID gets an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*repository.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

// List lists all employees
func (s *EmployeeService) List(ctx context.Context) ([]*repository.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// Update updates an employee
func (s *EmployeeService) Update(ctx context.Context, employee *repository.Employee) error {
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return err
	}

	s.publisher.PublishEmployeeUpdated(ctx, employee)

	// Cached calendar views embed the employee's name and color, so a
	// rename or recolor makes every view containing their shifts stale.
	shifts, err := s.shiftRepo.List(ctx, repository.ShiftListParams{EmployeeID: &employee.ID})
	if err != nil {
		s.logger.Warn().Err(err).
			Str("employee_id", employee.ID).
			Msg("could not list shifts for cache invalidation")
	}
	for _, shift := range shifts {
		s.cache.InvalidateDate(ctx, shift.ShiftDate)
	}

	s.logger.Info().
		Str("employee_id", employee.ID).
		Msg("employee updated")

	return nil
}

// Delete deletes an employee along with their shifts
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	// Collect the employee's shifts first so the affected calendar
	// views can be invalidated after the cascade delete.
	shifts, err := s.shiftRepo.List(ctx, repository.ShiftListParams{EmployeeID: &id})
	if err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.PublishEmployeeDeleted(ctx, id)
	for _, shift := range shifts {
		s.cache.InvalidateDate(ctx, shift.ShiftDate)
	}

	s.logger.Info().
		Str("employee_id", id).
		Int("shifts_removed", len(shifts)).
		Msg("employee deleted")

	return nil
}
