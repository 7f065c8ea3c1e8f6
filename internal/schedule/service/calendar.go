package service

import (
	"context"
	"time"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/cache"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

// CalendarService builds calendar views and hours reports
type CalendarService struct {
	shiftRepo    *repository.ShiftRepository
	employeeRepo *repository.EmployeeRepository
	cache        *cache.CalendarCache
	logger       *logger.Logger
	now          func() time.Time
}

// NewCalendarService creates a new calendar service
func NewCalendarService(
	shiftRepo *repository.ShiftRepository,
	employeeRepo *repository.EmployeeRepository,
	calCache *cache.CalendarCache,
	log *logger.Logger,
) *CalendarService {
	return &CalendarService{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		cache:        calCache,
		logger:       log,
		now:          time.Now,
	}
}

func toCalendarShift(shift *repository.Shift) calendar.Shift {
	cs := calendar.Shift{
		ID:         shift.ID,
		EmployeeID: shift.EmployeeID,
		Date:       shift.ShiftDate,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
		Duration:   shift.Duration,
		Status:     shift.Status,
		Notes:      shift.Notes,
	}
	if shift.EmployeeName != nil {
		cs.EmployeeName = *shift.EmployeeName
	}
	if shift.EmployeeColor != nil {
		cs.Color = *shift.EmployeeColor
	}
	return cs
}

func toCalendarShifts(shifts []*repository.Shift) []calendar.Shift {
	out := make([]calendar.Shift, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, toCalendarShift(shift))
	}
	return out
}

func toCalendarEmployees(employees []*repository.Employee) []calendar.Employee {
	out := make([]calendar.Employee, 0, len(employees))
	for _, emp := range employees {
		out = append(out, calendar.Employee{
			ID:        emp.ID,
			FirstName: emp.FirstName,
			LastName:  emp.LastName,
			Color:     emp.Color,
		})
	}
	return out
}

// MonthView returns the 42-cell month grid. month is zero-based.
// Cached grids get their today marking restamped, since the marking is
// only valid at the time the grid was built.
func (s *CalendarService) MonthView(ctx context.Context, year, month int) ([]calendar.Day, error) {
	if month < 0 || month > 11 {
		return nil, errors.BadRequest("month must be between 0 (January) and 11 (December)")
	}

	key := cache.MonthKey(year, month)
	if days, ok := s.cache.GetDays(ctx, key); ok {
		calendar.StampToday(days, s.now())
		return days, nil
	}

	startDate, endDate := calendar.GridRange(year, month)
	shifts, err := s.shiftRepo.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	days := calendar.MonthGrid(year, month, toCalendarShifts(shifts), s.now())
	s.cache.SetDays(ctx, key, days)

	return days, nil
}

// WeekView returns the 7 days of the week containing the given date.
func (s *CalendarService) WeekView(ctx context.Context, date string) ([]calendar.Day, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return nil, errors.BadRequest(err.Error())
	}

	monday, sunday := calendar.WeekBounds(day)
	key := cache.WeekKey(calendar.FormatDate(monday))
	if days, ok := s.cache.GetDays(ctx, key); ok {
		calendar.StampToday(days, s.now())
		return days, nil
	}

	shifts, err := s.shiftRepo.ListByDateRange(ctx, calendar.FormatDate(monday), calendar.FormatDate(sunday))
	if err != nil {
		return nil, err
	}

	days := calendar.WeekRow(monday, toCalendarShifts(shifts), s.now())
	s.cache.SetDays(ctx, key, days)

	return days, nil
}

// WeekHours reports per-employee worked hours for the week containing
// the given date, every employee included, sorted by hours descending.
func (s *CalendarService) WeekHours(ctx context.Context, date string) ([]calendar.EmployeeHours, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return nil, errors.BadRequest(err.Error())
	}

	monday, sunday := calendar.WeekBounds(day)
	return s.hoursForPeriod(ctx, calendar.FormatDate(monday), calendar.FormatDate(sunday))
}

// MonthHours reports per-employee worked hours for the calendar month.
// month is zero-based. Unlike the month view, the period covers only the
// month itself, not the grid's overflow days.
func (s *CalendarService) MonthHours(ctx context.Context, year, month int) ([]calendar.EmployeeHours, error) {
	if month < 0 || month > 11 {
		return nil, errors.BadRequest("month must be between 0 (January) and 11 (December)")
	}

	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return s.hoursForPeriod(ctx, calendar.FormatDate(first), calendar.FormatDate(last))
}

func (s *CalendarService) hoursForPeriod(ctx context.Context, startDate, endDate string) ([]calendar.EmployeeHours, error) {
	shifts, err := s.shiftRepo.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return calendar.AggregateHours(toCalendarShifts(shifts), toCalendarEmployees(employees), startDate, endDate), nil
}
