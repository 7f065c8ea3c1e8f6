package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/cache"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/events"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/actor"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

// TemplateService handles shift templates and week templates
type TemplateService struct {
	templateRepo     *repository.ShiftTemplateRepository
	weekTemplateRepo *repository.WeekTemplateRepository
	shiftRepo        *repository.ShiftRepository
	publisher        *events.SchedulePublisher
	cache            *cache.CalendarCache
	logger           *logger.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(
	templateRepo *repository.ShiftTemplateRepository,
	weekTemplateRepo *repository.WeekTemplateRepository,
	shiftRepo *repository.ShiftRepository,
	publisher *events.SchedulePublisher,
	calCache *cache.CalendarCache,
	log *logger.Logger,
) *TemplateService {
	return &TemplateService{
		templateRepo:     templateRepo,
		weekTemplateRepo: weekTemplateRepo,
		shiftRepo:        shiftRepo,
		publisher:        publisher,
		cache:            calCache,
		logger:           log,
	}
}

// CreateShiftTemplate creates a reusable shift template
func (s *TemplateService) CreateShiftTemplate(ctx context.Context, tpl *repository.ShiftTemplate) error {
	duration, err := calendar.ShiftDuration(tpl.StartTime, tpl.EndTime)
	if err != nil {
		return errors.BadRequest(err.Error())
	}
	tpl.Duration = duration

	for _, day := range tpl.DaysOfWeek {
		if day < 0 || day > 6 {
			return errors.BadRequest("days_of_week values must be between 0 (Monday) and 6 (Sunday)")
		}
	}

	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return err
	}

	s.logger.Info().Str("template_id", tpl.ID).Str("name", tpl.Name).Msg("shift template created")
	return nil
}

// GetShiftTemplate gets a shift template by ID
func (s *TemplateService) GetShiftTemplate(ctx context.Context, id string) (*repository.ShiftTemplate, error) {
	return s.templateRepo.GetByID(ctx, id)
}

// ListShiftTemplates lists all shift templates
func (s *TemplateService) ListShiftTemplates(ctx context.Context) ([]*repository.ShiftTemplate, error) {
	return s.templateRepo.List(ctx)
}

// UpdateShiftTemplate updates a shift template
func (s *TemplateService) UpdateShiftTemplate(ctx context.Context, tpl *repository.ShiftTemplate) error {
	duration, err := calendar.ShiftDuration(tpl.StartTime, tpl.EndTime)
	if err != nil {
		return errors.BadRequest(err.Error())
	}
	tpl.Duration = duration

	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return err
	}

	s.logger.Info().Str("template_id", tpl.ID).Msg("shift template updated")
	return nil
}

// DeleteShiftTemplate deletes a shift template
func (s *TemplateService) DeleteShiftTemplate(ctx context.Context, id string) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("template_id", id).Msg("shift template deleted")
	return nil
}

// CreateWeekTemplate creates a week template from explicit shift entries.
// Every shift date must fall inside the template's Monday-start week, and
// durations are re-derived from the times.
func (s *TemplateService) CreateWeekTemplate(ctx context.Context, tpl *repository.WeekTemplate) error {
	start, err := calendar.ParseDate(tpl.StartDate)
	if err != nil {
		return errors.BadRequest(err.Error())
	}
	if calendar.WeekdayIndex(start) != 0 {
		return errors.BadRequest("start_date must be a Monday")
	}

	monday, sunday := calendar.WeekBounds(start)
	tpl.StartDate = calendar.FormatDate(monday)
	tpl.EndDate = calendar.FormatDate(sunday)

	if len(tpl.Shifts) == 0 {
		return errors.BadRequest("a week template needs at least one shift")
	}
	for _, shift := range tpl.Shifts {
		if _, err := calendar.ParseDate(shift.ShiftDate); err != nil {
			return errors.BadRequest(err.Error())
		}
		if shift.ShiftDate < tpl.StartDate || shift.ShiftDate > tpl.EndDate {
			return errors.BadRequest(fmt.Sprintf("shift date %s is outside the template week %s..%s",
				shift.ShiftDate, tpl.StartDate, tpl.EndDate))
		}
		duration, err := calendar.ShiftDuration(shift.StartTime, shift.EndTime)
		if err != nil {
			return errors.BadRequest(err.Error())
		}
		shift.Duration = duration
	}

	if err := s.weekTemplateRepo.Create(ctx, tpl); err != nil {
		return err
	}

	s.logger.Info().
		Str("week_template_id", tpl.ID).
		Str("name", tpl.Name).
		Int("shifts", len(tpl.Shifts)).
		Msg("week template created")

	return nil
}

// CaptureWeekTemplate snapshots the scheduled week containing the given
// date into a reusable week template. The captured shift dates are kept
// verbatim so the template records which weekday each shift fell on.
func (s *TemplateService) CaptureWeekTemplate(ctx context.Context, name, description, date string) (*repository.WeekTemplate, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return nil, errors.BadRequest(err.Error())
	}

	monday, sunday := calendar.WeekBounds(day)
	startDate := calendar.FormatDate(monday)
	endDate := calendar.FormatDate(sunday)

	shifts, err := s.shiftRepo.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, errors.BadRequest("the selected week has no shifts to capture")
	}

	tpl := &repository.WeekTemplate{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if description != "" {
		tpl.Description = &description
	}
	for _, shift := range shifts {
		tpl.Shifts = append(tpl.Shifts, &repository.WeekTemplateShift{
			EmployeeID: shift.EmployeeID,
			ShiftDate:  shift.ShiftDate,
			StartTime:  shift.StartTime,
			EndTime:    shift.EndTime,
			Duration:   shift.Duration,
			Notes:      shift.Notes,
		})
	}

	if err := s.weekTemplateRepo.Create(ctx, tpl); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("week_template_id", tpl.ID).
		Str("name", tpl.Name).
		Int("shifts", len(tpl.Shifts)).
		Msg("week template captured")

	return tpl, nil
}

// GetWeekTemplate gets a week template with its shifts
func (s *TemplateService) GetWeekTemplate(ctx context.Context, id string) (*repository.WeekTemplate, error) {
	return s.weekTemplateRepo.GetByID(ctx, id)
}

// ListWeekTemplates lists all week templates
func (s *TemplateService) ListWeekTemplates(ctx context.Context) ([]*repository.WeekTemplate, error) {
	return s.weekTemplateRepo.List(ctx)
}

// DeleteWeekTemplate deletes a week template
func (s *TemplateService) DeleteWeekTemplate(ctx context.Context, id string) error {
	if err := s.weekTemplateRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("week_template_id", id).Msg("week template deleted")
	return nil
}

// ApplyFailure describes one shift that could not be created while
// applying a week template.
type ApplyFailure struct {
	Date       string `json:"date"`
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}

// ApplyResult reports the outcome of applying a week template.
type ApplyResult struct {
	TemplateID string         `json:"templateId"`
	TargetDate string         `json:"targetDate"`
	Requested  int            `json:"requested"`
	Created    int            `json:"created"`
	Failures   []ApplyFailure `json:"failures"`
}

// ApplyWeekTemplate projects a week template onto the week starting at
// targetDate and creates the resulting shifts. Each shift is created
// independently: one failure does not roll back the others, and every
// failure is reported in the result.
func (s *TemplateService) ApplyWeekTemplate(ctx context.Context, id, targetDate string) (*ApplyResult, error) {
	tpl, err := s.weekTemplateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target, err := calendar.ParseDate(targetDate)
	if err != nil {
		return nil, errors.BadRequest(err.Error())
	}

	calTpl := calendar.WeekTemplate{
		ID:        tpl.ID,
		Name:      tpl.Name,
		StartDate: tpl.StartDate,
		EndDate:   tpl.EndDate,
	}
	for _, shift := range tpl.Shifts {
		calTpl.Shifts = append(calTpl.Shifts, calendar.TemplateShift{
			EmployeeID: shift.EmployeeID,
			Date:       shift.ShiftDate,
			StartTime:  shift.StartTime,
			EndTime:    shift.EndTime,
			Duration:   shift.Duration,
			Notes:      shift.Notes,
		})
	}

	drafts, err := calendar.ProjectWeek(calTpl, target)
	if err != nil {
		switch {
		case stderrors.Is(err, calendar.ErrNoShifts):
			return nil, errors.BadRequest("week template has no shifts to apply")
		case stderrors.Is(err, calendar.ErrWeekdayMismatch):
			return nil, errors.BadRequest("target date must fall on the same weekday as the template start date")
		default:
			return nil, errors.BadRequest(err.Error())
		}
	}

	result := &ApplyResult{
		TemplateID: tpl.ID,
		TargetDate: targetDate,
		Requested:  len(drafts),
		Failures:   []ApplyFailure{},
	}

	var createdBy *string
	if who := actor.FromContext(ctx); who != nil {
		createdBy = &who.ID
	}

	for _, draft := range drafts {
		shift := &repository.Shift{
			EmployeeID: draft.EmployeeID,
			ShiftDate:  draft.Date,
			StartTime:  draft.StartTime,
			EndTime:    draft.EndTime,
			Duration:   draft.Duration,
			Notes:      draft.Notes,
			Status:     repository.StatusDraft,
			CreatedBy:  createdBy,
		}
		if err := s.shiftRepo.Create(ctx, shift); err != nil {
			result.Failures = append(result.Failures, ApplyFailure{
				Date:       draft.Date,
				EmployeeID: draft.EmployeeID,
				Reason:     err.Error(),
			})
			continue
		}
		result.Created++
		s.publisher.PublishShiftCreated(ctx, shift)
		s.cache.InvalidateDate(ctx, shift.ShiftDate)
	}

	s.publisher.PublishWeekTemplateApplied(ctx, tpl.ID, targetDate, result.Requested, result.Created)

	s.logger.Info().
		Str("week_template_id", tpl.ID).
		Str("target_date", targetDate).
		Int("requested", result.Requested).
		Int("created", result.Created).
		Int("failed", len(result.Failures)).
		Msg("week template applied")

	return result, nil
}
