package events

import (
	"context"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/messaging"
)

// Bus is the transport the publisher writes to. Production wiring uses the
// RabbitMQ publisher; tests substitute an in-memory recorder.
type Bus interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// SchedulePublisher publishes schedule change notifications. Publishing is
// best-effort: failures are logged and never fail the originating write.
type SchedulePublisher struct {
	bus    Bus
	logger *logger.Logger
}

// NewSchedulePublisher creates a publisher bound to the schedule events exchange
func NewSchedulePublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*SchedulePublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeScheduleEvents, "schedule-api", log)
	if err != nil {
		return nil, err
	}

	return &SchedulePublisher{
		bus:    publisher,
		logger: log,
	}, nil
}

// NewWithBus creates a publisher over a custom bus. Used by tests.
func NewWithBus(bus Bus, log *logger.Logger) *SchedulePublisher {
	return &SchedulePublisher{
		bus:    bus,
		logger: log,
	}
}

func (p *SchedulePublisher) publishShift(ctx context.Context, eventType string, shift *repository.Shift) {
	data := messaging.ShiftChangedEvent{
		ShiftID:    shift.ID,
		EmployeeID: shift.EmployeeID,
		Date:       shift.ShiftDate,
		Status:     shift.Status,
	}

	if err := p.bus.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).Str("shift_id", shift.ID).Str("event_type", eventType).Msg("failed to publish shift event")
	}
}

// PublishShiftCreated publishes a shift created event
func (p *SchedulePublisher) PublishShiftCreated(ctx context.Context, shift *repository.Shift) {
	p.publishShift(ctx, messaging.EventShiftCreated, shift)
}

// PublishShiftUpdated publishes a shift updated event
func (p *SchedulePublisher) PublishShiftUpdated(ctx context.Context, shift *repository.Shift) {
	p.publishShift(ctx, messaging.EventShiftUpdated, shift)
}

// PublishShiftDeleted publishes a shift deleted event
func (p *SchedulePublisher) PublishShiftDeleted(ctx context.Context, shift *repository.Shift) {
	p.publishShift(ctx, messaging.EventShiftDeleted, shift)
}

// PublishShiftReminder publishes a next-day shift reminder
func (p *SchedulePublisher) PublishShiftReminder(ctx context.Context, shift *repository.Shift) {
	data := messaging.ShiftReminderEvent{
		ShiftID:    shift.ID,
		EmployeeID: shift.EmployeeID,
		Date:       shift.ShiftDate,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
	}

	if err := p.bus.Publish(ctx, messaging.EventShiftReminder, data); err != nil {
		p.logger.Error().Err(err).Str("shift_id", shift.ID).Msg("failed to publish shift reminder")
	}
}

// PublishEmployeeCreated publishes an employee created event
func (p *SchedulePublisher) PublishEmployeeCreated(ctx context.Context, emp *repository.Employee) {
	data := messaging.EmployeeCreatedEvent{
		EmployeeID: emp.ID,
		Name:       emp.FullName(),
		UserID:     emp.UserID,
	}

	if err := p.bus.Publish(ctx, messaging.EventEmployeeCreated, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", emp.ID).Msg("failed to publish employee created event")
	}
}

// PublishEmployeeUpdated publishes an employee updated event
func (p *SchedulePublisher) PublishEmployeeUpdated(ctx context.Context, emp *repository.Employee) {
	data := messaging.EmployeeUpdatedEvent{
		EmployeeID: emp.ID,
		Name:       emp.FullName(),
	}

	if err := p.bus.Publish(ctx, messaging.EventEmployeeUpdated, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", emp.ID).Msg("failed to publish employee updated event")
	}
}

// PublishEmployeeDeleted publishes an employee deleted event
func (p *SchedulePublisher) PublishEmployeeDeleted(ctx context.Context, employeeID string) {
	data := messaging.EmployeeDeletedEvent{
		EmployeeID: employeeID,
	}

	if err := p.bus.Publish(ctx, messaging.EventEmployeeDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", employeeID).Msg("failed to publish employee deleted event")
	}
}

// PublishWeekTemplateApplied publishes the outcome of a template projection
func (p *SchedulePublisher) PublishWeekTemplateApplied(ctx context.Context, templateID, targetDate string, requested, created int) {
	data := messaging.WeekTemplateAppliedEvent{
		TemplateID: templateID,
		TargetDate: targetDate,
		Requested:  requested,
		Created:    created,
	}

	if err := p.bus.Publish(ctx, messaging.EventWeekTemplateApplied, data); err != nil {
		p.logger.Error().Err(err).Str("template_id", templateID).Msg("failed to publish week template applied event")
	}
}

// PublishClockIn publishes a clock-in event
func (p *SchedulePublisher) PublishClockIn(ctx context.Context, entry *repository.TimeEntry) {
	data := messaging.TimeClockEvent{
		EntryID:    entry.ID,
		EmployeeID: entry.EmployeeID,
		EntryDate:  entry.EntryDate,
	}

	if err := p.bus.Publish(ctx, messaging.EventTimeClockIn, data); err != nil {
		p.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("failed to publish clock-in event")
	}
}

// PublishClockOut publishes a clock-out event
func (p *SchedulePublisher) PublishClockOut(ctx context.Context, entry *repository.TimeEntry) {
	data := messaging.TimeClockEvent{
		EntryID:      entry.ID,
		EmployeeID:   entry.EmployeeID,
		EntryDate:    entry.EntryDate,
		TotalMinutes: entry.TotalMinutes,
	}

	if err := p.bus.Publish(ctx, messaging.EventTimeClockOut, data); err != nil {
		p.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("failed to publish clock-out event")
	}
}
