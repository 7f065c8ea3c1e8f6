package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/events"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

// ReminderService publishes reminder events for tomorrow's published
// shifts on a cron schedule.
type ReminderService struct {
	shiftRepo *repository.ShiftRepository
	publisher *events.SchedulePublisher
	logger    *logger.Logger
	spec      string
	cron      *cron.Cron
	now       func() time.Time
}

// NewReminderService creates a new reminder service
func NewReminderService(
	shiftRepo *repository.ShiftRepository,
	publisher *events.SchedulePublisher,
	spec string,
	log *logger.Logger,
) *ReminderService {
	return &ReminderService{
		shiftRepo: shiftRepo,
		publisher: publisher,
		logger:    log,
		spec:      spec,
		now:       time.Now,
	}
}

// Start schedules the reminder job. Returns an error if the cron spec
// is invalid.
func (s *ReminderService) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(s.spec, s.Run); err != nil {
		return err
	}
	c.Start()
	s.cron = c

	s.logger.Info().Str("schedule", s.spec).Msg("shift reminder job scheduled")
	return nil
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Run publishes a reminder event for every published shift scheduled
// for tomorrow. Exposed so it can be triggered outside the schedule.
func (s *ReminderService) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tomorrow := calendar.FormatDate(s.now().AddDate(0, 0, 1))
	status := repository.StatusPublished

	shifts, err := s.shiftRepo.List(ctx, repository.ShiftListParams{
		StartDate: &tomorrow,
		EndDate:   &tomorrow,
		Status:    &status,
	})
	if err != nil {
		s.logger.WithError(err).Error().Str("date", tomorrow).Msg("failed to load shifts for reminders")
		return
	}

	for _, shift := range shifts {
		s.publisher.PublishShiftReminder(ctx, shift)
	}

	s.logger.Info().
		Str("date", tomorrow).
		Int("reminders", len(shifts)).
		Msg("shift reminders published")
}
