package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Projection errors surfaced to the service layer.
var (
	// ErrNoShifts is returned when a template has nothing to apply;
	// callers report this instead of silently succeeding with no effect.
	ErrNoShifts = errors.New("week template has no shifts to apply")

	// ErrWeekdayMismatch is returned when the target date does not fall on
	// the same weekday as the template anchor. Applying anyway would shear
	// the whole week off its weekday pattern.
	ErrWeekdayMismatch = errors.New("target date must fall on the same weekday as the template start date")
)

// ProjectWeek re-dates every shift of a captured week template by the
// constant day offset between the template's start date and targetDate.
// The offset is pure day arithmetic, so projections stay calendar-correct
// across month and year boundaries. Employee, times, duration and notes
// are carried over unchanged.
func ProjectWeek(tpl WeekTemplate, targetDate time.Time) ([]ShiftDraft, error) {
	if len(tpl.Shifts) == 0 {
		return nil, ErrNoShifts
	}

	anchor, err := ParseDate(tpl.StartDate)
	if err != nil {
		return nil, fmt.Errorf("week template %s: %w", tpl.ID, err)
	}

	if WeekdayIndex(targetDate) != WeekdayIndex(anchor) {
		return nil, ErrWeekdayMismatch
	}

	offset := DaysBetween(anchor, targetDate)

	drafts := make([]ShiftDraft, 0, len(tpl.Shifts))
	for _, s := range tpl.Shifts {
		d, err := ParseDate(s.Date)
		if err != nil {
			return nil, fmt.Errorf("week template %s shift for employee %s: %w", tpl.ID, s.EmployeeID, err)
		}

		drafts = append(drafts, ShiftDraft{
			EmployeeID: s.EmployeeID,
			Date:       FormatDate(d.AddDate(0, 0, offset)),
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			Duration:   s.Duration,
			Notes:      s.Notes,
		})
	}

	return drafts, nil
}
