package calendar

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the canonical day-granularity format. Fixed width and
// zero padded, so lexicographic comparison of formatted dates is correct.
const DateLayout = "2006-01-02"

// FormatDate renders t as YYYY-MM-DD from its local calendar components.
// No UTC conversion happens here; converting through UTC shifts dates by a
// day for timezones behind UTC.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into a local-midnight time.
// FormatDate(ParseDate(FormatDate(t))) == FormatDate(t) for any valid t.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// WeekdayIndex maps t's weekday onto the Monday-start convention:
// Monday = 0 .. Sunday = 6. This is the single place the Go Sunday=0
// convention is remapped; call sites must not re-derive it.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekBounds returns the Monday 00:00:00 and Sunday 23:59:59 bounding t's
// week.
func WeekBounds(t time.Time) (start, end time.Time) {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = midnight.AddDate(0, 0, -WeekdayIndex(midnight))
	end = start.AddDate(0, 0, 6)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	return start, end
}

// DaysBetween returns the whole-day count from a to b (negative when b is
// before a). Both are reduced to their calendar dates first, so the result
// is DST-safe.
func DaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ShiftDuration computes the wall-clock span between two HH:MM times as
// fractional hours, rounded to 2 decimals. End times at or before the start
// are rejected: overnight shifts are not representable on a single calendar
// date and must be entered as two shifts.
func ShiftDuration(startTime, endTime string) (float64, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, err
	}
	if end <= start {
		return 0, fmt.Errorf("end time %s must be after start time %s", endTime, startTime)
	}
	return round2(end - start), nil
}

// parseClock converts an HH:MM string into fractional hours.
func parseClock(s string) (float64, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &hours, &minutes); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return float64(hours) + float64(minutes)/60, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
