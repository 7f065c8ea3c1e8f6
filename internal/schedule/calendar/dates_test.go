package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 7, 15, 30, 0, 0, time.Local)
	assert.Equal(t, "2024-03-07", calendar.FormatDate(d))
}

func TestParseDate_RoundTrip(t *testing.T) {
	for _, date := range []string{"2024-01-01", "2024-02-29", "2024-12-31"} {
		d, err := calendar.ParseDate(date)
		require.NoError(t, err)
		assert.Equal(t, date, calendar.FormatDate(d))
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, date := range []string{"", "2024-13-01", "2024-02-30", "01-02-2024", "2024/01/02"} {
		_, err := calendar.ParseDate(date)
		assert.Error(t, err, date)
	}
}

func TestWeekdayIndex_MondayIsZero(t *testing.T) {
	// 2024-01-01 is a Monday.
	monday := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, calendar.WeekdayIndex(monday.AddDate(0, 0, i)))
	}
}

func TestWeekBounds(t *testing.T) {
	// 2024-01-03 is a Wednesday; its week runs 2024-01-01 .. 2024-01-07.
	wednesday := time.Date(2024, time.January, 3, 12, 0, 0, 0, time.Local)
	start, end := calendar.WeekBounds(wednesday)

	assert.Equal(t, "2024-01-01", calendar.FormatDate(start))
	assert.Equal(t, "2024-01-07", calendar.FormatDate(end))
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Sunday, end.Weekday())
}

func TestWeekBounds_SundayBelongsToitsWeek(t *testing.T) {
	// A Sunday must not roll forward into the next week.
	sunday := time.Date(2024, time.January, 7, 8, 0, 0, 0, time.Local)
	start, end := calendar.WeekBounds(sunday)

	assert.Equal(t, "2024-01-01", calendar.FormatDate(start))
	assert.Equal(t, "2024-01-07", calendar.FormatDate(end))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	b := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.Local)

	assert.Equal(t, 35, calendar.DaysBetween(a, b))
	assert.Equal(t, -35, calendar.DaysBetween(b, a))
	assert.Equal(t, 0, calendar.DaysBetween(a, a))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.Local)
	evening := time.Date(2024, time.June, 10, 23, 59, 0, 0, time.Local)
	nextDay := time.Date(2024, time.June, 11, 0, 0, 0, 0, time.Local)

	assert.True(t, calendar.SameDay(morning, evening))
	assert.False(t, calendar.SameDay(morning, nextDay))
}

func TestShiftDuration(t *testing.T) {
	tests := []struct {
		start, end string
		want       float64
	}{
		{"09:00", "17:00", 8},
		{"12:00", "17:30", 5.5},
		{"00:00", "23:59", 23.98},
		{"08:15", "08:30", 0.25},
	}
	for _, tt := range tests {
		got, err := calendar.ShiftDuration(tt.start, tt.end)
		require.NoError(t, err, "%s-%s", tt.start, tt.end)
		assert.Equal(t, tt.want, got, "%s-%s", tt.start, tt.end)
	}
}

func TestShiftDuration_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"end before start", "17:00", "09:00"},
		{"zero length", "09:00", "09:00"},
		{"bad format", "9am", "17:00"},
		{"out of range hour", "25:00", "26:00"},
		{"out of range minute", "09:60", "10:00"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calendar.ShiftDuration(tt.start, tt.end)
			assert.Error(t, err)
		})
	}
}
