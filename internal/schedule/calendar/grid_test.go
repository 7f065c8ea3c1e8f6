package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
)

func TestMonthGrid_Shape(t *testing.T) {
	today := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local)
	// January 2024: month index 0, the 1st is a Monday.
	days := calendar.MonthGrid(2024, 0, nil, today)

	require.Len(t, days, calendar.GridCells)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.Equal(t, "2024-02-11", days[41].Date)

	first, err := calendar.ParseDate(days[0].Date)
	require.NoError(t, err)
	last, err := calendar.ParseDate(days[41].Date)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, first.Weekday())
	assert.Equal(t, time.Sunday, last.Weekday())
}

func TestMonthGrid_LeadingOverflow(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)
	// June 2024 starts on a Saturday, so the grid leads with May days.
	days := calendar.MonthGrid(2024, 5, nil, today)

	assert.Equal(t, "2024-05-27", days[0].Date)
	assert.False(t, days[0].IsCurrentMonth)
	assert.Equal(t, "2024-06-01", days[5].Date)
	assert.True(t, days[5].IsCurrentMonth)
	assert.False(t, days[41].IsCurrentMonth) // July overflow
}

func TestMonthGrid_LeapFebruary(t *testing.T) {
	today := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local)
	days := calendar.MonthGrid(2024, 1, nil, today)

	current := 0
	for _, d := range days {
		if d.IsCurrentMonth {
			current++
		}
	}
	assert.Equal(t, 29, current)
}

func TestMonthGrid_AttachesShiftsByDate(t *testing.T) {
	today := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local)
	shifts := []calendar.Shift{
		{ID: "a", Date: "2024-01-03", StartTime: "09:00", EndTime: "17:00"},
		{ID: "b", Date: "2024-01-03", StartTime: "17:00", EndTime: "22:00"},
		{ID: "c", Date: "2024-02-11", StartTime: "09:00", EndTime: "12:00"}, // trailing overflow day
	}

	days := calendar.MonthGrid(2024, 0, shifts, today)

	byDate := map[string]calendar.Day{}
	for _, d := range days {
		byDate[d.Date] = d
	}

	require.Len(t, byDate["2024-01-03"].Shifts, 2)
	require.Len(t, byDate["2024-02-11"].Shifts, 1)

	// Every cell carries a non-nil slice, and a shift appears exactly once.
	total := 0
	for _, d := range days {
		require.NotNil(t, d.Shifts)
		total += len(d.Shifts)
	}
	assert.Equal(t, 3, total)
}

func TestMonthGrid_MarksToday(t *testing.T) {
	today := time.Date(2024, time.January, 15, 18, 45, 0, 0, time.Local)
	days := calendar.MonthGrid(2024, 0, nil, today)

	marked := 0
	for _, d := range days {
		if d.IsToday {
			marked++
			assert.Equal(t, "2024-01-15", d.Date)
		}
	}
	assert.Equal(t, 1, marked)
}

func TestMonthGrid_TodayOutsideGrid(t *testing.T) {
	today := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local)
	days := calendar.MonthGrid(2024, 0, nil, today)

	for _, d := range days {
		assert.False(t, d.IsToday)
	}
}

func TestGridRange(t *testing.T) {
	start, end := calendar.GridRange(2024, 0)
	assert.Equal(t, "2024-01-01", start)
	assert.Equal(t, "2024-02-11", end)

	start, end = calendar.GridRange(2024, 5)
	assert.Equal(t, "2024-05-27", start)
	assert.Equal(t, "2024-07-07", end)
}

func TestWeekRow(t *testing.T) {
	monday := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	shifts := []calendar.Shift{
		{ID: "a", Date: "2024-01-03"},
	}

	days := calendar.WeekRow(monday, shifts, monday)

	require.Len(t, days, 7)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.Equal(t, "2024-01-07", days[6].Date)
	assert.True(t, days[0].IsToday)
	assert.Len(t, days[2].Shifts, 1)
	for _, d := range days {
		assert.True(t, d.IsCurrentMonth)
		require.NotNil(t, d.Shifts)
	}
}

func TestStampToday(t *testing.T) {
	built := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local)
	days := calendar.MonthGrid(2024, 0, nil, built)

	// A day later the cached grid's marking is stale; restamping moves it.
	calendar.StampToday(days, built.AddDate(0, 0, 1))

	for _, d := range days {
		assert.Equal(t, d.Date == "2024-01-16", d.IsToday, d.Date)
	}
}
