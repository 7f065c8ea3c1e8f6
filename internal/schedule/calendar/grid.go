package calendar

import "time"

// GridCells is the fixed month grid size: 6 full Monday-start weeks.
// Months that would fit in 5 rows still get 6, which keeps rendering
// height constant at the cost of an occasional extra row.
const GridCells = 42

// MonthGrid expands a month into its 42-cell grid. month is zero-based
// (January = 0). Leading cells come from the previous month so the 1st
// lands on its weekday column; trailing cells pad out the next month.
// Shifts are attached by exact date-string equality, and IsToday is
// computed against the injected today, so the result must be rebuilt on
// every refresh rather than cached with its today marking.
func MonthGrid(year, month int, shifts []Shift, today time.Time) []Day {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -WeekdayIndex(first))

	byDate := make(map[string][]Shift, len(shifts))
	for _, s := range shifts {
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	days := make([]Day, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := start.AddDate(0, 0, i)
		date := FormatDate(d)

		dayShifts := byDate[date]
		if dayShifts == nil {
			dayShifts = []Shift{}
		}

		days = append(days, Day{
			Date:           date,
			IsCurrentMonth: d.Month() == first.Month() && d.Year() == year,
			IsToday:        SameDay(d, today),
			Shifts:         dayShifts,
		})
	}

	return days
}

// GridRange returns the first and last dates covered by the month's grid,
// for callers that need to fetch shifts for the overflow days too.
func GridRange(year, month int) (startDate, endDate string) {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -WeekdayIndex(first))
	return FormatDate(start), FormatDate(start.AddDate(0, 0, GridCells-1))
}

// WeekRow expands the Monday-start week beginning at start into 7 cells.
// Week views have no overflow days, so every cell is marked current.
func WeekRow(start time.Time, shifts []Shift, today time.Time) []Day {
	byDate := make(map[string][]Shift, len(shifts))
	for _, s := range shifts {
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		date := FormatDate(d)

		dayShifts := byDate[date]
		if dayShifts == nil {
			dayShifts = []Shift{}
		}

		days = append(days, Day{
			Date:           date,
			IsCurrentMonth: true,
			IsToday:        SameDay(d, today),
			Shifts:         dayShifts,
		})
	}

	return days
}

// StampToday recomputes the IsToday marking on an already-built grid.
// Used after a grid is served from cache, where the stored marking may be
// stale.
func StampToday(days []Day, today time.Time) {
	mark := FormatDate(today)
	for i := range days {
		days[i].IsToday = days[i].Date == mark
	}
}
