package calendar

import "sort"

// AggregateHours sums shift durations per employee over the inclusive
// [periodStart, periodEnd] window. Dates are compared as YYYY-MM-DD
// strings, which orders correctly because the format is fixed-width and
// zero-padded. Every employee in the input set appears in the result,
// with 0 when they have no shifts in the window. Rows are sorted by total
// hours descending; ties keep the employee list order.
func AggregateHours(shifts []Shift, employees []Employee, periodStart, periodEnd string) []EmployeeHours {
	totals := make(map[string]float64, len(employees))
	known := make(map[string]bool, len(employees))
	for _, e := range employees {
		known[e.ID] = true
	}

	for _, s := range shifts {
		if s.Date < periodStart || s.Date > periodEnd {
			continue
		}
		if !known[s.EmployeeID] {
			continue
		}
		totals[s.EmployeeID] += s.Duration
	}

	result := make([]EmployeeHours, 0, len(employees))
	for _, e := range employees {
		result = append(result, EmployeeHours{
			EmployeeID: e.ID,
			FirstName:  e.FirstName,
			LastName:   e.LastName,
			TotalHours: round2(totals[e.ID]),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalHours > result[j].TotalHours
	})

	return result
}
