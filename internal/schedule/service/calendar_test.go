package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/cache"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/calendar"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/service"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/database"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/testutil"
)

var shiftColumns = []string{
	"id", "employee_id", "shift_date", "start_time", "end_time",
	"duration", "notes", "status", "created_at", "updated_at", "created_by",
	"employee_name", "employee_color",
}

func newCalendarFixture(t *testing.T) (*testutil.MockDB, *service.CalendarService) {
	t.Helper()

	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	log := logger.New("test", "test")
	db := database.NewWithDB(mockDB.DB, log)

	svc := service.NewCalendarService(
		repository.NewShiftRepository(db),
		repository.NewEmployeeRepository(db),
		cache.New(nil, time.Minute, log),
		log,
	)
	return mockDB, svc
}

func TestCalendarService_MonthView(t *testing.T) {
	mockDB, svc := newCalendarFixture(t)

	now := time.Now()
	name := "Giulia Bianchi"
	// The fetch window covers the grid's overflow days, not just January.
	mockDB.ExpectQuery("SELECT s.id, s.employee_id").
		WithArgs("2024-01-01", "2024-02-11").
		WillReturnRows(testutil.MockRows(shiftColumns...).
			AddRow("s1", "emp-1", "2024-01-03", "09:00", "17:00", 8.0, nil, "published", now, now, nil, name, "#ef4444"))

	days, err := svc.MonthView(context.Background(), 2024, 0)
	require.NoError(t, err)

	require.Len(t, days, calendar.GridCells)
	assert.Equal(t, "2024-01-01", days[0].Date)

	var withShifts int
	for _, d := range days {
		if len(d.Shifts) > 0 {
			withShifts++
			assert.Equal(t, "2024-01-03", d.Date)
			assert.Equal(t, name, d.Shifts[0].EmployeeName)
		}
	}
	assert.Equal(t, 1, withShifts)

	mockDB.ExpectationsWereMet(t)
}

func TestCalendarService_MonthView_InvalidMonth(t *testing.T) {
	_, svc := newCalendarFixture(t)

	for _, month := range []int{-1, 12} {
		_, err := svc.MonthView(context.Background(), 2024, month)
		require.Error(t, err)

		var appErr *errors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 400, appErr.StatusCode)
	}
}

func TestCalendarService_WeekView(t *testing.T) {
	mockDB, svc := newCalendarFixture(t)

	mockDB.ExpectQuery("SELECT s.id, s.employee_id").
		WithArgs("2024-01-01", "2024-01-07").
		WillReturnRows(testutil.MockRows(shiftColumns...))

	days, err := svc.WeekView(context.Background(), "2024-01-03")
	require.NoError(t, err)

	require.Len(t, days, 7)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.Equal(t, "2024-01-07", days[6].Date)

	mockDB.ExpectationsWereMet(t)
}

func TestCalendarService_WeekHours(t *testing.T) {
	mockDB, svc := newCalendarFixture(t)

	now := time.Now()
	mockDB.ExpectQuery("SELECT s.id, s.employee_id").
		WithArgs("2024-01-01", "2024-01-07").
		WillReturnRows(testutil.MockRows(shiftColumns...).
			AddRow("s1", "e1", "2024-01-01", "09:00", "17:00", 8.0, nil, "published", now, now, nil, "Anna Verdi", "#ef4444").
			AddRow("s2", "e2", "2024-01-02", "10:00", "12:00", 2.0, nil, "published", now, now, nil, "Bruno Neri", "#3b82f6"))
	mockDB.ExpectQuery("FROM employees").
		WillReturnRows(testutil.MockRows("id", "first_name", "last_name", "color", "user_id", "created_at", "updated_at").
			AddRow("e2", "Bruno", "Neri", "#3b82f6", nil, now, now).
			AddRow("e3", "Carla", "Gallo", "#22c55e", nil, now, now).
			AddRow("e1", "Anna", "Verdi", "#ef4444", nil, now, now))

	rows, err := svc.WeekHours(context.Background(), "2024-01-03")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "e1", rows[0].EmployeeID)
	assert.Equal(t, 8.0, rows[0].TotalHours)
	assert.Equal(t, "e2", rows[1].EmployeeID)
	assert.Equal(t, 2.0, rows[1].TotalHours)
	assert.Equal(t, "e3", rows[2].EmployeeID)
	assert.Equal(t, 0.0, rows[2].TotalHours)

	mockDB.ExpectationsWereMet(t)
}

func TestCalendarService_MonthHours_UsesMonthBoundsOnly(t *testing.T) {
	mockDB, svc := newCalendarFixture(t)

	now := time.Now()
	mockDB.ExpectQuery("SELECT s.id, s.employee_id").
		WithArgs("2024-02-01", "2024-02-29").
		WillReturnRows(testutil.MockRows(shiftColumns...))
	mockDB.ExpectQuery("FROM employees").
		WillReturnRows(testutil.MockRows("id", "first_name", "last_name", "color", "user_id", "created_at", "updated_at").
			AddRow("e1", "Anna", "Verdi", "#ef4444", nil, now, now))

	rows, err := svc.MonthHours(context.Background(), 2024, 1)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].TotalHours)

	mockDB.ExpectationsWereMet(t)
}
