package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/events"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/service"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/database"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/messaging"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/testutil"
)

type timeclockFixture struct {
	mockDB    *testutil.MockDB
	publisher *testutil.MockPublisher
	svc       *service.TimeclockService
}

func newTimeclockFixture(t *testing.T) *timeclockFixture {
	t.Helper()

	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	log := logger.New("test", "test")
	db := database.NewWithDB(mockDB.DB, log)
	pub := testutil.NewMockPublisher()

	svc := service.NewTimeclockService(
		repository.NewTimeEntryRepository(db),
		repository.NewEmployeeRepository(db),
		events.NewWithBus(pub, log),
		log,
	)

	return &timeclockFixture{mockDB: mockDB, publisher: pub, svc: svc}
}

func (f *timeclockFixture) expectEmployee(id string) {
	now := time.Now()
	f.mockDB.ExpectQuery("FROM employees").
		WithArgs(id).
		WillReturnRows(testutil.MockRows("id", "first_name", "last_name", "color", "user_id", "created_at", "updated_at").
			AddRow(id, "Giulia", "Bianchi", "#ef4444", nil, now, now))
}

func TestTimeclockService_ClockIn(t *testing.T) {
	f := newTimeclockFixture(t)

	now := time.Now()
	f.expectEmployee("emp-1")
	f.mockDB.ExpectQuery("FROM time_entries").
		WithArgs("emp-1").
		WillReturnRows(testutil.MockRows("id")) // no open entry
	f.mockDB.ExpectQuery("INSERT INTO time_entries").
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(now, now))

	entry, err := f.svc.ClockIn(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "emp-1", entry.EmployeeID)
	assert.Nil(t, entry.ClockOut)

	f.publisher.AssertEventPublished(t, messaging.EventTimeClockIn)
	f.mockDB.ExpectationsWereMet(t)
}

func TestTimeclockService_ClockIn_AlreadyOpen(t *testing.T) {
	f := newTimeclockFixture(t)

	now := time.Now()
	f.expectEmployee("emp-1")
	f.mockDB.ExpectQuery("FROM time_entries").
		WithArgs("emp-1").
		WillReturnRows(testutil.MockRows("id", "employee_id", "entry_date", "clock_in", "clock_out", "total_minutes", "created_at", "updated_at").
			AddRow("entry-1", "emp-1", "2024-01-03", now, nil, 0, now, now))

	_, err := f.svc.ClockIn(context.Background(), "emp-1")
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.StatusCode)

	f.publisher.AssertNoEventsPublished(t)
	f.mockDB.ExpectationsWereMet(t)
}

func TestTimeclockService_ClockOut(t *testing.T) {
	f := newTimeclockFixture(t)

	clockIn := time.Now().Add(-90 * time.Minute)
	now := time.Now()
	f.mockDB.ExpectQuery("FROM time_entries").
		WithArgs("emp-1").
		WillReturnRows(testutil.MockRows("id", "employee_id", "entry_date", "clock_in", "clock_out", "total_minutes", "created_at", "updated_at").
			AddRow("entry-1", "emp-1", "2024-01-03", clockIn, nil, 0, now, now))
	f.mockDB.ExpectExec("UPDATE time_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := f.svc.ClockOut(context.Background(), "emp-1")
	require.NoError(t, err)

	require.NotNil(t, entry.ClockOut)
	assert.InDelta(t, 90, entry.TotalMinutes, 1)

	f.publisher.AssertEventPublished(t, messaging.EventTimeClockOut)
	f.mockDB.ExpectationsWereMet(t)
}

func TestTimeclockService_ClockOut_NotClockedIn(t *testing.T) {
	f := newTimeclockFixture(t)

	f.mockDB.ExpectQuery("FROM time_entries").
		WithArgs("emp-1").
		WillReturnRows(testutil.MockRows("id"))

	_, err := f.svc.ClockOut(context.Background(), "emp-1")
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.StatusCode)

	f.publisher.AssertNoEventsPublished(t)
	f.mockDB.ExpectationsWereMet(t)
}
