package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/schedule/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/testutil"
)

func TestWeekTemplateRepository_Create(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewWeekTemplateRepository(db)

	now := time.Now()
	mockDB.ExpectBegin()
	mockDB.ExpectQuery("INSERT INTO week_templates").
		WithArgs(testutil.AnyUUID{}, "Standard week", nil, "2024-01-01", "2024-01-07").
		WillReturnRows(testutil.MockRows("created_at").AddRow(now))
	mockDB.ExpectExec("INSERT INTO week_template_shifts").
		WithArgs(testutil.AnyUUID{}, testutil.AnyUUID{}, "emp-1", "2024-01-03", "09:00", "17:00", 8.0, nil, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	tpl := &repository.WeekTemplate{
		Name:      "Standard week",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
		Shifts: []*repository.WeekTemplateShift{
			{EmployeeID: "emp-1", ShiftDate: "2024-01-03", StartTime: "09:00", EndTime: "17:00", Duration: 8},
		},
	}
	err := repo.Create(context.Background(), tpl)
	require.NoError(t, err)

	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, tpl.ID, tpl.Shifts[0].WeekTemplateID)
	assert.Equal(t, 0, tpl.Shifts[0].Position)

	mockDB.ExpectationsWereMet(t)
}

func TestWeekTemplateRepository_Create_RollsBackOnShiftFailure(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewWeekTemplateRepository(db)

	now := time.Now()
	mockDB.ExpectBegin()
	mockDB.ExpectQuery("INSERT INTO week_templates").
		WillReturnRows(testutil.MockRows("created_at").AddRow(now))
	mockDB.ExpectExec("INSERT INTO week_template_shifts").
		WillReturnError(assert.AnError)
	mockDB.ExpectRollback()

	tpl := &repository.WeekTemplate{
		Name:      "Broken week",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
		Shifts: []*repository.WeekTemplateShift{
			{EmployeeID: "emp-1", ShiftDate: "2024-01-03", StartTime: "09:00", EndTime: "17:00", Duration: 8},
		},
	}
	err := repo.Create(context.Background(), tpl)
	require.Error(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestWeekTemplateRepository_GetByID(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewWeekTemplateRepository(db)

	now := time.Now()
	mockDB.ExpectQuery("FROM week_templates").
		WithArgs("tpl-1").
		WillReturnRows(testutil.MockRows("id", "name", "description", "start_date", "end_date", "created_at").
			AddRow("tpl-1", "Standard week", nil, "2024-01-01", "2024-01-07", now))
	mockDB.ExpectQuery("FROM week_template_shifts").
		WithArgs("tpl-1").
		WillReturnRows(testutil.MockRows(
			"id", "week_template_id", "employee_id", "shift_date", "start_time", "end_time", "duration", "notes", "position",
		).
			AddRow("s1", "tpl-1", "emp-1", "2024-01-01", "09:00", "17:00", 8.0, nil, 0).
			AddRow("s2", "tpl-1", "emp-2", "2024-01-03", "12:00", "17:30", 5.5, nil, 1))

	tpl, err := repo.GetByID(context.Background(), "tpl-1")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", tpl.StartDate)
	require.Len(t, tpl.Shifts, 2)
	assert.Equal(t, "emp-1", tpl.Shifts[0].EmployeeID)
	assert.Equal(t, 5.5, tpl.Shifts[1].Duration)

	mockDB.ExpectationsWereMet(t)
}

func TestWeekTemplateRepository_Delete_NotFound(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewWeekTemplateRepository(db)

	mockDB.ExpectBegin()
	mockDB.ExpectExec("DELETE FROM week_template_shifts").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.ExpectExec("DELETE FROM week_templates").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.ExpectRollback()

	err := repo.Delete(context.Background(), "missing")
	require.Error(t, err)

	mockDB.ExpectationsWereMet(t)
}
