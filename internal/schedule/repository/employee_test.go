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

func TestEmployeeRepository_Create_AppliesDefaults(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	now := time.Now()
	mockDB.ExpectQuery("INSERT INTO employees").
		WithArgs(testutil.AnyUUID{}, "Giulia", "Bianchi", "#3b82f6", nil).
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(now, now))

	emp := &repository.Employee{FirstName: "Giulia", LastName: "Bianchi"}
	err := repo.Create(context.Background(), emp)
	require.NoError(t, err)

	assert.NotEmpty(t, emp.ID)
	assert.Equal(t, "#3b82f6", emp.Color)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_GetByUserID_NoneLinked(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	mockDB.ExpectQuery("FROM employees").
		WithArgs("user-1").
		WillReturnRows(testutil.MockRows("id"))

	emp, err := repo.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, emp)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_List(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	now := time.Now()
	mockDB.ExpectQuery("FROM employees").
		WillReturnRows(testutil.MockRows("id", "first_name", "last_name", "color", "user_id", "created_at", "updated_at").
			AddRow("e1", "Giulia", "Bianchi", "#ef4444", nil, now, now).
			AddRow("e2", "Marco", "Rossi", "#3b82f6", nil, now, now))

	employees, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Giulia Bianchi", employees[0].FullName())

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Delete_CascadesToShifts(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	mockDB.ExpectBegin()
	mockDB.ExpectExec("UPDATE employees SET deleted_at = NOW()").
		WithArgs("emp-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectExec("UPDATE shifts SET deleted_at = NOW()").
		WithArgs("emp-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mockDB.ExpectCommit()

	err := repo.Delete(context.Background(), "emp-1")
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}
