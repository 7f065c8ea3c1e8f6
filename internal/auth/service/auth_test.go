package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/jwt"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/service"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/database"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/testutil"
)

func newAuthFixture(t *testing.T) (*testutil.MockDB, *service.AuthService) {
	t.Helper()

	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	log := logger.New("test", "test")
	svc := service.NewAuthService(
		repository.NewUserRepository(database.NewWithDB(mockDB.DB, log)),
		jwt.NewManager("test-secret", time.Hour, "vecchia-schedule"),
		log,
	)
	return mockDB, svc
}

func TestAuthService_Login(t *testing.T) {
	mockDB, svc := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	employeeID := "emp-1"
	mockDB.ExpectQuery("FROM users").
		WithArgs("giulia").
		WillReturnRows(testutil.MockRows("id", "username", "password_hash", "role", "created_at", "updated_at", "employee_id").
			AddRow("user-1", "giulia", string(hash), "employee", now, now, employeeID))

	result, err := svc.Login(context.Background(), "giulia", "correct-horse")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "user-1", result.User.ID)
	require.NotNil(t, result.User.EmployeeID)
	assert.Equal(t, employeeID, *result.User.EmployeeID)

	mockDB.ExpectationsWereMet(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockDB, svc := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	mockDB.ExpectQuery("FROM users").
		WithArgs("giulia").
		WillReturnRows(testutil.MockRows("id", "username", "password_hash", "role", "created_at", "updated_at", "employee_id").
			AddRow("user-1", "giulia", string(hash), "employee", now, now, nil))

	_, err = svc.Login(context.Background(), "giulia", "wrong")
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)

	mockDB.ExpectationsWereMet(t)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockDB, svc := newAuthFixture(t)

	mockDB.ExpectQuery("FROM users").
		WithArgs("ghost").
		WillReturnRows(testutil.MockRows("id"))

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	require.Error(t, err)

	// Unknown usernames look exactly like wrong passwords.
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)

	mockDB.ExpectationsWereMet(t)
}
