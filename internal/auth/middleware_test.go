package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/jwt"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/actor"
)

func TestMiddleware_AttachesActor(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour, "vecchia-schedule")
	employeeID := "emp-1"
	token, _, err := mgr.Generate("user-1", "giulia", actor.RoleEmployee, &employeeID)
	require.NoError(t, err)

	var got *actor.Actor
	handler := auth.Middleware(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = actor.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, actor.RoleEmployee, got.Role)
	require.NotNil(t, got.EmployeeID)
	assert.Equal(t, employeeID, *got.EmployeeID)
}

func TestMiddleware_RejectsMissingAndMalformedHeaders(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour, "vecchia-schedule")
	handler := auth.Middleware(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, header := range []string{"", "Token abc", "Bearer", "Bearer bad.token.here"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := auth.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	admin := &actor.Actor{ID: "u1", Username: "boss", Role: actor.RoleAdmin}
	employee := &actor.Actor{ID: "u2", Username: "giulia", Role: actor.RoleEmployee}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(actor.WithActor(req.Context(), admin)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(actor.WithActor(req.Context(), employee)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
