// Package auth provides the authentication middleware for the API.
package auth

import (
	"net/http"
	"strings"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/jwt"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/actor"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/httputil"
)

// Middleware verifies the Bearer token and attaches the authenticated
// actor to the request context.
func Middleware(jwtManager *jwt.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.Error(w, errors.Unauthorized("missing authorization header"))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httputil.Error(w, errors.Unauthorized("invalid authorization header"))
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				httputil.Error(w, err)
				return
			}

			who := &actor.Actor{
				ID:         claims.UserID,
				Username:   claims.Username,
				Role:       claims.Role,
				EmployeeID: claims.EmployeeID,
			}
			next.ServeHTTP(w, r.WithContext(actor.WithActor(r.Context(), who)))
		})
	}
}

// RequireAdmin rejects requests whose actor does not have the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		who := actor.FromContext(r.Context())
		if who == nil || !who.IsAdmin() {
			httputil.Error(w, errors.Forbidden("admin role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
