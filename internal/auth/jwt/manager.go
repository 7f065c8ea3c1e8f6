// Package jwt issues and verifies the access tokens used by the API.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
)

// Claims are the custom JWT claims carried by access tokens.
type Claims struct {
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and verifies tokens
type Manager struct {
	secret       []byte
	accessExpiry time.Duration
	issuer       string
}

// NewManager creates a new JWT manager
func NewManager(secret string, accessExpiry time.Duration, issuer string) *Manager {
	return &Manager{
		secret:       []byte(secret),
		accessExpiry: accessExpiry,
		issuer:       issuer,
	}
}

// Generate creates a signed access token for the given user.
func (m *Manager) Generate(userID, username, role string, employeeID *string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.accessExpiry)

	claims := Claims{
		UserID:     userID,
		Username:   username,
		Role:       role,
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token, returning its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.TokenInvalid()
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.TokenExpired()
		}
		return nil, errors.TokenInvalid()
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.TokenInvalid()
	}

	return claims, nil
}
