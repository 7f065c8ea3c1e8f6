package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/jwt"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/internal/auth/repository"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/errors"
	"github.com/FrancescoFusari/vecchia-schedule-sub000/pkg/logger"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *repository.User `json:"user"`
}

// AuthService handles authentication
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *jwt.Manager
	logger     *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, jwtManager *jwt.Manager, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		logger:     log,
	}
}

// Login verifies the credentials and issues an access token. Unknown
// usernames and wrong passwords produce the same error so the response
// does not reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		var appErr *errors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode == 404 {
			return nil, errors.InvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.InvalidCredentials()
	}

	token, expiresAt, err := s.jwtManager.Generate(user.ID, user.Username, user.Role, user.EmployeeID)
	if err != nil {
		return nil, errors.Internal("failed to issue token")
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("user logged in")

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
