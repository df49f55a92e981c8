package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/api/internal/domain"
	"github.com/taskflow/api/internal/repository"
	"github.com/taskflow/api/pkg/config"
	"github.com/taskflow/api/pkg/crypto"
	jwtpkg "github.com/taskflow/api/pkg/jwt"
)

// ErrInvalidCredentials is returned for any login failure. Unknown email and
// wrong password are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Service handles registration, login and token verification.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// Register creates a new account. It does not log the user in; a fresh
// login is required to obtain a token.
func (s Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, domain.Invalid("name", "name is required")
	}
	if email == "" {
		return nil, domain.Invalid("email", "email is required")
	}
	if len(password) < MinPasswordLength {
		return nil, domain.Invalid("password", "password must be at least 6 characters")
	}
	hash, err := crypto.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login authenticates a user and issues a signed token.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := jwtpkg.Generate(user.ID, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Authorize validates a bearer token and resolves it to a live account.
// The returned error keeps the internal failure class (malformed token,
// bad signature, expiry, deleted account) for logging; callers answer all
// of them with the same 401.
func (s Service) Authorize(ctx context.Context, token string) (*domain.User, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, jwtpkg.ErrMalformed
	}
	claims, err := jwtpkg.Parse(trimmed, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
