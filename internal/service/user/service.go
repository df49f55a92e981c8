package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taskflow/api/internal/domain"
	"github.com/taskflow/api/internal/repository"
	"github.com/taskflow/api/internal/service/auth"
	"github.com/taskflow/api/pkg/config"
	"github.com/taskflow/api/pkg/crypto"
)

// Service reads and updates the authenticated user's own profile. Lookups
// are always scoped to the caller's ID; an externally supplied ID is never
// accepted.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// Profile returns the caller's account.
func (s Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's account. Changing
// the password does not invalidate tokens issued earlier.
func (s Service) UpdateProfile(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.Invalid("name", "name is required")
		}
		user.Name = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, domain.Invalid("email", "email is required")
		}
		// Uniqueness is left to the storage index; a read-then-write check
		// here would race with concurrent updates.
		user.Email = email
	}
	if patch.Password != nil {
		if len(*patch.Password) < auth.MinPasswordLength {
			return nil, domain.Invalid("password", "password must be at least 6 characters")
		}
		hash, err := crypto.HashPassword(*patch.Password, s.cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("profile updated", "user_id", userID)
	return user, nil
}
