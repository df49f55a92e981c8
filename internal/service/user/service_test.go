package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/api/internal/domain"
	"github.com/taskflow/api/internal/repository"
	"github.com/taskflow/api/pkg/config"
	"github.com/taskflow/api/pkg/crypto"
)

type userRepoMock struct {
	byID    map[string]domain.User
	updated *domain.User
	failUpd error
}

func newUserRepoMock(users ...domain.User) *userRepoMock {
	m := &userRepoMock{byID: make(map[string]domain.User)}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *userRepoMock) CreateUser(ctx context.Context, user *domain.User) error {
	m.byID[user.ID] = *user
	return nil
}

func (m *userRepoMock) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *userRepoMock) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *userRepoMock) UpdateUser(ctx context.Context, user *domain.User) error {
	if m.failUpd != nil {
		return m.failUpd
	}
	if _, ok := m.byID[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.byID[user.ID] = *user
	m.updated = user
	return nil
}

func newService(repo *userRepoMock) Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(repo, log, config.APIConfig{BcryptCost: bcrypt.MinCost})
}

func TestProfileReturnsOwnAccount(t *testing.T) {
	repo := newUserRepoMock(domain.User{ID: "user-1", Name: "Ann", Email: "ann@x.com"})
	svc := newService(repo)

	account, err := svc.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Email != "ann@x.com" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	repo := newUserRepoMock(domain.User{ID: "user-1", Name: "Ann", Email: "ann@x.com"})
	svc := newService(repo)

	name := "Ann B."
	account, err := svc.UpdateProfile(context.Background(), "user-1", domain.UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Name != "Ann B." {
		t.Fatalf("name not applied: %+v", account)
	}
	if account.Email != "ann@x.com" {
		t.Fatalf("email mutated without patch: %+v", account)
	}
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	repo := newUserRepoMock(domain.User{ID: "user-1", Name: "Ann", Email: "ann@x.com"})
	svc := newService(repo)

	password := "newsecret"
	if _, err := svc.UpdateProfile(context.Background(), "user-1", domain.UserPatch{Password: &password}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updated == nil {
		t.Fatalf("expected update persisted")
	}
	if string(repo.updated.PasswordHash) == password {
		t.Fatalf("password stored in plaintext")
	}
	if !crypto.VerifyPassword(password, repo.updated.PasswordHash) {
		t.Fatalf("stored hash does not verify new password")
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	repo := newUserRepoMock(domain.User{ID: "user-1", Name: "Ann", Email: "ann@x.com"})
	svc := newService(repo)

	blank := "  "
	short := "12345"
	cases := []struct {
		name  string
		patch domain.UserPatch
	}{
		{"blank name", domain.UserPatch{Name: &blank}},
		{"blank email", domain.UserPatch{Email: &blank}},
		{"short password", domain.UserPatch{Password: &short}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(context.Background(), "user-1", tc.patch)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateProfileSurfacesDuplicateEmail(t *testing.T) {
	repo := newUserRepoMock(domain.User{ID: "user-1", Name: "Ann", Email: "ann@x.com"})
	repo.failUpd = repository.ErrDuplicateEmail
	svc := newService(repo)

	email := "taken@x.com"
	if _, err := svc.UpdateProfile(context.Background(), "user-1", domain.UserPatch{Email: &email}); !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := newService(newUserRepoMock())
	name := "x"
	if _, err := svc.UpdateProfile(context.Background(), "ghost", domain.UserPatch{Name: &name}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
