package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cvds/identity-service/internal/api/metrics"
	"github.com/cvds/identity-service/internal/core/domain"
	"github.com/cvds/identity-service/internal/core/ports"
)

// UserService implements user CRUD with conflict detection and the
// self-or-admin authorization gate.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.PublicUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.PublicUser, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// Create registers a new account. Creation has no target id, so the
// permission gate can only pass on the admin branch: creation is admin-only.
func (s *UserService) Create(ctx context.Context, user domain.NewUser, session *domain.Session) (*domain.PublicUser, error) {
	if !hasPermissions("", session) {
		metrics.UserOperationsTotal.WithLabelValues("create", "forbidden").Inc()
		return nil, domain.ErrInsufficientPermissions
	}

	// Read-check ahead of the insert to return a clean conflict; the unique
	// constraint in the store still backstops the race.
	if _, err := s.repo.FindByUsername(ctx, user.Username); err == nil {
		metrics.UserOperationsTotal.WithLabelValues("create", "conflict").Inc()
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUsernameNotFound) {
		metrics.UserOperationsTotal.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Username:     user.Username,
		PasswordHash: string(hash),
		Role:         user.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		metrics.UserOperationsTotal.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	metrics.UserOperationsTotal.WithLabelValues("create", "success").Inc()
	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user created")
	return created.Public(), nil
}

// Update applies a partial update: only provided fields overwrite, and a
// provided password is re-hashed before it reaches the store.
func (s *UserService) Update(ctx context.Context, update domain.UserUpdate, session *domain.Session) (*domain.PublicUser, error) {
	if !hasPermissions(update.ID, session) {
		metrics.UserOperationsTotal.WithLabelValues("update", "forbidden").Inc()
		return nil, domain.ErrInsufficientPermissions
	}

	var passwordHash *string
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		passwordHash = &h
	}

	updated, err := s.repo.Update(ctx, update, passwordHash)
	if err != nil {
		metrics.UserOperationsTotal.WithLabelValues("update", resultLabel(err)).Inc()
		return nil, err
	}

	metrics.UserOperationsTotal.WithLabelValues("update", "success").Inc()
	return updated.Public(), nil
}

// Delete removes a user and returns the redacted record that was deleted.
func (s *UserService) Delete(ctx context.Context, id string, session *domain.Session) (*domain.PublicUser, error) {
	if !hasPermissions(id, session) {
		metrics.UserOperationsTotal.WithLabelValues("delete", "forbidden").Inc()
		return nil, domain.ErrInsufficientPermissions
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		metrics.UserOperationsTotal.WithLabelValues("delete", resultLabel(err)).Inc()
		return nil, err
	}

	metrics.UserOperationsTotal.WithLabelValues("delete", "success").Inc()
	s.log.Info().Str("username", deleted.Username).Msg("user deleted")
	return deleted.Public(), nil
}

// hasPermissions is the single predicate guarding every user mutation: the
// actor must be an admin or the target of the operation. An empty target id
// never matches a session id, which is what makes Create admin-only.
func hasPermissions(targetID string, session *domain.Session) bool {
	if session == nil {
		return false
	}
	return session.IsAdmin() || (targetID != "" && session.UserID == targetID)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrUsernameNotFound), errors.Is(err, domain.ErrUserIDNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	default:
		return "error"
	}
}
