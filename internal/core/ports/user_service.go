package ports

import (
	"context"

	"github.com/cvds/identity-service/internal/core/domain"
)

// UserService orchestrates user CRUD with conflict detection and
// self-or-admin authorization. Every returned record is redacted.
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.PublicUser, error)
	GetByUsername(ctx context.Context, username string) (*domain.PublicUser, error)
	Create(ctx context.Context, user domain.NewUser, session *domain.Session) (*domain.PublicUser, error)
	Update(ctx context.Context, update domain.UserUpdate, session *domain.Session) (*domain.PublicUser, error)
	Delete(ctx context.Context, id string, session *domain.Session) (*domain.PublicUser, error)
}
