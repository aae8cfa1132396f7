package ports

import (
	"context"

	"github.com/cvds/identity-service/internal/core/domain"
)

// UserRepository defines the persistence interface for user records.
// Implementations must map storage-level "no rows" to the matching not-found
// sentinel (domain.ErrUsernameNotFound / domain.ErrUserIDNotFound) and
// unique-constraint violations to domain.ErrUserExists.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, update domain.UserUpdate, passwordHash *string) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
