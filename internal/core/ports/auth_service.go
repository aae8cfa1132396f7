package ports

import (
	"context"

	"github.com/cvds/identity-service/internal/core/domain"
)

// Credentials is the transient login payload; it is never persisted beyond
// the hash comparison.
type Credentials struct {
	Username string
	Password string
}

// AuthService orchestrates token issuance, verification, rotation and
// revocation against the session store.
type AuthService interface {
	// Login checks credentials against the user store, signs a token and
	// registers it as a live session.
	Login(ctx context.Context, credentials Credentials) (string, error)

	// DecodeSession returns the session embedded in token. It fails with
	// domain.ErrInvalidToken unless the token is registered AND its signature
	// verifies.
	DecodeSession(ctx context.Context, token string) (*domain.Session, error)

	// Refresh rotates a live token: the old one is invalidated immediately
	// and a new token with fresh time claims is returned.
	Refresh(ctx context.Context, token string) (string, error)

	// Logout revokes a live session. A token that is not registered fails
	// with domain.ErrInvalidToken.
	Logout(ctx context.Context, token string) error
}
