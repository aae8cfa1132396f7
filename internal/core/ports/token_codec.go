package ports

import (
	"time"

	"github.com/cvds/identity-service/internal/core/domain"
)

// TokenCodec signs user identities into opaque bearer tokens and verifies
// them back into sessions.
type TokenCodec interface {
	// Sign issues a new token for the user with fresh issued-at/expiry claims.
	Sign(user *domain.User) (string, error)

	// Verify checks the signature and time claims and returns the embedded
	// session. Any failure maps to domain.ErrInvalidToken.
	Verify(token string) (*domain.Session, error)

	// ExpiresAt extracts the expiry claim without verifying the signature.
	// The session store uses it for bookkeeping only; validity is always the
	// combination of Verify and store membership.
	ExpiresAt(token string) (time.Time, error)
}
