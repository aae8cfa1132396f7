package ports

import "context"

// SessionStore is the single source of truth for which issued tokens are
// still usable. It is independent of cryptographic validity: a well-signed
// token that has been logged out is absent here, and an entry may linger past
// its expiry until the next sweep.
type SessionStore interface {
	// HasSession reports whether token is currently registered.
	HasSession(ctx context.Context, token string) bool

	// AddSession registers a freshly issued token. A token whose expiry claim
	// cannot be decoded is not registered; the failure is logged, not
	// propagated.
	AddSession(ctx context.Context, token string)

	// PatchSession atomically replaces oldToken with newToken. The old token
	// is removed even when newToken fails to decode, so a stale session can
	// never be refreshed again.
	PatchSession(ctx context.Context, oldToken, newToken string)

	// RemoveSession deregisters a token. Removing an absent token is a no-op.
	RemoveSession(ctx context.Context, token string)

	// CleanupSessions drops every entry whose expiry is strictly in the past
	// and returns the number removed.
	CleanupSessions(ctx context.Context) int
}
