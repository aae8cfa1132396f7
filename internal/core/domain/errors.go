package domain

import "errors"

var (
	// ErrUsernameNotFound is returned when a username does not resolve to an
	// account (login, conflict checks).
	ErrUsernameNotFound = errors.New("username not found")
	// ErrUserIDNotFound is returned when an id does not resolve to an account
	// (update, delete).
	ErrUserIDNotFound = errors.New("user id not found")
	// ErrUserExists signals a username collision on create or update.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidPassword is returned when the username resolves but the
	// password does not match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidToken collapses every session-decode failure (bad signature,
	// expired claim, token not registered) into a single outcome so the
	// response does not leak which check failed.
	ErrInvalidToken = errors.New("missing or invalid token")
	// ErrInsufficientPermissions is returned when a valid session lacks the
	// role or ownership required for the operation.
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// FieldErrors maps input field names to validation messages. It satisfies
// error so handlers can return it directly and let the central error handler
// render the {"errors": {...}} envelope with a 400.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	for field, msg := range fe {
		return field + ": " + msg
	}
	return "validation failed"
}
