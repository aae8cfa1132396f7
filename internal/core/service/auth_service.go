package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cvds/identity-service/internal/api/metrics"
	"github.com/cvds/identity-service/internal/core/domain"
	"github.com/cvds/identity-service/internal/core/ports"
)

// AuthService implements login, session decoding, token rotation and logout.
// Token lifecycle: unissued → active (login) → refreshed | revoked | expired.
type AuthService struct {
	users ports.UserRepository
	store ports.SessionStore
	codec ports.TokenCodec
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, store ports.SessionStore, codec ports.TokenCodec, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, store: store, codec: codec, log: log}
}

// Login authenticates credentials against the user store and issues a token.
// The username and password failures stay distinct (404 vs 401) on purpose:
// the API contract exposes which of the two was wrong.
func (s *AuthService) Login(ctx context.Context, credentials ports.Credentials) (string, error) {
	user, err := s.users.FindByUsername(ctx, credentials.Username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
		return "", domain.ErrInvalidPassword
	}

	token, err := s.codec.Sign(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	s.store.AddSession(ctx, token)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return token, nil
}

// DecodeSession returns the identity behind a token. Both checks are
// required: a well-signed token that was logged out is as dead as a forged
// one, and both collapse into the same ErrInvalidToken.
func (s *AuthService) DecodeSession(ctx context.Context, token string) (*domain.Session, error) {
	if !s.store.HasSession(ctx, token) {
		return nil, domain.ErrInvalidToken
	}
	return s.codec.Verify(token)
}

// Refresh rotates a live token. The replacement carries the same identity
// with fresh time claims; the old token stops working immediately even if
// cryptographically unexpired.
func (s *AuthService) Refresh(ctx context.Context, token string) (string, error) {
	session, err := s.DecodeSession(ctx, token)
	if err != nil {
		return "", err
	}

	newToken, err := s.codec.Sign(&domain.User{
		ID:       session.UserID,
		Username: session.Username,
		Role:     session.Role,
	})
	if err != nil {
		return "", err
	}

	s.store.PatchSession(ctx, token, newToken)
	metrics.TokensRefreshedTotal.Inc()
	s.log.Debug().Str("username", session.Username).Msg("token refreshed")
	return newToken, nil
}

// Logout revokes a live session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if !s.store.HasSession(ctx, token) {
		return domain.ErrInvalidToken
	}
	s.store.RemoveSession(ctx, token)
	return nil
}
