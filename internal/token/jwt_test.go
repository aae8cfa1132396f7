package token

import (
	"testing"
	"time"

	"github.com/cvds/identity-service/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "admin",
		Role:     domain.RoleAdmin,
	}
}

func TestJWTCodec_SignVerify(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)

	token, err := codec.Sign(testUser())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	session, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if session.Username != "admin" {
		t.Fatalf("unexpected username: %s", session.Username)
	}
	if session.UserID != "user-1" {
		t.Fatalf("unexpected user id: %s", session.UserID)
	}
	if session.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", session.Role)
	}
	if session.ExpiresAt.Before(session.IssuedAt) {
		t.Fatalf("expiry %v before issued-at %v", session.ExpiresAt, session.IssuedAt)
	}
}

func TestJWTCodec_SignProducesUniqueTokens(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)

	t1, err := codec.Sign(testUser())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	t2, err := codec.Sign(testUser())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("two tokens issued back-to-back must differ")
	}
}

func TestJWTCodec_VerifyWrongSecret(t *testing.T) {
	token, err := NewJWTCodec("secret", time.Hour).Sign(testUser())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTCodec("other", time.Hour).Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_VerifyGarbage(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)
	if _, err := codec.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_ExpiresAt(t *testing.T) {
	ttl := 2 * time.Hour
	codec := NewJWTCodec("secret", ttl)

	token, err := codec.Sign(testUser())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	exp, err := codec.ExpiresAt(token)
	if err != nil {
		t.Fatalf("expires at: %v", err)
	}

	want := time.Now().Add(ttl)
	if diff := exp.Sub(want); diff < -5*time.Second || diff > 5*time.Second {
		t.Fatalf("expiry %v not within 5s of %v", exp, want)
	}
}

func TestJWTCodec_ExpiresAtIgnoresSignature(t *testing.T) {
	token, err := NewJWTCodec("secret", time.Hour).Sign(testUser())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// A codec with a different secret cannot verify the token, but can still
	// read its expiry claim for session bookkeeping.
	other := NewJWTCodec("other", time.Hour)
	if _, err := other.ExpiresAt(token); err != nil {
		t.Fatalf("expires at with wrong secret: %v", err)
	}
}

func TestJWTCodec_ExpiresAtGarbage(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)
	if _, err := codec.ExpiresAt("garbage"); err == nil {
		t.Fatalf("expected error for undecodable token")
	}
}
