package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cvds/identity-service/internal/core/domain"
)

// stubCodec lets tests pin arbitrary expiries per token. Only ExpiresAt is
// exercised by the stores.
type stubCodec struct {
	expiries map[string]time.Time
}

func newStubCodec() *stubCodec {
	return &stubCodec{expiries: make(map[string]time.Time)}
}

func (c *stubCodec) token(name string, exp time.Time) string {
	c.expiries[name] = exp
	return name
}

func (c *stubCodec) Sign(_ *domain.User) (string, error) {
	return "", errors.New("not implemented")
}

func (c *stubCodec) Verify(_ string) (*domain.Session, error) {
	return nil, errors.New("not implemented")
}

func (c *stubCodec) ExpiresAt(token string) (time.Time, error) {
	exp, ok := c.expiries[token]
	if !ok {
		return time.Time{}, domain.ErrInvalidToken
	}
	return exp, nil
}

func TestMemoryStore_AddHasRemove(t *testing.T) {
	ctx := context.Background()
	codec := newStubCodec()
	store := NewMemoryStore(codec, zerolog.Nop())

	tok := codec.token("t1", time.Now().Add(time.Hour))

	if store.HasSession(ctx, tok) {
		t.Fatalf("token registered before AddSession")
	}

	store.AddSession(ctx, tok)
	if !store.HasSession(ctx, tok) {
		t.Fatalf("token not registered after AddSession")
	}

	store.RemoveSession(ctx, tok)
	if store.HasSession(ctx, tok) {
		t.Fatalf("token still registered after RemoveSession")
	}
}

func TestMemoryStore_AddUndecodableToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(newStubCodec(), zerolog.Nop())

	store.AddSession(ctx, "garbage")
	if store.HasSession(ctx, "garbage") {
		t.Fatalf("undecodable token must not be registered")
	}
}

func TestMemoryStore_RemoveAbsentIsNoop(t *testing.T) {
	store := NewMemoryStore(newStubCodec(), zerolog.Nop())
	store.RemoveSession(context.Background(), "absent")
}

func TestMemoryStore_PatchSession(t *testing.T) {
	ctx := context.Background()
	codec := newStubCodec()
	store := NewMemoryStore(codec, zerolog.Nop())

	oldTok := codec.token("old", time.Now().Add(time.Hour))
	newTok := codec.token("new", time.Now().Add(2*time.Hour))

	store.AddSession(ctx, oldTok)
	store.PatchSession(ctx, oldTok, newTok)

	if store.HasSession(ctx, oldTok) {
		t.Fatalf("old token still live after patch")
	}
	if !store.HasSession(ctx, newTok) {
		t.Fatalf("new token not live after patch")
	}
}

func TestMemoryStore_PatchRemovesOldEvenWhenNewUndecodable(t *testing.T) {
	ctx := context.Background()
	codec := newStubCodec()
	store := NewMemoryStore(codec, zerolog.Nop())

	oldTok := codec.token("old", time.Now().Add(time.Hour))
	store.AddSession(ctx, oldTok)

	store.PatchSession(ctx, oldTok, "garbage")

	if store.HasSession(ctx, oldTok) {
		t.Fatalf("old token must be removed even when new token fails to decode")
	}
	if store.HasSession(ctx, "garbage") {
		t.Fatalf("undecodable token must not be registered")
	}
}

func TestMemoryStore_CleanupSessions(t *testing.T) {
	ctx := context.Background()
	codec := newStubCodec()
	store := NewMemoryStore(codec, zerolog.Nop())

	expired := codec.token("expired", time.Now().Add(-time.Minute))
	live := codec.token("live", time.Now().Add(time.Hour))

	store.AddSession(ctx, expired)
	store.AddSession(ctx, live)

	if removed := store.CleanupSessions(ctx); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if store.HasSession(ctx, expired) {
		t.Fatalf("expired session survived cleanup")
	}
	if !store.HasSession(ctx, live) {
		t.Fatalf("live session removed by cleanup")
	}

	// Idempotent when no time has advanced.
	if removed := store.CleanupSessions(ctx); removed != 0 {
		t.Fatalf("second cleanup removed %d, expected 0", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 remaining session, got %d", store.Len())
	}
}

func TestMemoryStore_CleanupKeepsExpiryAtNow(t *testing.T) {
	ctx := context.Background()
	codec := newStubCodec()
	store := NewMemoryStore(codec, zerolog.Nop())

	// Removal requires expiry strictly before now; an entry expiring well in
	// the future is never touched.
	future := codec.token("future", time.Now().Add(24*time.Hour))
	store.AddSession(ctx, future)

	if removed := store.CleanupSessions(ctx); removed != 0 {
		t.Fatalf("cleanup removed %d, expected 0", removed)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	codec := newStubCodec()
	store := NewMemoryStore(codec, zerolog.Nop())

	tokens := make([]string, 50)
	for i := range tokens {
		tokens[i] = codec.token(string(rune('a'+i%26))+string(rune('0'+i/26)), time.Now().Add(time.Hour))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, tok := range tokens {
			store.AddSession(ctx, tok)
		}
	}()
	for i := 0; i < 100; i++ {
		store.HasSession(ctx, tokens[i%len(tokens)])
		store.CleanupSessions(ctx)
	}
	<-done
}
