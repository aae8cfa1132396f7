// Package session provides the server-side registry of live tokens. The
// registry, not the token signature, is what makes logout and refresh take
// effect immediately.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cvds/identity-service/internal/api/metrics"
	"github.com/cvds/identity-service/internal/core/ports"
)

// MemoryStore keeps the token → expiry map in process memory. Restart drops
// every session. The mutex covers both request handlers and the periodic
// sweeper, which iterate and mutate the same map concurrently.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]int64

	codec ports.TokenCodec
	log   zerolog.Logger
}

// NewMemoryStore creates an empty in-memory session store. The codec is used
// only to decode expiry claims for bookkeeping.
func NewMemoryStore(codec ports.TokenCodec, log zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]int64),
		codec:    codec,
		log:      log,
	}
}

func (s *MemoryStore) HasSession(_ context.Context, token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[token]
	return ok
}

func (s *MemoryStore) AddSession(_ context.Context, token string) {
	exp, err := s.codec.ExpiresAt(token)
	if err != nil {
		// Non-fatal: the login already succeeded, the session just never
		// becomes usable.
		s.log.Error().Err(err).Msg("failed to add session")
		return
	}

	s.mu.Lock()
	s.sessions[token] = exp.Unix()
	s.mu.Unlock()
	metrics.SessionsActive.Inc()
}

func (s *MemoryStore) PatchSession(_ context.Context, oldToken, newToken string) {
	exp, err := s.codec.ExpiresAt(newToken)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[oldToken]; ok {
		delete(s.sessions, oldToken)
		metrics.SessionsActive.Dec()
	}
	if err != nil {
		// Old token is gone regardless: a stale session must never stay
		// refreshable.
		s.log.Error().Err(err).Msg("failed to patch session")
		return
	}
	s.sessions[newToken] = exp.Unix()
	metrics.SessionsActive.Inc()
}

func (s *MemoryStore) RemoveSession(_ context.Context, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; ok {
		delete(s.sessions, token)
		metrics.SessionsActive.Dec()
	}
}

// CleanupSessions removes every entry whose expiry is strictly before now.
func (s *MemoryStore) CleanupSessions(_ context.Context) int {
	now := time.Now().Unix()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, exp := range s.sessions {
		if exp < now {
			delete(s.sessions, token)
			removed++
		}
	}
	if removed > 0 {
		metrics.SessionsActive.Sub(float64(removed))
	}

	s.log.Info().Int("removed", removed).Int("remaining", len(s.sessions)).
		Msg("cleaned up expired sessions")
	return removed
}

// Len reports the number of registered sessions. Intended for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
