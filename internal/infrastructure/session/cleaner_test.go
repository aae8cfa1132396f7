package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// countingStore records CleanupSessions invocations.
type countingStore struct {
	sweeps atomic.Int64
}

func (s *countingStore) HasSession(context.Context, string) bool     { return false }
func (s *countingStore) AddSession(context.Context, string)          {}
func (s *countingStore) PatchSession(context.Context, string, string) {}
func (s *countingStore) RemoveSession(context.Context, string)       {}

func (s *countingStore) CleanupSessions(context.Context) int {
	s.sweeps.Add(1)
	return 0
}

func TestCleaner_RunsOnSchedule(t *testing.T) {
	store := &countingStore{}
	cleaner, err := NewCleaner(store, 10*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("new cleaner: %v", err)
	}

	cleaner.Start()
	defer cleaner.Stop()

	deadline := time.After(2 * time.Second)
	for store.sweeps.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("no sweep ran within deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestCleaner_StopHaltsSweeps(t *testing.T) {
	store := &countingStore{}
	cleaner, err := NewCleaner(store, 10*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("new cleaner: %v", err)
	}

	cleaner.Start()
	time.Sleep(50 * time.Millisecond)
	cleaner.Stop()

	count := store.sweeps.Load()
	time.Sleep(50 * time.Millisecond)
	if store.sweeps.Load() != count {
		t.Fatalf("sweeps continued after Stop")
	}
}

func TestCleaner_DefaultInterval(t *testing.T) {
	if _, err := NewCleaner(&countingStore{}, 0, zerolog.Nop()); err != nil {
		t.Fatalf("zero interval must fall back to the default: %v", err)
	}
}
