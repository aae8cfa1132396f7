package session

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/cvds/identity-service/internal/api/metrics"
	"github.com/cvds/identity-service/internal/core/ports"
)

const defaultCleanupInterval = 3 * time.Hour

// Cleaner runs SessionStore.CleanupSessions on a fixed schedule, independent
// of request traffic. It shares the store with in-flight request handlers, so
// the store must tolerate concurrent mutation.
type Cleaner struct {
	cron  *cron.Cron
	store ports.SessionStore
	log   zerolog.Logger
}

// NewCleaner schedules a sweep every interval (3h when interval <= 0).
func NewCleaner(store ports.SessionStore, interval time.Duration, log zerolog.Logger) (*Cleaner, error) {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	c := &Cleaner{cron: cron.New(), store: store, log: log}
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := c.cron.AddFunc(spec, c.sweep); err != nil {
		return nil, fmt.Errorf("schedule session cleanup: %w", err)
	}
	return c, nil
}

// Start launches the scheduler in its own goroutine.
func (c *Cleaner) Start() {
	c.cron.Start()
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (c *Cleaner) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

func (c *Cleaner) sweep() {
	removed := c.store.CleanupSessions(context.Background())
	metrics.SessionsCleanedTotal.Add(float64(removed))
	c.log.Debug().Int("removed", removed).Msg("session sweep completed")
}
