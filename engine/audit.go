// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
)

// Audit checks every loaded ledger and returns the first violation found
func (e *Engine) Audit() error {
	e.mu.Lock()
	entries := make([]*entry, 0, len(e.polls))
	for _, ent := range e.polls {
		entries = append(entries, ent)
	}
	e.mu.Unlock()

	votes := 0
	for _, ent := range entries {
		if err := ent.ledger.Audit(); err != nil {
			e.logger.Error("ledger audit failed", "poll_id", ent.poll.ID, "error", err)
			return err
		}
		votes += ent.ledger.Snapshot().Total
	}

	subscribers := 0
	for _, n := range e.hub.Stats() {
		subscribers += n
	}

	e.logger.Debug("ledger audit passed",
		"polls", len(entries),
		"votes", humanize.Comma(int64(votes)),
		"subscribers", humanize.Comma(int64(subscribers)),
	)
	return nil
}

// RunAuditor audits on every tick until ctx is done. It returns the first
// audit failure, and nil when ctx ends. A non-positive interval disables it.
func (e *Engine) RunAuditor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := e.Audit(); err != nil {
				return err
			}
		}
	}
}
