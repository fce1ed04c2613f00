// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/tally"
)

// Close stops voting on a poll, sends the final tally to every live stream
// and ends those streams
func (e *Engine) Close(ctx context.Context, pollID, requesterID string) (tally.Tally, error) {
	ent, err := e.owned(ctx, pollID, requesterID)
	if err != nil {
		return tally.Tally{}, err
	}

	now := closeTime()
	snap, err := ent.ledger.Freeze(ctx, now)
	if err != nil {
		return tally.Tally{}, err
	}
	ent.closedAt.Store(&now)

	final := tally.Project(snap)
	e.hub.Close(pollID, final)

	e.logger.Info("poll closed",
		"poll_id", pollID,
		"total_votes", humanize.Comma(int64(final.TotalVotes)),
		"winner", final.Winner,
	)
	return final, nil
}

// Reset clears every vote of a poll and publishes the zeroed tally.
// The poll stays active or closed as it was.
func (e *Engine) Reset(ctx context.Context, pollID, requesterID string) (tally.Tally, error) {
	ent, err := e.owned(ctx, pollID, requesterID)
	if err != nil {
		return tally.Tally{}, err
	}

	before := ent.ledger.Snapshot().Total
	snap, err := ent.ledger.Clear(ctx)
	if err != nil {
		return tally.Tally{}, err
	}

	t := tally.Project(snap)
	e.hub.Publish(pollID, t)

	e.logger.Info("poll reset",
		"poll_id", pollID,
		"cleared_votes", humanize.Comma(int64(before)),
	)
	return t, nil
}

// Delete removes a poll. Live streams get a final closed tally first.
func (e *Engine) Delete(ctx context.Context, pollID, requesterID string) error {
	ent, err := e.owned(ctx, pollID, requesterID)
	if err != nil {
		return err
	}

	now := closeTime()
	snap, err := ent.ledger.Freeze(ctx, now)
	switch {
	case errors.Is(err, tally.ErrAlreadyClosed):
		snap = ent.ledger.Snapshot()
	case err != nil:
		return err
	default:
		ent.closedAt.Store(&now)
	}

	err = e.store.DeletePoll(ctx, pollID)
	if err != nil {
		// The poll is closed but still stored. End its streams as Close
		// would; the owner can retry the delete.
		e.hub.Close(pollID, tally.Project(snap))
		if errors.Is(err, store.ErrNotFound) {
			err = ErrUnknownPoll
		}
		return fmt.Errorf("failed to delete poll: %w", err)
	}

	e.mu.Lock()
	delete(e.polls, pollID)
	e.deleted[pollID] = struct{}{}
	e.mu.Unlock()

	e.hub.Close(pollID, tally.Project(snap))
	e.hub.Forget(pollID)

	e.logger.Info("poll deleted",
		"poll_id", pollID,
		"total_votes", humanize.Comma(int64(snap.Total)),
	)
	return nil
}

// closeTime is the close timestamp at the precision the database keeps
func closeTime() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// owned loads the poll and checks that requesterID owns it
func (e *Engine) owned(ctx context.Context, pollID, requesterID string) (*entry, error) {
	if requesterID == "" {
		return nil, ErrUnauthenticated
	}

	ent, err := e.entry(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if ent.poll.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	return ent, nil
}
