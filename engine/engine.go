// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/danielhkuo/livepoll/broadcast"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/tally"
)

// PollStore is the persistence the engine needs
type PollStore interface {
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	ListOptions(ctx context.Context, pollID string) ([]models.Option, error)
	ListVotes(ctx context.Context, pollID string) ([]models.Vote, error)
	AppendVote(ctx context.Context, pollID, voterID, optionID string) error
	ClearVotes(ctx context.Context, pollID string) error
	MarkClosed(ctx context.Context, pollID string, at time.Time) error
	DeletePoll(ctx context.Context, pollID string) error
}

var _ PollStore = (*store.Store)(nil)

// Results is a poll together with its current tally
type Results struct {
	Poll    models.Poll
	Options []models.Option
	Tally   tally.Tally
}

type entry struct {
	poll     models.Poll
	options  []models.Option
	ledger   *tally.Ledger
	closedAt atomic.Pointer[time.Time]
}

// Engine owns one ledger per poll and routes votes and lifecycle
// changes through it to the broadcast hub
type Engine struct {
	store  PollStore
	hub    *broadcast.Hub
	logger *slog.Logger

	mu      sync.Mutex
	polls   map[string]*entry
	deleted map[string]struct{}
	loads   singleflight.Group
}

func New(s PollStore, hub *broadcast.Hub, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   s,
		hub:     hub,
		logger:  logger,
		polls:   make(map[string]*entry),
		deleted: make(map[string]struct{}),
	}
}

// Vote records voterID's choice and publishes the new tally
func (e *Engine) Vote(ctx context.Context, pollID, voterID, optionID string) (tally.Tally, error) {
	if voterID == "" {
		return tally.Tally{}, ErrUnauthenticated
	}

	ent, err := e.entry(ctx, pollID)
	if err != nil {
		return tally.Tally{}, err
	}

	snap, err := ent.ledger.RecordVote(ctx, voterID, optionID)
	if err != nil {
		return tally.Tally{}, err
	}

	t := tally.Project(snap)
	e.hub.Publish(pollID, t)
	return t, nil
}

// Results returns the poll and its tally as of now
func (e *Engine) Results(ctx context.Context, pollID string) (Results, error) {
	ent, err := e.entry(ctx, pollID)
	if err != nil {
		return Results{}, err
	}
	return ent.results(tally.Project(ent.ledger.Snapshot())), nil
}

// Subscribe opens a live results stream. The returned Results describe the
// poll; the first tally is already queued on the subscriber.
func (e *Engine) Subscribe(ctx context.Context, pollID string) (*broadcast.Subscriber, Results, error) {
	ent, err := e.entry(ctx, pollID)
	if err != nil {
		return nil, Results{}, err
	}
	res := ent.results(tally.Project(ent.ledger.Snapshot()))
	sub := e.hub.Subscribe(pollID, res.Tally)

	// Changes made before the subscriber was registered were published to
	// nobody. Catch the stream up; the hub discards it if nothing changed.
	if snap := ent.ledger.Snapshot(); snap.Version > res.Tally.Version {
		e.hub.Publish(pollID, tally.Project(snap))
	}
	return sub, res, nil
}

func (e *Engine) Unsubscribe(subscriberID string) {
	e.hub.Unsubscribe(subscriberID)
}

// SubscriberCount returns the number of live results streams of a poll
func (e *Engine) SubscriberCount(pollID string) int {
	return e.hub.SubscriberCount(pollID)
}

// entry returns the poll's ledger, loading it from the store on first use.
// Concurrent first requests share one load.
func (e *Engine) entry(ctx context.Context, pollID string) (*entry, error) {
	if _, err := uuid.Parse(pollID); err != nil {
		return nil, ErrUnknownPoll
	}

	e.mu.Lock()
	ent, ok := e.polls[pollID]
	e.mu.Unlock()
	if ok {
		return ent, nil
	}

	v, err, _ := e.loads.Do(pollID, func() (any, error) {
		// A cancelled request must not fail the load for everyone waiting on it
		ent, err := e.load(context.WithoutCancel(ctx), pollID)
		if err != nil {
			return nil, err
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		if _, gone := e.deleted[pollID]; gone {
			return nil, ErrUnknownPoll
		}
		if existing, ok := e.polls[pollID]; ok {
			return existing, nil
		}
		e.polls[pollID] = ent
		return ent, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry), nil
}

func (e *Engine) load(ctx context.Context, pollID string) (*entry, error) {
	poll, err := e.store.GetPoll(ctx, pollID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownPoll
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load poll: %w", err)
	}

	options, err := e.store.ListOptions(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	votes, err := e.store.ListVotes(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	optionIDs := make([]string, len(options))
	for i, o := range options {
		optionIDs[i] = o.ID
	}
	recorded := make([]tally.Vote, len(votes))
	for i, v := range votes {
		recorded[i] = tally.Vote{VoterID: v.VoterID, OptionID: v.OptionID}
	}

	ledger, err := tally.Restore(pollID, optionIDs, recorded, !poll.IsActive(), storeJournal{e.store})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("ledger loaded",
		"poll_id", pollID,
		"options", len(options),
		"votes", humanize.Comma(int64(len(votes))),
	)
	return &entry{poll: poll, options: options, ledger: ledger}, nil
}

// results pairs the entry with t, reporting the status the ledger holds
func (ent *entry) results(t tally.Tally) Results {
	poll := ent.poll
	poll.Status = models.StatusActive
	if t.Closed {
		poll.Status = models.StatusClosed
		if at := ent.closedAt.Load(); at != nil {
			poll.ClosedAt = at
		}
	}
	return Results{Poll: poll, Options: ent.options, Tally: t}
}

// storeJournal commits ledger decisions to the store
type storeJournal struct {
	store PollStore
}

func (j storeJournal) AppendVote(ctx context.Context, pollID, voterID, optionID string) error {
	err := j.store.AppendVote(ctx, pollID, voterID, optionID)
	if errors.Is(err, store.ErrDuplicateVote) {
		return tally.ErrAlreadyVoted
	}
	return err
}

func (j storeJournal) ClearVotes(ctx context.Context, pollID string) error {
	return j.store.ClearVotes(ctx, pollID)
}

func (j storeJournal) MarkClosed(ctx context.Context, pollID string, at time.Time) error {
	err := j.store.MarkClosed(ctx, pollID, at)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUnknownPoll
	}
	return err
}
