// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrAlreadyVoted       = errors.New("voter has already voted in this poll")
	ErrPollClosed         = errors.New("poll is closed")
	ErrUnknownOption      = errors.New("option does not belong to this poll")
	ErrAlreadyClosed      = errors.New("poll is already closed")
	ErrInvariantViolation = errors.New("tally invariant violated")
)

// Journal persists ledger decisions. A ledger calls it while holding its
// lock, so a successful call is the commit point of the mutation.
//
// This write is the only I/O a ledger ever waits on under its lock.
// Projection, publishing and stream writes all happen after unlock.
type Journal interface {
	AppendVote(ctx context.Context, pollID, voterID, optionID string) error
	ClearVotes(ctx context.Context, pollID string) error
	MarkClosed(ctx context.Context, pollID string, at time.Time) error
}

type nopJournal struct{}

func (nopJournal) AppendVote(context.Context, string, string, string) error { return nil }
func (nopJournal) ClearVotes(context.Context, string) error                 { return nil }
func (nopJournal) MarkClosed(context.Context, string, time.Time) error      { return nil }

// Vote is one recorded voter choice, used to rebuild a ledger
type Vote struct {
	VoterID  string
	OptionID string
}

// Snapshot is a consistent copy of a ledger's state
type Snapshot struct {
	PollID    string
	Version   uint64
	Closed    bool
	OptionIDs []string
	Counts    []int
	Total     int
}

// Ledger is the authoritative vote count of one poll.
// Every check and mutation happens under mu.
type Ledger struct {
	pollID  string
	journal Journal

	mu      sync.Mutex
	options []string
	index   map[string]int
	counts  []int
	voters  map[string]int // voter id -> option index
	closed  bool
	version uint64
}

// NewLedger returns an empty, active ledger. optionIDs fixes the option
// order used for tie-breaks. A nil journal keeps the ledger in memory only.
func NewLedger(pollID string, optionIDs []string, journal Journal) *Ledger {
	if journal == nil {
		journal = nopJournal{}
	}

	l := &Ledger{
		pollID:  pollID,
		journal: journal,
		options: append([]string(nil), optionIDs...),
		index:   make(map[string]int, len(optionIDs)),
		counts:  make([]int, len(optionIDs)),
		voters:  make(map[string]int),
		version: 1,
	}
	for i, id := range optionIDs {
		l.index[id] = i
	}
	return l
}

// Restore rebuilds a ledger from previously journaled votes without
// writing them again
func Restore(pollID string, optionIDs []string, votes []Vote, closed bool, journal Journal) (*Ledger, error) {
	l := NewLedger(pollID, optionIDs, journal)
	for _, v := range votes {
		i, ok := l.index[v.OptionID]
		if !ok {
			return nil, fmt.Errorf("restore poll %s: vote for %s: %w", pollID, v.OptionID, ErrUnknownOption)
		}
		if _, dup := l.voters[v.VoterID]; dup {
			return nil, fmt.Errorf("restore poll %s: voter counted twice: %w", pollID, ErrInvariantViolation)
		}
		l.voters[v.VoterID] = i
		l.counts[i]++
	}
	l.closed = closed
	return l, nil
}

func (l *Ledger) PollID() string {
	return l.pollID
}

// RecordVote counts one vote for optionID. A closed poll is reported before
// a repeat voter, and a repeat voter before an unknown option.
func (l *Ledger) RecordVote(ctx context.Context, voterID, optionID string) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return Snapshot{}, ErrPollClosed
	}
	if _, ok := l.voters[voterID]; ok {
		return Snapshot{}, ErrAlreadyVoted
	}
	i, ok := l.index[optionID]
	if !ok {
		return Snapshot{}, ErrUnknownOption
	}

	if err := l.journal.AppendVote(ctx, l.pollID, voterID, optionID); err != nil {
		return Snapshot{}, err
	}

	l.voters[voterID] = i
	l.counts[i]++
	l.version++
	return l.snapshotLocked(), nil
}

// Clear removes every vote. The closed flag is left as it is.
func (l *Ledger) Clear(ctx context.Context) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.journal.ClearVotes(ctx, l.pollID); err != nil {
		return Snapshot{}, err
	}

	clear(l.voters)
	for i := range l.counts {
		l.counts[i] = 0
	}
	l.version++
	return l.snapshotLocked(), nil
}

// Freeze closes the ledger to further votes, journaling at as the close time
func (l *Ledger) Freeze(ctx context.Context, at time.Time) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return Snapshot{}, ErrAlreadyClosed
	}
	if err := l.journal.MarkClosed(ctx, l.pollID, at); err != nil {
		return Snapshot{}, err
	}

	l.closed = true
	l.version++
	return l.snapshotLocked(), nil
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Audit recounts the voter set and compares it with the option counts
func (l *Ledger) Audit() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	recount := make([]int, len(l.counts))
	for _, i := range l.voters {
		recount[i]++
	}

	sum := 0
	for i, c := range l.counts {
		sum += c
		if c != recount[i] {
			return fmt.Errorf("poll %s option %s: counted %d, voters %d: %w",
				l.pollID, l.options[i], c, recount[i], ErrInvariantViolation)
		}
	}
	if sum != len(l.voters) {
		return fmt.Errorf("poll %s: total %d, voters %d: %w", l.pollID, sum, len(l.voters), ErrInvariantViolation)
	}
	return nil
}

func (l *Ledger) snapshotLocked() Snapshot {
	total := 0
	for _, c := range l.counts {
		total += c
	}
	return Snapshot{
		PollID:    l.pollID,
		Version:   l.version,
		Closed:    l.closed,
		OptionIDs: append([]string(nil), l.options...),
		Counts:    append([]int(nil), l.counts...),
		Total:     total,
	}
}
