// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/tally"
)

// Subscriber receives tallies for one poll on C until C is closed
type Subscriber struct {
	ID     string
	PollID string
	C      <-chan tally.Tally

	ch   chan tally.Tally
	last uint64 // newest version queued, guarded by the topic mutex
}

type topic struct {
	mu        sync.Mutex
	subs      map[string]*Subscriber
	latest    tally.Tally
	hasLatest bool
	closed    bool
}

// Hub fans tallies out to the live subscribers of each poll.
// Lock order is Hub.mu then topic.mu.
type Hub struct {
	buffer int
	logger *slog.Logger

	mu        sync.RWMutex
	topics    map[string]*topic
	index     map[string]string      // subscriber id -> poll id
	forgotten map[string]tally.Tally // poll id -> last tally before Forget
}

// New creates a hub whose subscribers can queue up to buffer tallies
func New(buffer int, logger *slog.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		buffer: buffer,
		logger: logger,
		topics:    make(map[string]*topic),
		index:     make(map[string]string),
		forgotten: make(map[string]tally.Tally),
	}
}

// Subscribe registers a subscriber and queues its first tally: current, or
// the tally the hub last saw for the poll if that is at least as new.
// If the poll is closed or forgotten the subscriber gets that tally, marked
// closed, and a closed channel.
func (h *Hub) Subscribe(pollID string, current tally.Tally) *Subscriber {
	ch := make(chan tally.Tally, h.buffer)
	sub := &Subscriber{
		ID:     uuid.NewString(),
		PollID: pollID,
		C:      ch,
		ch:     ch,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if last, gone := h.forgotten[pollID]; gone {
		first := current
		if last.Version >= first.Version {
			first = last
		}
		first.Closed = true
		sub.ch <- first
		sub.last = first.Version
		close(sub.ch)
		return sub
	}

	t := h.topicLocked(pollID)
	t.mu.Lock()
	defer t.mu.Unlock()

	first := current
	if t.hasLatest && t.latest.Version >= first.Version {
		first = t.latest
	}
	sub.ch <- first
	sub.last = first.Version

	if t.closed || first.Closed {
		if !t.hasLatest || first.Version > t.latest.Version {
			t.latest, t.hasLatest = first, true
		}
		t.closed = true
		close(sub.ch)
		return sub
	}

	t.subs[sub.ID] = sub
	h.index[sub.ID] = pollID
	return sub
}

// Unsubscribe removes a subscriber and closes its channel.
// Unknown or already removed ids are ignored. An open topic left without
// subscribers is dropped.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	pollID, ok := h.index[id]
	if !ok {
		return
	}
	delete(h.index, id)

	t, ok := h.topics[pollID]
	if !ok {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if sub, ok := t.subs[id]; ok {
		delete(t.subs, id)
		close(sub.ch)
	}
	if len(t.subs) == 0 && !t.closed {
		delete(h.topics, pollID)
	}
}

// Publish queues tally on every subscriber of the poll without blocking.
// A tally not newer than the last one published is discarded, and a
// subscriber whose buffer is full is dropped. Polls nobody watches are
// skipped; new subscribers are handed the current tally instead.
func (h *Hub) Publish(pollID string, tl tally.Tally) {
	t, ok := h.lookup(pollID)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	if t.hasLatest && tl.Version <= t.latest.Version {
		return
	}
	t.latest, t.hasLatest = tl, true

	for id, sub := range t.subs {
		if tl.Version <= sub.last {
			continue
		}
		select {
		case sub.ch <- tl:
			sub.last = tl.Version
		default:
			delete(t.subs, id)
			close(sub.ch)
			h.logger.Warn("dropped slow results subscriber", "poll_id", pollID, "subscriber_id", id)
		}
	}
}

// Close delivers final to every subscriber of the poll, then closes their
// channels. Later subscribers get the final tally and a closed channel.
func (h *Hub) Close(pollID string, final tally.Tally) {
	// Held throughout so Unsubscribe cannot drop the topic before it is
	// marked closed
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, gone := h.forgotten[pollID]; gone {
		return
	}
	t := h.topicLocked(pollID)
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.hasLatest || final.Version > t.latest.Version {
		t.latest, t.hasLatest = final, true
	}
	t.closed = true

	for id, sub := range t.subs {
		if final.Version > sub.last {
			deliverFinal(sub, final)
		}
		delete(t.subs, id)
		close(sub.ch)
	}
}

// Forget drops everything the hub knows about a deleted poll. Later
// subscribers get the last tally it saw and a closed channel.
func (h *Hub) Forget(pollID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.topics[pollID]
	if !ok {
		h.forgotten[pollID] = tally.Tally{PollID: pollID, Closed: true}
		return
	}
	delete(h.topics, pollID)

	t.mu.Lock()
	defer t.mu.Unlock()
	h.forgotten[pollID] = t.latest
	for id, sub := range t.subs {
		delete(t.subs, id)
		delete(h.index, id)
		close(sub.ch)
	}
}

// Shutdown closes every subscriber channel so streaming handlers return
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, t := range h.topics {
		t.mu.Lock()
		for id, sub := range t.subs {
			delete(t.subs, id)
			close(sub.ch)
		}
		t.closed = true
		t.mu.Unlock()
	}
	clear(h.index)
}

// SubscriberCount returns the number of live subscribers of a poll
func (h *Hub) SubscriberCount(pollID string) int {
	t, ok := h.lookup(pollID)
	if !ok {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Stats returns live subscriber counts keyed by poll id.
// Polls without subscribers are omitted.
func (h *Hub) Stats() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := make(map[string]int)
	for pollID, t := range h.topics {
		t.mu.Lock()
		if n := len(t.subs); n > 0 {
			stats[pollID] = n
		}
		t.mu.Unlock()
	}
	return stats
}

func (h *Hub) lookup(pollID string) (*topic, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.topics[pollID]
	return t, ok
}

// topicLocked returns the poll's topic, creating it on first use.
// h.mu must be held for writing.
func (h *Hub) topicLocked(pollID string) *topic {
	t, ok := h.topics[pollID]
	if !ok {
		t = &topic{subs: make(map[string]*Subscriber)}
		h.topics[pollID] = t
	}
	return t
}

// deliverFinal queues the final tally, discarding the oldest queued
// tally if the buffer is full
func deliverFinal(sub *Subscriber, final tally.Tally) {
	for {
		select {
		case sub.ch <- final:
			sub.last = final.Version
			return
		default:
		}
		select {
		case <-sub.ch:
		default:
		}
	}
}
