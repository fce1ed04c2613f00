// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the livepoll API.

# Handler Types

Each handler is a struct with its dependencies and config:

  - PollHandler: Poll creation, listing and owner lifecycle (close, reset, delete)
  - VotingHandler: Vote submission
  - ResultsHandler: Live results stream

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(store, eng, cfg)

Reads go through the engine so they see the in-memory tally rather than a
possibly lagging database count.

# Errors

Engine errors map to HTTP status by kind:

	Validation      → 400
	Unauthenticated → 401
	Authorization   → 403
	NotFound        → 404
	Conflict        → 409
	Internal        → 500 (message hidden, error logged)

# Results Stream

StreamResults writes Server-Sent Events. The first event carries the current
tally, every accepted vote or reset produces another, and closing the poll
sends a final inactive event and ends the stream:

	id: 7
	data: {"poll":"Lunch","poll_id":"...","percentage":[["...",66.67],...],...}

When a heartbeat interval is configured, a ": heartbeat" comment is written
between events so idle proxies keep the connection open.
*/
package handlers
