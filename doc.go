// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livepoll API server.

livepoll runs single-choice polls and streams live results to every viewer
as votes arrive. Each user gets one vote per poll; owners can close, reset
or delete their polls.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	SESSION_SECRET=... DATABASE_URL=livepoll.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - SESSION_SECRET (--session-secret): Secret shared with the auth service

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SUBSCRIBER_BUFFER (--subscriber-buffer): Queued events per stream (default: 16)
  - HEARTBEAT_INTERVAL (--heartbeat): Stream keepalive (default: 15s)
  - AUDIT_INTERVAL (--audit-interval): Ledger self-check (default: 1m)
  - LOG_LEVEL (--log-level): debug, info, warn or error (default: info)

# Architecture

  - tally: Vote ledger and tally projection
  - broadcast: Per-poll fan-out of tallies to stream subscribers
  - engine: Ledger registry, poll lifecycle and error kinds
  - store: Poll, option and vote persistence
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, session auth, JSON helpers
  - auth: Session token verification
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
