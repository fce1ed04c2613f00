// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open("postgres", "postgres://...")  // github.com/lib/pq
	conn, err := db.Open("sqlite", "file:polls.db")      // modernc.org/sqlite

SQLite pools are limited to one connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll: Poll metadata and lifecycle state (active, closed)
  - poll_option: Options per poll, ordered by position
  - vote: One row per voter per poll

# Relationships

	poll 1──* poll_option
	poll 1──* vote
	poll_option 1──* vote

The primary key (poll_id, voter_id) on vote is the durable guarantee that a
voter is counted once per poll.
*/
package db
