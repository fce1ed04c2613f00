// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first when present. Variables
already set in the environment are never overwritten by it.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSecret: Secret shared with the authentication service (required)
  - SubscriberBuffer: Results events queued per stream before it is dropped (default: 16)
  - HeartbeatInterval: Keepalive comment interval on results streams (default: 15s)
  - AuditInterval: How often ledgers are audited (default: 1m)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p                  Server port
	-d                  Database URL
	-t                  Database type
	--session-secret    Session token secret
	--subscriber-buffer Per-stream queue length
	--heartbeat         Keepalive interval
	--audit-interval    Audit interval
	--log-level         Log level

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	SESSION_SECRET     → --session-secret
	SUBSCRIBER_BUFFER  → --subscriber-buffer
	HEARTBEAT_INTERVAL → --heartbeat
	AUDIT_INTERVAL     → --audit-interval
	LOG_LEVEL          → --log-level

CLI flags take precedence over environment variables.
*/
package cliparse
