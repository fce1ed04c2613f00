// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine ties the store, the tally ledgers and the broadcast hub
together.

The engine keeps one tally.Ledger per poll. A ledger is built from the store
the first time its poll is used; concurrent first requests share a single
load. After that every vote and lifecycle change goes through the ledger,
which writes the store as its commit point.

# Votes

	t, err := eng.Vote(ctx, pollID, userID, optionID)

A successful vote returns the new tally and publishes it to every live
results stream of the poll. Errors are sentinels; KindOf maps them to a
category the HTTP layer turns into a status code:

	validation       tally.ErrUnknownOption
	conflict         tally.ErrAlreadyVoted, tally.ErrPollClosed, tally.ErrAlreadyClosed
	authorization    ErrForbidden
	not_found        ErrUnknownPoll
	unauthenticated  ErrUnauthenticated
	internal         anything else

# Lifecycle

Close, Reset and Delete are owner-only. Close freezes the ledger and ends
every stream after a final tally. Reset zeroes the counts and leaves the poll
active or closed as it was. Delete removes the poll from the store and ends
its streams.

# Audit

RunAuditor periodically recounts every loaded ledger. A mismatch between
counts and voters returns an error wrapping tally.ErrInvariantViolation,
which main treats as fatal.
*/
package engine
