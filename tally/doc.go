// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally keeps the authoritative vote count of each poll and projects it
into the view served to clients.

# Ledger

A Ledger holds one poll's per-option counts and the set of voters who have
voted. RecordVote, Clear and Freeze each run their checks, the journal write
and the in-memory update inside a single critical section, so concurrent
requests for the same poll are linearized and a voter can be counted at most
once. The journal (the store in production) is written before memory is
changed; if it fails, the ledger is left as it was.

Rejections are reported in a fixed order:

  - ErrPollClosed when the ledger is frozen
  - ErrAlreadyVoted when the voter is already in the voter set
  - ErrUnknownOption when the option is not part of the poll

Every mutation increments the ledger version. Versions order snapshots, which
lets the broadcast hub discard a snapshot that arrives after a newer one.

Audit verifies that the sum of counts equals the number of voters and that
each option's count matches the voters recorded for it. A failure wraps
ErrInvariantViolation.

# Projection

Project turns a Snapshot into a Tally:

	snap, err := ledger.RecordVote(ctx, voterID, optionID)
	if err != nil {
		return err
	}
	t := tally.Project(snap)

Percentages are rounded to two decimals and are 0 for every option when no
votes exist. The winner is the option with the most votes and the runner-up
the best of the rest; ties go to the option created first. A poll with no
votes therefore reports its first option as winner.
*/
package tally
