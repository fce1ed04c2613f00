// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists polls, options and votes.

The store is the durable side of the system. The in-memory tally ledger
treats a successful AppendVote as the commit point of a vote, and a
restarted server rebuilds every ledger from ListOptions and ListVotes.

# Duplicate votes

The vote table is keyed by (poll_id, voter_id). A second insert for the same
voter fails inside the database and is reported as ErrDuplicateVote, for
both PostgreSQL (SQLSTATE 23505) and SQLite (primary key or unique
constraint). Callers never need to look at driver errors.

# Missing rows

GetPoll, MarkClosed and DeletePoll return ErrNotFound when the poll does not
exist. Listing an unknown poll's options or votes returns an empty slice.

# Example

	s := store.New(conn)
	poll, options, err := s.CreatePoll(ctx, userID, "Lunch", "", []string{"Pizza", "Tacos"})
	if err != nil {
		return err
	}
	err = s.AppendVote(ctx, poll.ID, voterID, options[0].ID)
	if errors.Is(err, store.ErrDuplicateVote) {
		// already voted
	}
*/
package store
