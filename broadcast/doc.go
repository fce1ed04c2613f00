// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package broadcast pushes tally updates to live results streams.

Each poll has a topic with its own mutex; the hub map only guards topic
lookup, so publishing to one poll never waits on another.

# Delivery

Every subscriber has a buffered channel. Publish never blocks: a subscriber
whose buffer is full is dropped and its channel closed, and the client is
expected to reconnect. Because every tally is a complete replacement, a
subscriber that skips intermediate tallies still ends up correct.

Tallies carry the ledger version. The hub discards any tally that is not
newer than the last one it published for the poll, so concurrent publishers
can race without a subscriber ever seeing the count go backwards.

# Lifecycle

	sub := hub.Subscribe(pollID, current)
	defer hub.Unsubscribe(sub.ID)

	for t := range sub.C {
		// write t to the client
	}

Subscribe always queues one tally before returning, so a late joiner is
never blank. Close sends the final tally and closes every channel; anyone
subscribing afterwards receives the final tally on an already closed channel.
Forget removes the poll entirely once it has been deleted and leaves a
tombstone, so a stream opened after the delete ends at once instead of
waiting on a topic nobody will close.

Publish skips polls nobody is watching, and Unsubscribe drops an open topic
with its last subscriber. Callers hand Subscribe the current tally, so a new
topic never needs history.
*/
package broadcast
