// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "math"

type OptionTally struct {
	OptionID   string
	Count      int
	Percentage float64
}

// Tally is the read view of a snapshot. It is never mutated after Project
// returns it, so one value can be shared by every reader.
// Winner and RunnerUp are empty when absent.
type Tally struct {
	PollID     string
	Version    uint64
	Closed     bool
	TotalVotes int
	Options    []OptionTally
	Winner     string
	RunnerUp   string
}

// Project derives percentages, winner and runner-up from a snapshot.
// Ties go to the option that was created first.
func Project(s Snapshot) Tally {
	t := Tally{
		PollID:     s.PollID,
		Version:    s.Version,
		Closed:     s.Closed,
		TotalVotes: s.Total,
		Options:    make([]OptionTally, len(s.OptionIDs)),
	}

	for i, id := range s.OptionIDs {
		t.Options[i] = OptionTally{
			OptionID:   id,
			Count:      s.Counts[i],
			Percentage: percentage(s.Counts[i], s.Total),
		}
	}

	winner := leader(s.Counts, -1)
	if winner >= 0 {
		t.Winner = s.OptionIDs[winner]
	}
	if runnerUp := leader(s.Counts, winner); runnerUp >= 0 {
		t.RunnerUp = s.OptionIDs[runnerUp]
	}
	return t
}

// Count returns the votes of optionID, or 0 for an unknown option
func (t Tally) Count(optionID string) int {
	for _, o := range t.Options {
		if o.OptionID == optionID {
			return o.Count
		}
	}
	return 0
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}

// leader returns the index of the highest count, skipping skip.
// Strict comparison keeps the earliest index on ties.
func leader(counts []int, skip int) int {
	best := -1
	for i, c := range counts {
		if i == skip {
			continue
		}
		if best < 0 || c > counts[best] {
			best = i
		}
	}
	return best
}
