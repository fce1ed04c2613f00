// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/tally"
)

// WithTally returns r describing the poll as of t
func (r Results) WithTally(t tally.Tally) Results {
	r.Tally = t
	if t.Closed {
		r.Poll.Status = models.StatusClosed
	} else {
		r.Poll.Status = models.StatusActive
	}
	return r
}

// Event builds the results stream payload
func (r Results) Event() models.ResultsEvent {
	ev := models.ResultsEvent{
		Poll:       r.Poll.Title,
		PollID:     r.Poll.ID,
		Percentage: make([]models.Percentage, len(r.Tally.Options)),
		TotalVotes: r.Tally.TotalVotes,
		Options:    r.optionResults(),
		IsActive:   !r.Tally.Closed,
		Version:    r.Tally.Version,
	}
	for i, o := range r.Tally.Options {
		ev.Percentage[i] = models.Percentage{OptionID: o.OptionID, Value: o.Percentage}
	}
	if r.Tally.Winner != "" {
		winner := r.Tally.Winner
		ev.Winner = &winner
	}
	if r.Tally.RunnerUp != "" {
		runnerUp := r.Tally.RunnerUp
		ev.RunnerUp = &runnerUp
	}
	return ev
}

// Detail builds the single poll view
func (r Results) Detail() models.PollDetail {
	return models.PollDetail{
		ID:          r.Poll.ID,
		UserID:      r.Poll.OwnerID,
		Title:       r.Poll.Title,
		Description: r.Poll.Description,
		IsActive:    !r.Tally.Closed,
		CreatedAt:   r.Poll.CreatedAt,
		ClosedAt:    r.Poll.ClosedAt,
		TotalVotes:  r.Tally.TotalVotes,
		Options:     r.optionResults(),
	}
}

func (r Results) optionResults() []models.OptionResult {
	out := make([]models.OptionResult, len(r.Options))
	for i, o := range r.Options {
		out[i] = models.OptionResult{
			ID:         o.ID,
			PollID:     o.PollID,
			OptionText: o.OptionText,
			VotesCount: r.Tally.Count(o.ID),
		}
	}
	return out
}
