// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Poll status constants
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Request types

type CreatePollRequest struct {
	PollName        string   `json:"poll_name"`
	PollDescription string   `json:"poll_description"`
	PollOptions     []string `json:"poll_options"`
}

type VoteRequest struct {
	OptionID string `json:"option_id"`
}

// Response types

type CreatePollResponse struct {
	PollID string `json:"poll_id"`
}

type VoteResponse struct {
	Message    string `json:"message"`
	TotalVotes int    `json:"total_votes"`
	Version    uint64 `json:"version"`
}

type LifecycleResponse struct {
	PollID     string `json:"poll_id"`
	Status     string `json:"status"`
	TotalVotes int    `json:"total_votes"`
	Version    uint64 `json:"version"`
}

// Domain types

type Poll struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

// IsActive reports whether the poll still accepts votes.
func (p Poll) IsActive() bool {
	return p.Status == StatusActive
}

type Option struct {
	ID         string `json:"id"`
	PollID     string `json:"poll_id"`
	OptionText string `json:"option_text"`
	Position   int    `json:"-"`
}

type Vote struct {
	PollID   string    `json:"poll_id"`
	VoterID  string    `json:"-"` // Never expose in JSON
	OptionID string    `json:"option_id"`
	CastAt   time.Time `json:"cast_at"`
}

type PollBrief struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// OptionResult is an option with its current vote count
type OptionResult struct {
	ID         string `json:"id"`
	PollID     string `json:"poll_id"`
	OptionText string `json:"option_text"`
	VotesCount int    `json:"votes_count"`
}

type PollDetail struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty"`
	TotalVotes  int            `json:"total_votes"`
	Options     []OptionResult `json:"options"`
}

// Percentage is one [option_id, pct] pair of a results event.
// It encodes as a two element JSON array.
type Percentage struct {
	OptionID string
	Value    float64
}

func (p Percentage) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.OptionID, p.Value})
}

func (p *Percentage) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return errors.New("percentage must be a two element array")
	}
	if err := json.Unmarshal(pair[0], &p.OptionID); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &p.Value)
}

// ResultsEvent is the payload of every results stream message.
// Winner and RunnerUp are null when absent.
type ResultsEvent struct {
	Poll       string         `json:"poll"`
	PollID     string         `json:"poll_id"`
	Percentage []Percentage   `json:"percentage"`
	TotalVotes int            `json:"total_votes"`
	Winner     *string        `json:"winner"`
	RunnerUp   *string        `json:"runnerUp"`
	Options    []OptionResult `json:"options"`
	IsActive   bool           `json:"is_active"`
	Version    uint64         `json:"version"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
