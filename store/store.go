// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateVote = errors.New("voter already has a vote in this poll")
)

// Store is the durable record of polls, options and votes
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreatePoll inserts a poll and its options in one transaction.
// IDs and timestamps are assigned here; options keep their slice order.
func (s *Store) CreatePoll(ctx context.Context, ownerID, title, description string, optionTexts []string) (models.Poll, []models.Option, error) {
	poll := models.Poll{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      models.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, owner_id, title, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, poll.ID, poll.OwnerID, poll.Title, poll.Description, poll.Status, poll.CreatedAt)
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	options := make([]models.Option, 0, len(optionTexts))
	for i, text := range optionTexts {
		opt := models.Option{
			ID:         uuid.NewString(),
			PollID:     poll.ID,
			OptionText: text,
			Position:   i,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (id, poll_id, option_text, position)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, opt.PollID, opt.OptionText, opt.Position)
		if err != nil {
			return models.Poll{}, nil, fmt.Errorf("failed to insert option: %w", err)
		}
		options = append(options, opt)
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to commit poll: %w", err)
	}

	return poll, options, nil
}

// GetPoll returns ErrNotFound when the poll does not exist
func (s *Store) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	var poll models.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, status, created_at, closed_at
		FROM poll
		WHERE id = $1
	`, id).Scan(
		&poll.ID, &poll.OwnerID, &poll.Title, &poll.Description,
		&poll.Status, &poll.CreatedAt, &poll.ClosedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	return poll, nil
}

// ListPolls returns polls newest first. An empty ownerID lists every poll.
func (s *Store) ListPolls(ctx context.Context, ownerID string) ([]models.Poll, error) {
	query := `
		SELECT id, owner_id, title, description, status, created_at, closed_at
		FROM poll
		ORDER BY created_at DESC, id
	`
	args := []any{}
	if ownerID != "" {
		query = `
			SELECT id, owner_id, title, description, status, created_at, closed_at
			FROM poll
			WHERE owner_id = $1
			ORDER BY created_at DESC, id
		`
		args = append(args, ownerID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var poll models.Poll
		if err := rows.Scan(
			&poll.ID, &poll.OwnerID, &poll.Title, &poll.Description,
			&poll.Status, &poll.CreatedAt, &poll.ClosedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}

// ListOptions returns a poll's options in insertion order
func (s *Store) ListOptions(ctx context.Context, pollID string) ([]models.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, option_text, position
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.OptionText, &opt.Position); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// ListVotes returns every recorded vote of a poll in cast order
func (s *Store) ListVotes(ctx context.Context, pollID string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT poll_id, voter_id, option_id, cast_at
		FROM vote
		WHERE poll_id = $1
		ORDER BY cast_at, voter_id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.PollID, &v.VoterID, &v.OptionID, &v.CastAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// AppendVote records one vote. The (poll_id, voter_id) key makes a second
// vote by the same voter fail with ErrDuplicateVote.
func (s *Store) AppendVote(ctx context.Context, pollID, voterID, optionID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (poll_id, voter_id, option_id, cast_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, voterID, optionID, time.Now().UTC())
	if isUniqueViolation(err) {
		return ErrDuplicateVote
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// ClearVotes deletes every vote of a poll
func (s *Store) ClearVotes(ctx context.Context, pollID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM vote WHERE poll_id = $1`, pollID)
	if err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	return nil
}

// MarkClosed moves a poll to the closed status, recording at as its close time
func (s *Store) MarkClosed(ctx context.Context, pollID string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE poll
		SET status = $1, closed_at = $2
		WHERE id = $3
	`, models.StatusClosed, at.UTC(), pollID)
	if err != nil {
		return fmt.Errorf("failed to close poll: %w", err)
	}
	return expectRow(res)
}

// DeletePoll removes a poll with its options and votes
func (s *Store) DeletePoll(ctx context.Context, pollID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// SQLite does not enforce ON DELETE CASCADE unless foreign keys are on
	if _, err := tx.ExecContext(ctx, `DELETE FROM vote WHERE poll_id = $1`, pollID); err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM poll_option WHERE poll_id = $1`, pollID); err != nil {
		return fmt.Errorf("failed to delete options: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM poll WHERE id = $1`, pollID)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
