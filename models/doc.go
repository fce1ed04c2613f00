// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: poll_name, poll_description, poll_options
  - VoteRequest: option_id

# Response Types

Types for JSON responses:

  - CreatePollResponse: poll_id
  - VoteResponse: message, total_votes, version
  - LifecycleResponse: poll_id, status, total_votes, version
  - PollBrief, PollDetail: poll listings and the single poll view
  - ResultsEvent: one message of the live results stream
  - ErrorResponse: error, message

# Results Events

Each event of GET /api/polls/{id}/results looks like:

	{
	  "poll": "Lunch?",
	  "poll_id": "…",
	  "percentage": [["<option id>", 66.67], ["<option id>", 33.33]],
	  "total_votes": 3,
	  "winner": "<option id>",
	  "runnerUp": "<option id>",
	  "options": [{"id": "…", "poll_id": "…", "option_text": "Pizza", "votes_count": 2}],
	  "is_active": true,
	  "version": 4
	}

Percentage pairs are encoded as two element arrays by Percentage.MarshalJSON.

# Domain Types

  - Poll: poll metadata and lifecycle state
  - Option: voting option, ordered by Position
  - Vote: one voter's vote in one poll

# Constants

Status values:

	StatusActive = "active"
	StatusClosed = "closed"
*/
package models
