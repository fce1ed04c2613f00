// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the livepoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, eng, cfg)

# Endpoints

Health:

	GET /health

Polls (public):

	GET /api/polls/              - List polls (?creator=<user id>)
	GET /api/polls/{id}          - Poll with current counts
	GET /api/polls/{id}/results  - Live results stream (SSE)

Authenticated (session token in "Authorization: Bearer" or the session cookie):

	POST   /api/polls/create     - Create poll
	POST   /api/polls/{id}/vote  - Cast a vote
	POST   /api/polls/{id}/close - Close poll (owner)
	POST   /api/polls/{id}/reset - Clear all votes (owner)
	DELETE /api/polls/{id}       - Delete poll (owner)

CORS is applied around the whole mux by the caller.
*/
package router
