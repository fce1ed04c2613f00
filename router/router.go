// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/engine"
	"github.com/danielhkuo/livepoll/handlers"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/store"
)

func NewRouter(s *store.Store, eng *engine.Engine, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(s, eng, cfg)
	votingHandler := handlers.NewVotingHandler(eng, cfg)
	resultsHandler := handlers.NewResultsHandler(eng, cfg)

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireUser(cfg.SessionSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polls (public reads)
	mux.HandleFunc("GET /api/polls/{$}", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /api/polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Poll management (owner operations)
	mux.HandleFunc("POST /api/polls/create", authed(pollHandler.CreatePoll))
	mux.HandleFunc("POST /api/polls/{id}/close", authed(pollHandler.ClosePoll))
	mux.HandleFunc("POST /api/polls/{id}/reset", authed(pollHandler.ResetPoll))
	mux.HandleFunc("DELETE /api/polls/{id}", authed(pollHandler.DeletePoll))

	// Voting
	mux.HandleFunc("POST /api/polls/{id}/vote", authed(votingHandler.Vote))

	// Live results
	mux.HandleFunc("GET /api/polls/{id}/results", middleware.WithLogging(resultsHandler.StreamResults))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livepoll API v1"))
	})

	return mux
}
