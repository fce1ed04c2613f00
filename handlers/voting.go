// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/engine"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
)

type VotingHandler struct {
	engine *engine.Engine
	cfg    cliparse.Config
}

func NewVotingHandler(eng *engine.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{engine: eng, cfg: cfg}
}

// Vote handles POST /api/polls/{id}/vote
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserFromContext(r.Context())

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	t, err := h.engine.Vote(r.Context(), r.PathValue("id"), userID, req.OptionID)
	if err != nil {
		writeError(w, err, "record vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Message:    "Vote recorded",
		TotalVotes: t.TotalVotes,
		Version:    t.Version,
	})
}
