// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/engine"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

type PollHandler struct {
	store  *store.Store
	engine *engine.Engine
	cfg    cliparse.Config
}

func NewPollHandler(s *store.Store, eng *engine.Engine, cfg cliparse.Config) *PollHandler {
	return &PollHandler{store: s, engine: eng, cfg: cfg}
}

// CreatePoll handles POST /api/polls/create
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	title := strings.TrimSpace(req.PollName)
	if title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_name is required")
		return
	}
	if len(req.PollOptions) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least 2 poll_options are required")
		return
	}
	options := make([]string, len(req.PollOptions))
	for i, text := range req.PollOptions {
		options[i] = strings.TrimSpace(text)
		if options[i] == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "poll_options must not be empty")
			return
		}
	}

	poll, _, err := h.store.CreatePoll(r.Context(), userID, title, strings.TrimSpace(req.PollDescription), options)
	if err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "owner", userID, "options", len(options))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: poll.ID,
	})
}

// ListPolls handles GET /api/polls/
// ?creator=<user id> limits the list to one owner
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.store.ListPolls(r.Context(), r.URL.Query().Get("creator"))
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	briefs := make([]models.PollBrief, len(polls))
	for i, p := range polls {
		briefs[i] = models.PollBrief{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			IsActive:    p.IsActive(),
			CreatedAt:   p.CreatedAt,
		}
	}

	middleware.JSONResponse(w, http.StatusOK, briefs)
}

// GetPoll handles GET /api/polls/{id}
// Returns the poll with its options and current counts
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	res, err := h.engine.Results(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "get poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res.Detail())
}

// ClosePoll handles POST /api/polls/{id}/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserFromContext(r.Context())
	pollID := r.PathValue("id")

	final, err := h.engine.Close(r.Context(), pollID, userID)
	if err != nil {
		writeError(w, err, "close poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LifecycleResponse{
		PollID:     pollID,
		Status:     models.StatusClosed,
		TotalVotes: final.TotalVotes,
		Version:    final.Version,
	})
}

// ResetPoll handles POST /api/polls/{id}/reset
// Clears every vote; an active poll stays active and a closed one closed
func (h *PollHandler) ResetPoll(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserFromContext(r.Context())
	pollID := r.PathValue("id")

	t, err := h.engine.Reset(r.Context(), pollID, userID)
	if err != nil {
		writeError(w, err, "reset poll")
		return
	}

	status := models.StatusActive
	if t.Closed {
		status = models.StatusClosed
	}
	middleware.JSONResponse(w, http.StatusOK, models.LifecycleResponse{
		PollID:     pollID,
		Status:     status,
		TotalVotes: t.TotalVotes,
		Version:    t.Version,
	})
}

// DeletePoll handles DELETE /api/polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserFromContext(r.Context())

	if err := h.engine.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err, "delete poll")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
