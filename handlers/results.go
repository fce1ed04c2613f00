// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/engine"
	"github.com/danielhkuo/livepoll/models"
)

type ResultsHandler struct {
	engine *engine.Engine
	cfg    cliparse.Config
}

func NewResultsHandler(eng *engine.Engine, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{engine: eng, cfg: cfg}
}

// StreamResults handles GET /api/polls/{id}/results
// Sends the current results immediately, then one event per change until
// the client leaves or the poll is closed or deleted
func (h *ResultsHandler) StreamResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	sub, res, err := h.engine.Subscribe(r.Context(), pollID)
	if err != nil {
		writeError(w, err, "subscribe to results")
		return
	}
	defer h.engine.Unsubscribe(sub.ID)

	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	var heartbeat <-chan time.Time
	if h.cfg.HeartbeatInterval > 0 {
		ticker := time.NewTicker(h.cfg.HeartbeatInterval)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	for {
		select {
		case <-r.Context().Done():
			return

		case t, ok := <-sub.C:
			if !ok {
				return
			}
			if err := writeEvent(w, t.Version, res.WithTally(t).Event()); err != nil {
				slog.Debug("results stream write failed", "poll_id", pollID, "error", err)
				return
			}

		case <-heartbeat:
			if _, err := io.WriteString(w, ": heartbeat\n\n"); err != nil {
				return
			}
		}

		if err := rc.Flush(); err != nil {
			return
		}
	}
}

// writeEvent writes one server-sent event with the version as its id
func writeEvent(w io.Writer, version uint64, ev models.ResultsEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\ndata: %s\n\n", version, data)
	return err
}
