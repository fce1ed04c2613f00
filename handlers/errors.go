// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livepoll/engine"
	"github.com/danielhkuo/livepoll/middleware"
)

// statusFor maps an error kind to the HTTP status returned for it
func statusFor(kind engine.Kind) int {
	switch kind {
	case engine.KindValidation:
		return http.StatusBadRequest
	case engine.KindConflict:
		return http.StatusConflict
	case engine.KindAuthorization:
		return http.StatusForbidden
	case engine.KindNotFound:
		return http.StatusNotFound
	case engine.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with the status for err. Internal errors are logged
// and their text is not sent to the client.
func writeError(w http.ResponseWriter, err error, action string) {
	status := statusFor(engine.KindOf(err))
	if status == http.StatusInternalServerError {
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, status, "Internal server error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}
