// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug (method, path, client IP) and completion
(status, duration_ms), at error level for 5xx responses. The wrapped writer
still supports flushing through http.ResponseController, so streaming
handlers can be wrapped too.

# Authentication

Routes that act on behalf of a user are wrapped with RequireUser:

	mux.HandleFunc("POST /api/polls/{id}/vote",
		middleware.WithLogging(middleware.RequireUser(secret, h.Vote)))

The session token comes from "Authorization: Bearer <token>" or, failing
that, the "session" cookie. Missing or invalid tokens get 401 before the
handler runs. Handlers read the verified identity with:

	userID, ok := middleware.UserFromContext(r.Context())

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs.
*/
package middleware
