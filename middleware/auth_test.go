// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/livepoll/auth"
)

func TestRequireUser(t *testing.T) {
	secret := "session-secret"
	valid := auth.SignUserToken("user-1", secret)

	testCases := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantUser   string
	}{
		{"bearer token", "Bearer " + valid, "", http.StatusOK, "user-1"},
		{"session cookie", "", valid, http.StatusOK, "user-1"},
		{"header wins over cookie", "Bearer " + auth.SignUserToken("user-2", secret), valid, http.StatusOK, "user-2"},
		{"missing token", "", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + valid, "", http.StatusUnauthorized, ""},
		{"bad signature", "Bearer " + auth.SignUserToken("user-1", "other"), "", http.StatusUnauthorized, ""},
		{"malformed", "Bearer garbage", "", http.StatusUnauthorized, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser string
			handler := RequireUser(secret, func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("POST", "/api/polls/x/vote", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if gotUser != tc.wantUser {
				t.Errorf("Expected user '%s', got '%s'", tc.wantUser, gotUser)
			}
		})
	}
}

func TestUserFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	if _, ok := UserFromContext(req.Context()); ok {
		t.Error("Expected no user on a bare context")
	}

	ctx := WithUser(req.Context(), "user-9")
	userID, ok := UserFromContext(ctx)
	if !ok || userID != "user-9" {
		t.Errorf("Expected user-9, got '%s' (ok=%v)", userID, ok)
	}

	if _, ok := UserFromContext(WithUser(req.Context(), "")); ok {
		t.Error("Expected empty user to be treated as absent")
	}
}
