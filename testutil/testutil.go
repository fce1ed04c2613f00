// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/db"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// TestSessionSecret signs every token issued by AuthHeader
const TestSessionSecret = "test-session-secret"

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// Each call gets its own database; it is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       ":memory:",
		DatabaseType:      "sqlite",
		SessionSecret:     TestSessionSecret,
		SubscriberBuffer:  16,
		HeartbeatInterval: 0,
		AuditInterval:     time.Minute,
		LogLevel:          "error",
	}
}

// CreateTestPoll creates an active poll owned by ownerID with the given
// option texts and returns it with its options in order
func CreateTestPoll(t *testing.T, s *store.Store, ownerID string, optionTexts ...string) (models.Poll, []models.Option) {
	t.Helper()

	if len(optionTexts) == 0 {
		optionTexts = []string{"Yes", "No"}
	}

	poll, options, err := s.CreatePoll(context.Background(), ownerID, "Test Poll", "A test poll", optionTexts)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return poll, options
}

// AuthHeader returns request headers carrying a session token for userID
func AuthHeader(userID string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + auth.SignUserToken(userID, TestSessionSecret),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
