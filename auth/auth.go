// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidToken     = errors.New("invalid token format")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// SignUserToken creates a session token binding a user ID to the secret.
// Format: <user id>.<base64url hmac>
func SignUserToken(userID, secret string) string {
	return userID + "." + signature(userID, secret)
}

// VerifyUserToken checks the token signature and returns the user ID it carries
func VerifyUserToken(token, secret string) (string, error) {
	// User IDs may contain dots, the signature never does
	i := strings.LastIndexByte(token, '.')
	if i <= 0 || i == len(token)-1 {
		return "", ErrInvalidToken
	}
	userID, sig := token[:i], token[i+1:]

	expected := signature(userID, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidSignature
	}
	return userID, nil
}

func signature(userID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(userID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
