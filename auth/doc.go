// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies the session tokens issued by the authentication service.

WebAuthn registration and login happen in a separate service. Once a user
completes a ceremony, that service issues a session token signed with the
secret it shares with this server:

	token := auth.SignUserToken(userID, secret)

The token is the user ID followed by a dot and an HMAC-SHA256 signature,
URL-safe base64 encoded without padding. Verification recovers the user ID:

	userID, err := auth.VerifyUserToken(token, secret)

ErrInvalidToken means the token is malformed; ErrInvalidSignature means it
was not signed with this secret. Either way the request is unauthenticated.

The user ID is opaque. Nothing in this server interprets it beyond equality.
*/
package auth
