// Copyright (c) 2026 Warehouse 21. All rights reserved.

// Package sec provides the cryptographic primitives for operator identity:
// password hashing and opaque session tokens.
//
// Session tokens are random values handed to the browser in a cookie; only
// their SHA-256 digest is stored server-side, so a leaked session store
// cannot be replayed.
package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Identity describes the authenticated operator attached to a request.
//
// The catalog and intake layers consume it purely as a current-user /
// is-admin fact; they never inspect credentials.
type Identity struct {
	UserID   int
	Username string
	IsAdmin  bool
}

// GenerateSecureToken returns a hex-encoded random token of byteLength bytes.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the hex SHA-256 digest of a token for server-side storage.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
