// Package session provides the server-side session capability that gates
// mutating routes. Stores are injected into the middleware and handlers so
// tests can swap the database-backed store for an in-memory one.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// CookieName is the cookie carrying the opaque session token.
const CookieName = "session_id"

var ErrNotFound = errors.New("session not found or expired")

// Data is the user projection associated with a session.
type Data struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Store creates, resolves and destroys sessions by opaque token.
type Store interface {
	Create(data Data, ttl time.Duration) (token string, err error)
	Get(token string) (*Data, error)
	Destroy(token string) error
}

// newToken returns a 32-byte random token, base64url encoded.
func newToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// hashToken returns the hex sha256 of a token. Only the hash is stored.
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
