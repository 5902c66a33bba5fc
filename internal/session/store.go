// Package session provides the server-side session store: an opaque token,
// carried in a sealed cookie, mapped to an authenticated user id with a
// fixed TTL.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// TTL is how long a session stays valid after creation.
const TTL = 24 * time.Hour

// Store maps opaque session tokens to user ids. Implementations are safe for
// concurrent use; one instance is shared across all requests.
type Store interface {
	// Create issues a new token for the given user.
	Create(ctx context.Context, userID uint) (token string, err error)
	// Get resolves a token. ok is false for unknown or expired tokens.
	Get(ctx context.Context, token string) (userID uint, ok bool, err error)
	// Destroy invalidates a token. Destroying an unknown token is not an error.
	Destroy(ctx context.Context, token string) error
}

// newToken generates a cryptographically random session token.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
