// Package session implements the revocation authority for issued tokens.
// A token is only authoritative while the store holds an exactly matching
// entry for its subject; deleting the entry invalidates the token
// immediately, regardless of its own expiry.
package session

import (
	"context"
	"time"
)

// Store maps a subject id to the token last issued for it. At most one live
// entry exists per subject: Put unconditionally overwrites, which is what
// enforces single-active-session semantics.
type Store interface {
	// Put records token as the only valid session for userID, expiring
	// after ttl. Any prior entry is discarded.
	Put(ctx context.Context, userID string, token string, ttl time.Duration) error

	// Get returns the live token for userID, or model.ErrNoSession when
	// the subject has no session (never logged in, logged out, or expired).
	Get(ctx context.Context, userID string) (string, error)

	// Delete removes the session for userID. Deleting an absent session
	// is not an error.
	Delete(ctx context.Context, userID string) error
}

const keyPrefix = "token:"

// Key returns the store key for a subject id.
func Key(userID string) string {
	return keyPrefix + userID
}
