package session

import (
	"context"
	"time"
)

// Validity is the fixed window a session lives for. Expiry is absolute:
// records are never extended after creation.
const Validity = 14 * 24 * time.Hour

// Session represents an authenticated user session.
// It intentionally stores only identity pointers, not auth state.
type Session struct {
	Token     string    // opaque unique session token
	UserID    string    // references users.id; empty when the identity had none
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
// Implementations (e.g., Redis) must remain stateless and opaque.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
