package ports

import (
	"context"
	"time"
)

type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "SIGNED_IN"
	SessionSignedOut SessionEventType = "SIGNED_OUT"
)

// SessionEvent is emitted on every auth-state change. UserID is set for
// signed-in events only.
type SessionEvent struct {
	Type   SessionEventType
	UserID string
}

// TokenStore tracks revoked session tokens until they would have expired
// anyway.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
