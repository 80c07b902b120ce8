package repository

import (
	"context"
	"errors"

	"vintage-atelier/internal/domain"
)

var (
	ErrStateNotFound = errors.New("session state not found")
)

// SessionState is the per-session convenience state mirrored to durable
// storage: the saved profile and the order history. The JSON keys match the
// storefront's persisted document. The mirror is a best-effort cache, not a
// system of record — callers log save failures and carry on.
type SessionState struct {
	User   *domain.User   `json:"user,omitempty"`
	Orders []domain.Order `json:"orderHistory"`
}

// StateRepository is the persistence boundary for session state. It is read
// once when a session is first touched and written through on every
// mutation. Load returns ErrStateNotFound when nothing was ever saved for
// the session; absent state is not a failure.
type StateRepository interface {
	Load(ctx context.Context, sessionID string) (*SessionState, error)
	Save(ctx context.Context, sessionID string, state *SessionState) error
	Delete(ctx context.Context, sessionID string) error
}
