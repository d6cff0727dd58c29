// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billsplit/internal/models"
)

// ErrNotFound is wrapped by stores when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for session storage operations.
// Sessions are loaded at the start of each request and saved after a
// successful mutation; nothing is cached between requests.
type Store interface {
	// CreateSession persists a new session.
	// The session.ID, Title and CreatedAt fields are populated by the store when empty.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session with its roster, items and settings.
	// Returns an error wrapping ErrNotFound if the session does not exist.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// SaveSession replaces the stored state of an existing session.
	// Returns an error wrapping ErrNotFound if the session does not exist.
	SaveSession(ctx context.Context, session *models.Session) error

	// DeleteSession removes a session and everything it owns.
	DeleteSession(ctx context.Context, sessionID string) error

	// Close releases any resources held by the store.
	Close() error
}
