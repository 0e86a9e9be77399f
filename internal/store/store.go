package store

import (
	"context"
	"errors"

	"github.com/voyagen/m3ugroups/internal/models"
)

var (
	// ErrNotFound is returned when a session has no snapshot.
	ErrNotFound = errors.New("session not found")
	// ErrBusy is returned when another update of the same session is in flight.
	ErrBusy = errors.New("session is being updated")
)

// Store keeps one playlist snapshot per session. Implementations never expose a
// partially written snapshot.
type Store interface {
	// Create stores an empty snapshot for a new session id.
	Create(ctx context.Context, sessionID string, snap *models.Snapshot) error
	// Get returns the session's snapshot or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*models.Snapshot, error)
	// Update applies fn to the session's snapshot and stores the result.
	// If fn returns an error nothing is stored.
	Update(ctx context.Context, sessionID string, fn func(*models.Snapshot) error) (*models.Snapshot, error)
	// Delete removes the session or returns ErrNotFound.
	Delete(ctx context.Context, sessionID string) error
}
