// Package session owns the server-side session artifact. The artifact is
// written exclusively by the session bridge and read exclusively by the
// route guard; nothing else touches it.
package session

import (
	"context"
	"errors"

	"promptvault-backend-go/internal/models"
)

// ErrSessionNotFound is returned when no live session exists for an ID.
// An expired session is indistinguishable from an absent one.
var ErrSessionNotFound = errors.New("session not found")

// Store defines the interface for session artifact storage.
// Set overwrites any existing record under the same ID (last write wins).
type Store interface {
	Set(ctx context.Context, sess *models.Session) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
