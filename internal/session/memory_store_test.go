package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"promptvault-backend-go/internal/models"
	"promptvault-backend-go/internal/session"
)

func newSession(id string, ttl time.Duration) *models.Session {
	now := time.Now().UTC()
	return &models.Session{
		ID:        id,
		UserID:    "user-1",
		Email:     "user@example.com",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryStoreSetGetRoundTrip(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	sess := newSession("sess-1", time.Hour)
	require.NoError(t, store.Set(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, sess.ID, got.ID)
	require.Equal(t, sess.UserID, got.UserID)
	require.Equal(t, sess.Email, got.Email)
}

func TestMemoryStoreGetUnknownID(t *testing.T) {
	store := session.NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStoreExpiredRecordIsAbsent(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, newSession("sess-old", -time.Minute)))

	_, err := store.Get(ctx, "sess-old")
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, newSession("sess-1", time.Hour)))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	first := newSession("sess-1", time.Hour)
	first.Email = "old@example.com"
	require.NoError(t, store.Set(ctx, first))

	second := newSession("sess-1", time.Hour)
	second.Email = "new@example.com"
	require.NoError(t, store.Set(ctx, second))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, "new@example.com", got.Email)
}
