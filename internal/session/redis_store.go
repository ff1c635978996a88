package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"promptvault-backend-go/internal/models"
)

const sessionKeyPrefix = "session:"

// RedisStore is an implementation of the Store interface using Redis.
// Records are stored as JSON with a TTL matching the session expiry, so
// expiration is enforced by Redis itself and expired sessions simply vanish.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStoreConfig contains options for creating a new RedisStore.
type NewRedisStoreConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisStore creates a new RedisStore and verifies connectivity.
func NewRedisStore(cfg NewRedisStoreConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{client: rdb}, nil
}

// Set stores a session record, overwriting any record under the same ID.
func (r *RedisStore) Set(ctx context.Context, sess *models.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session '%s' already expired", sess.ID)
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session '%s': %w", sess.ID, err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+sess.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session '%s': %w", sess.ID, err)
	}
	return nil
}

// Get retrieves a live session record by ID.
func (r *RedisStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	val, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session '%s': %w", sessionID, err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session '%s': %w", sessionID, err)
	}
	return &sess, nil
}

// Delete removes a session record. Deleting an absent session is not an error.
func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session '%s': %w", sessionID, err)
	}
	return nil
}
