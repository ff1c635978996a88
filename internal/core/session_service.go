package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"promptvault-backend-go/internal/models"
	"promptvault-backend-go/internal/session"
)

// sessionService implements the SessionService interface.
type sessionService struct {
	verifier    TokenVerifier
	store       session.Store
	userService UserService
	ttl         time.Duration
}

// NewSessionService creates a new SessionService instance.
func NewSessionService(verifier TokenVerifier, store session.Store, userService UserService, ttl time.Duration) (SessionService, error) {
	if verifier == nil {
		return nil, errors.New("NewSessionService: TokenVerifier is required")
	}
	if store == nil {
		return nil, errors.New("NewSessionService: session store is required")
	}
	if userService == nil {
		return nil, errors.New("NewSessionService: UserService is required")
	}
	if ttl <= 0 {
		return nil, errors.New("NewSessionService: session TTL must be positive")
	}
	return &sessionService{
		verifier:    verifier,
		store:       store,
		userService: userService,
		ttl:         ttl,
	}, nil
}

// Bridge validates and installs a credential pair as a session record.
//
// Both tokens must be present; otherwise it fails before any provider call.
// A pair the provider refuses leaves no partial state behind: the session
// record is only written after verification and profile resolution succeed.
// Bridging twice with the same pair yields two records for the same identity;
// the handler's cookie overwrite makes the newest one the effective artifact.
func (s *sessionService) Bridge(ctx context.Context, pair models.TokenPair) (*models.Session, *models.User, error) {
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, nil, ErrMissingCredentials
	}

	token, err := s.verifier.VerifyIDToken(ctx, pair.AccessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrAuthRejected, err)
	}

	email, _ := token.Claims["email"].(string)
	user, _, err := s.userService.GetOrCreate(ctx, token.UID, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve user profile for uid '%s': %w", token.UID, err)
	}

	now := time.Now().UTC()
	sess := &models.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Email:        user.Email,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.store.Set(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("failed to install session for uid '%s': %w", user.ID, err)
	}

	return sess, user, nil
}

// Resolve loads a live session record by ID.
func (s *sessionService) Resolve(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, session.ErrSessionNotFound
	}
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Expired(time.Now()) {
		return nil, session.ErrSessionNotFound
	}
	return sess, nil
}

// Destroy removes the session record and revokes the provider's refresh
// tokens for its user, so neither the server-side artifact nor the client's
// credential pair survives a sign-out. The record is removed first: the
// guard fails closed immediately even if revocation then errors, and the
// error is still reported so the caller knows sign-out was incomplete.
func (s *sessionService) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil // already gone; sign-out is idempotent
		}
		return fmt.Errorf("failed to load session '%s' for destroy: %w", sessionID, err)
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session '%s': %w", sessionID, err)
	}
	if err := s.verifier.RevokeRefreshTokens(ctx, sess.UserID); err != nil {
		return fmt.Errorf("session '%s' deleted but provider revocation failed: %w", sessionID, err)
	}
	return nil
}
