package core

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"

	"promptvault-backend-go/internal/identity"
	"promptvault-backend-go/internal/models"
)

// TokenVerifier is the slice of the Firebase Auth admin client the session
// layer depends on. *auth.Client satisfies it; tests substitute a fake.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// SessionService owns the session artifact lifecycle: Bridge is its only
// writer, Resolve its only reader (via the route guard), Destroy its only
// remover.
type SessionService interface {
	// Bridge installs a credential pair as a server-side session. The
	// returned session is fully written before Bridge returns, so a caller
	// that navigates from the success path is guaranteed the next request
	// observes the session.
	Bridge(ctx context.Context, pair models.TokenPair) (*models.Session, *models.User, error)
	// Resolve loads a live session by ID.
	Resolve(ctx context.Context, sessionID string) (*models.Session, error)
	// Destroy removes the session record and revokes the provider's refresh
	// tokens for the session's user.
	Destroy(ctx context.Context, sessionID string) error
}

// AuthService is the credential exchange surface: password sign-up/sign-in,
// password reset dispatch and password update. It never touches the session
// artifact; callers bridge the returned pair themselves.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*identity.SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*identity.SignInResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
}

// UserService defines the interface for user-profile operations.
type UserService interface {
	// GetOrCreate retrieves a user by ID, creating the profile on first sight.
	GetOrCreate(ctx context.Context, userID, email string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// PromptService defines the interface for prompt operations. Every method
// takes the authenticated user's id explicitly; there is no ambient session
// lookup, which keeps the service testable without a live session.
type PromptService interface {
	CreatePrompt(ctx context.Context, userID string, req models.CreatePromptRequest) (*models.Prompt, error)
	GetPromptByID(ctx context.Context, userID, promptID string) (*models.Prompt, error)
	ListPrompts(ctx context.Context, userID string) ([]*models.Prompt, error)
	UpdatePrompt(ctx context.Context, userID, promptID string, req models.UpdatePromptRequest) (*models.Prompt, error)
	DeletePrompt(ctx context.Context, userID, promptID string) error
}

// RewriteService defines the interface for the prompt rewrite operation.
type RewriteService interface {
	Rewrite(ctx context.Context, text string) (string, error)
}
