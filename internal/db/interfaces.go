package db

import (
	"context"

	"promptvault-backend-go/internal/models"
)

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// PromptRepository defines the interface for prompt data storage operations.
//
// Create and Update return the stored row as read back from the store, so
// callers observe the server-assigned id and timestamps rather than what
// they sent (insert-returning / update-returning semantics).
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error)
	GetByID(ctx context.Context, promptID string) (*models.Prompt, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Prompt, error)
	Update(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error)
	Delete(ctx context.Context, promptID string) error
}
