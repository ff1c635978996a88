package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"promptvault-backend-go/internal/db"
	"promptvault-backend-go/internal/models"
)

// promptService implements the PromptService interface.
//
// Every operation is scoped to the caller's user id. Update and delete fetch
// the row first and compare ownership; a row that is absent or owned by
// another user is reported as ErrPromptNotFound either way.
type promptService struct {
	promptRepo db.PromptRepository
}

// NewPromptService creates a new PromptService instance.
func NewPromptService(promptRepo db.PromptRepository) (PromptService, error) {
	if promptRepo == nil {
		return nil, errors.New("NewPromptService: PromptRepository is required")
	}
	return &promptService{promptRepo: promptRepo}, nil
}

// CreatePrompt inserts a new prompt owned by userID and returns the stored
// row with its server-assigned id and timestamps.
func (s *promptService) CreatePrompt(ctx context.Context, userID string, req models.CreatePromptRequest) (*models.Prompt, error) {
	if userID == "" {
		return nil, errors.New("userID is required to create a prompt")
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	prompt := &models.Prompt{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    tags,
	}

	created, err := s.promptRepo.Create(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to persist prompt for user '%s': %w", userID, err)
	}
	return created, nil
}

// GetPromptByID retrieves a single prompt, subject to ownership.
func (s *promptService) GetPromptByID(ctx context.Context, userID, promptID string) (*models.Prompt, error) {
	return s.getOwned(ctx, userID, promptID)
}

// ListPrompts returns the user's prompts ordered by updatedAt descending.
// The repository query is already filtered by userId; nothing belonging to
// another user can appear in the result.
func (s *promptService) ListPrompts(ctx context.Context, userID string) ([]*models.Prompt, error) {
	if userID == "" {
		return nil, errors.New("userID is required to list prompts")
	}
	prompts, err := s.promptRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts for user '%s': %w", userID, err)
	}
	return prompts, nil
}

// UpdatePrompt applies a partial update to an owned prompt and returns the
// stored row. UserID and CreatedAt are never touched by the patch; UpdatedAt
// is zeroed so the store reassigns it on write.
func (s *promptService) UpdatePrompt(ctx context.Context, userID, promptID string, req models.UpdatePromptRequest) (*models.Prompt, error) {
	prompt, err := s.getOwned(ctx, userID, promptID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		prompt.Title = *req.Title
	}
	if req.Content != nil {
		prompt.Content = *req.Content
	}
	if req.Tags != nil {
		prompt.Tags = *req.Tags
	}
	prompt.UpdatedAt = time.Time{} // reassigned server-side on write

	updated, err := s.promptRepo.Update(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to update prompt '%s' for user '%s': %w", promptID, userID, err)
	}
	return updated, nil
}

// DeletePrompt removes an owned prompt. Deleting an id that is already gone
// reports ErrPromptNotFound, so a repeated delete of the same id fails
// cleanly instead of silently succeeding.
func (s *promptService) DeletePrompt(ctx context.Context, userID, promptID string) error {
	if _, err := s.getOwned(ctx, userID, promptID); err != nil {
		return err
	}
	if err := s.promptRepo.Delete(ctx, promptID); err != nil {
		return fmt.Errorf("failed to delete prompt '%s' for user '%s': %w", promptID, userID, err)
	}
	return nil
}

// getOwned fetches a prompt and enforces ownership. Absence and foreign
// ownership collapse into the same ErrPromptNotFound.
func (s *promptService) getOwned(ctx context.Context, userID, promptID string) (*models.Prompt, error) {
	if userID == "" || promptID == "" {
		return nil, ErrPromptNotFound
	}
	prompt, err := s.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to get prompt '%s': %w", promptID, err)
	}
	if prompt.UserID != userID {
		return nil, ErrPromptNotFound
	}
	return prompt, nil
}
