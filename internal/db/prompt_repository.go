package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"promptvault-backend-go/internal/models"
)

const promptsCollection = "prompts"

// firestorePromptRepository implements the PromptRepository interface using Firestore.
type firestorePromptRepository struct {
	client *firestore.Client
}

// NewFirestorePromptRepository creates a new instance of firestorePromptRepository.
func NewFirestorePromptRepository(client *firestore.Client) PromptRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PromptRepository.")
	}
	return &firestorePromptRepository{client: client}
}

// Create adds a new prompt document to Firestore with an auto-generated ID.
// CreatedAt and UpdatedAt are assigned by the server via serverTimestamp tags,
// so the document is read back to return the authoritative row.
func (r *firestorePromptRepository) Create(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	if prompt.UserID == "" {
		return nil, errors.New("prompt UserID cannot be empty for Create operation")
	}
	docRef := r.client.Collection(promptsCollection).NewDoc()
	prompt.ID = docRef.ID

	if _, err := docRef.Create(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}
	return r.readBack(ctx, docRef)
}

// GetByID retrieves a prompt document from Firestore by its ID.
func (r *firestorePromptRepository) GetByID(ctx context.Context, promptID string) (*models.Prompt, error) {
	if promptID == "" {
		return nil, errors.New("promptID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(promptsCollection).Doc(promptID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("prompt with ID '%s' not found: %w", promptID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get prompt with ID '%s': %w", promptID, err)
	}

	var prompt models.Prompt
	if err := docSnap.DataTo(&prompt); err != nil {
		return nil, fmt.Errorf("failed to decode prompt data for ID '%s': %w", promptID, err)
	}
	prompt.ID = docSnap.Ref.ID

	return &prompt, nil
}

// ListByUserID retrieves all prompts owned by a user, most recently updated
// first. This is the canonical ordering every client-side collection mirrors.
func (r *firestorePromptRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Prompt, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for ListByUserID operation")
	}

	query := r.client.Collection(promptsCollection).
		Where("userId", "==", userID).
		OrderBy("updatedAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	prompts := make([]*models.Prompt, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate prompts for user '%s': %w", userID, err)
		}

		var prompt models.Prompt
		if err := doc.DataTo(&prompt); err != nil {
			log.Printf("Error decoding prompt data (ID: %s) for user '%s': %v. Skipping.", doc.Ref.ID, userID, err)
			continue
		}
		prompt.ID = doc.Ref.ID
		prompts = append(prompts, &prompt)
	}

	return prompts, nil
}

// Update overwrites an existing prompt document. The caller (service layer)
// is responsible for having fetched the row and checked ownership first.
// UpdatedAt is reassigned by the server; the row is read back so callers see it.
func (r *firestorePromptRepository) Update(ctx context.Context, prompt *models.Prompt) (*models.Prompt, error) {
	if prompt.ID == "" {
		return nil, errors.New("prompt ID cannot be empty for Update operation")
	}
	docRef := r.client.Collection(promptsCollection).Doc(prompt.ID)
	if _, err := docRef.Set(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to update prompt with ID '%s': %w", prompt.ID, err)
	}
	return r.readBack(ctx, docRef)
}

// Delete removes a prompt document from Firestore.
func (r *firestorePromptRepository) Delete(ctx context.Context, promptID string) error {
	if promptID == "" {
		return errors.New("promptID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(promptsCollection).Doc(promptID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("prompt with ID '%s' not found for deletion: %w", promptID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete prompt with ID '%s': %w", promptID, err)
	}
	return nil
}

// readBack fetches a document after a write so the returned row carries the
// server-assigned timestamps rather than the zero values the caller sent.
func (r *firestorePromptRepository) readBack(ctx context.Context, docRef *firestore.DocumentRef) (*models.Prompt, error) {
	docSnap, err := docRef.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read back prompt '%s' after write: %w", docRef.ID, err)
	}
	var prompt models.Prompt
	if err := docSnap.DataTo(&prompt); err != nil {
		return nil, fmt.Errorf("failed to decode prompt data for ID '%s': %w", docRef.ID, err)
	}
	prompt.ID = docSnap.Ref.ID
	return &prompt, nil
}
