package models

import "time"

// Prompt represents a single prompt record owned by a user.
// UserID is immutable after creation; the service layer never lets a caller
// address a row whose UserID differs from the authenticated user's id.
// Tag order is preserved as inserted; it is meaningful for display only.
type Prompt struct {
	ID        string    `json:"id" firestore:"-"` // Document ID, auto-generated
	UserID    string    `json:"user_id" firestore:"userId"`
	Title     string    `json:"title" firestore:"title"`
	Content   string    `json:"content" firestore:"content"`
	Tags      []string  `json:"tags" firestore:"tags"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt,serverTimestamp"`
}
