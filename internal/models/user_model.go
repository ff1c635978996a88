package models

import "time"

// User represents a user in the system.
type User struct {
	ID        string    `json:"id" firestore:"-"` // Firebase Auth UID, will be the document ID
	Email     string    `json:"email" firestore:"email"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
