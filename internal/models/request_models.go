package models

// CreatePromptRequest represents the request body for creating a new prompt.
type CreatePromptRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags,omitempty"`
}

// UpdatePromptRequest represents the request body for updating an existing prompt.
// Pointers are used to distinguish between empty values and fields not provided for update.
type UpdatePromptRequest struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"` // Pointer so tags can be replaced with an empty list
}

// CredentialsRequest represents the request body for sign-up and sign-in.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SetSessionRequest represents the request body for the session bridge endpoint.
// Both tokens are required; validation happens before any provider call.
type SetSessionRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest represents the request body for requesting a reset email.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// UpdatePasswordRequest represents the request body for setting a new password.
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// RewriteRequest represents the request body for the prompt rewrite endpoint.
type RewriteRequest struct {
	Prompt string `json:"prompt"`
}
