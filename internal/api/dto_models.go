package api

import "promptvault-backend-go/internal/models"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string `json:"message"`
}

// SetSessionResponse is returned by the session bridge on success.
type SetSessionResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

// CredentialResponse is returned by sign-up and sign-in. Session is nil and
// Pending true when the provider created the account but issued no tokens
// (email confirmation required); callers must not bridge in that state.
type CredentialResponse struct {
	UserID  string            `json:"user_id"`
	Email   string            `json:"email"`
	Session *models.TokenPair `json:"session,omitempty"`
	Pending bool              `json:"pending,omitempty"`
}

// RewriteResponse is returned by the prompt rewrite endpoint.
type RewriteResponse struct {
	OptimizedPrompt string `json:"optimizedPrompt"`
}
