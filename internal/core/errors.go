package core

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP status
// codes; anything not listed here surfaces as a generic 500.
var (
	// ErrMissingCredentials is returned when a bridge request arrives with
	// either token empty. Rejected locally, before any provider call.
	ErrMissingCredentials = errors.New("access_token and refresh_token are both required")

	// ErrAuthRejected is returned when the identity provider refuses a
	// credential pair or a password credential.
	ErrAuthRejected = errors.New("authentication rejected by identity provider")

	// ErrPromptNotFound is returned when a prompt does not exist or is not
	// owned by the requesting user. The two cases are deliberately
	// indistinguishable so the API cannot be used as an existence oracle.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrUserNotFound is returned when a user profile is absent.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyPrompt is returned when rewrite input is empty or whitespace.
	ErrEmptyPrompt = errors.New("prompt text must not be empty")

	// ErrUpstreamRewrite is returned when the rewrite upstream call fails.
	ErrUpstreamRewrite = errors.New("prompt rewrite service failed")

	// ErrPasswordTooShort is returned for passwords under the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)
