// Package identity wraps the identity provider's password-credential surface:
// sign-up, sign-in, password-reset dispatch and password update. It is the
// only place the provider's REST API is spoken; everything above it works in
// terms of token pairs.
package identity

import (
	"context"
	"errors"
	"fmt"

	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"promptvault-backend-go/internal/models"
)

// ErrRejected is returned when the provider refuses the supplied credentials
// (unknown account, wrong password, disabled user, expired token).
var ErrRejected = errors.New("identity provider rejected credentials")

// SignUpResult is the outcome of a sign-up attempt. Pair is nil when the
// provider created the account but issued no session (e.g. email confirmation
// required); callers must branch on Pending and must not bridge a nil pair.
type SignUpResult struct {
	Pair    *models.TokenPair
	UserID  string
	Email   string
	Pending bool
}

// SignInResult is the outcome of a successful password sign-in.
type SignInResult struct {
	Pair   *models.TokenPair
	UserID string
	Email  string
}

// Client is the credential exchange surface against the identity provider.
type Client interface {
	SignUp(ctx context.Context, email, password string) (*SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	SendPasswordReset(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
}

// gcipClient implements Client against the Google Identity Toolkit REST API,
// authenticated with the project's web API key (the same key a browser
// client would use; no service-account privileges are involved here).
type gcipClient struct {
	svc *identitytoolkit.Service
}

// NewClient creates an identity toolkit backed Client.
func NewClient(ctx context.Context, apiKey string) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("identity: web API key is required")
	}
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey), option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("identity: failed to create identitytoolkit service: %w", err)
	}
	return &gcipClient{svc: svc}, nil
}

// SignUp creates a new password account. When the provider issues tokens
// immediately the result carries the pair; otherwise Pending is set.
func (c *gcipClient) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}
	resp, err := c.svc.Relyingparty.SignupNewUser(req).Context(ctx).Do()
	if err != nil {
		return nil, mapProviderError(err)
	}

	result := &SignUpResult{
		UserID: resp.LocalId,
		Email:  resp.Email,
	}
	if resp.IdToken == "" || resp.RefreshToken == "" {
		result.Pending = true
		return result, nil
	}
	result.Pair = &models.TokenPair{
		AccessToken:  resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}
	return result, nil
}

// SignIn exchanges email+password for a token pair.
func (c *gcipClient) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	resp, err := c.svc.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		return nil, mapProviderError(err)
	}
	if resp.IdToken == "" || resp.RefreshToken == "" {
		return nil, fmt.Errorf("%w: no session issued for sign-in", ErrRejected)
	}
	return &SignInResult{
		Pair: &models.TokenPair{
			AccessToken:  resp.IdToken,
			RefreshToken: resp.RefreshToken,
		},
		UserID: resp.LocalId,
		Email:  resp.Email,
	}, nil
}

// SendPasswordReset asks the provider to dispatch a password-reset email.
// An unknown address reports success: the caller must not be able to learn
// whether an account exists from this call.
func (c *gcipClient) SendPasswordReset(ctx context.Context, email string) error {
	req := &identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}
	_, err := c.svc.Relyingparty.GetOobConfirmationCode(req).Context(ctx).Do()
	if err != nil {
		if isProviderCode(err, "EMAIL_NOT_FOUND") {
			return nil
		}
		return mapProviderError(err)
	}
	return nil
}

// UpdatePassword sets a new password for the account identified by the
// access token. The token must still be valid; the route guard has already
// established that when this is reached through the API.
func (c *gcipClient) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	req := &identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest{
		IdToken:           accessToken,
		Password:          newPassword,
		ReturnSecureToken: true,
	}
	_, err := c.svc.Relyingparty.SetAccountInfo(req).Context(ctx).Do()
	if err != nil {
		return mapProviderError(err)
	}
	return nil
}

// mapProviderError converts identity toolkit API errors into the package's
// error taxonomy. 4xx responses mean the provider understood and refused the
// credentials; anything else surfaces as a transport-level failure.
func mapProviderError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code >= 400 && apiErr.Code < 500 {
			return fmt.Errorf("%w: %s", ErrRejected, apiErr.Message)
		}
	}
	return fmt.Errorf("identity provider call failed: %w", err)
}

func isProviderCode(err error, code string) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message == code
	}
	return false
}
