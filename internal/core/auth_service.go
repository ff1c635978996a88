package core

import (
	"context"
	"errors"
	"fmt"

	"promptvault-backend-go/internal/identity"
)

const minPasswordLength = 6

// authService implements the AuthService interface over the identity client.
type authService struct {
	idClient identity.Client
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(idClient identity.Client) (AuthService, error) {
	if idClient == nil {
		return nil, errors.New("NewAuthService: identity client is required")
	}
	return &authService{idClient: idClient}, nil
}

// SignUp creates a password account. The result either carries a token pair
// (session usable immediately, caller must bridge before navigating) or is
// marked Pending when the provider withholds a session until email
// confirmation. Callers must branch on Pending and never bridge a nil pair.
func (s *authService) SignUp(ctx context.Context, email, password string) (*identity.SignUpResult, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	result, err := s.idClient.SignUp(ctx, email, password)
	if err != nil {
		return nil, mapIdentityError(err)
	}
	return result, nil
}

// SignIn exchanges email+password for a token pair.
func (s *authService) SignIn(ctx context.Context, email, password string) (*identity.SignInResult, error) {
	result, err := s.idClient.SignIn(ctx, email, password)
	if err != nil {
		return nil, mapIdentityError(err)
	}
	return result, nil
}

// RequestPasswordReset asks the provider to send a reset email. Success only
// means "an email may have been sent"; the identity client already folds
// unknown-address responses into success so account existence never leaks.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.idClient.SendPasswordReset(ctx, email); err != nil {
		return mapIdentityError(err)
	}
	return nil
}

// UpdatePassword sets a new password for the account behind the access
// token. Reached only through a guarded route, so a valid session artifact
// is already established; the provider still revalidates the token.
func (s *authService) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	if accessToken == "" {
		return ErrAuthRejected
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if err := s.idClient.UpdatePassword(ctx, accessToken, newPassword); err != nil {
		return mapIdentityError(err)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// mapIdentityError folds identity-layer refusals into the core taxonomy.
func mapIdentityError(err error) error {
	if errors.Is(err, identity.ErrRejected) {
		return fmt.Errorf("%w: %v", ErrAuthRejected, err)
	}
	return err
}
