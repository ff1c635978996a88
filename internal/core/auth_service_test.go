package core_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"promptvault-backend-go/internal/core"
	"promptvault-backend-go/internal/identity"
	"promptvault-backend-go/internal/models"
)

type fakeIdentityClient struct {
	signUpResult *identity.SignUpResult
	signUpErr    error
	signInResult *identity.SignInResult
	signInErr    error
	resetErr     error
	updateErr    error

	signUpCalls int
	resetEmails []string
	updateCalls int
}

func (f *fakeIdentityClient) SignUp(_ context.Context, _, _ string) (*identity.SignUpResult, error) {
	f.signUpCalls++
	return f.signUpResult, f.signUpErr
}

func (f *fakeIdentityClient) SignIn(_ context.Context, _, _ string) (*identity.SignInResult, error) {
	return f.signInResult, f.signInErr
}

func (f *fakeIdentityClient) SendPasswordReset(_ context.Context, email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return f.resetErr
}

func (f *fakeIdentityClient) UpdatePassword(_ context.Context, _, _ string) error {
	f.updateCalls++
	return f.updateErr
}

func newAuthService(t *testing.T, client *fakeIdentityClient) core.AuthService {
	t.Helper()
	svc, err := core.NewAuthService(client)
	require.NoError(t, err)
	return svc
}

func TestSignUpRejectsShortPasswordBeforeProviderCall(t *testing.T) {
	client := &fakeIdentityClient{}
	svc := newAuthService(t, client)

	_, err := svc.SignUp(context.Background(), "a@b.com", "short")
	require.ErrorIs(t, err, core.ErrPasswordTooShort)
	require.Zero(t, client.signUpCalls)
}

func TestSignUpReturnsTokenPair(t *testing.T) {
	client := &fakeIdentityClient{
		signUpResult: &identity.SignUpResult{
			Pair:   &models.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			UserID: "uid-1",
			Email:  "a@b.com",
		},
	}
	svc := newAuthService(t, client)

	result, err := svc.SignUp(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)
	require.False(t, result.Pending)
	require.NotNil(t, result.Pair)
	require.Equal(t, "uid-1", result.UserID)
}

func TestSignUpPendingConfirmationCarriesNoPair(t *testing.T) {
	client := &fakeIdentityClient{
		signUpResult: &identity.SignUpResult{UserID: "uid-1", Email: "a@b.com", Pending: true},
	}
	svc := newAuthService(t, client)

	result, err := svc.SignUp(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)
	require.True(t, result.Pending)
	require.Nil(t, result.Pair)
}

func TestSignInMapsProviderRejection(t *testing.T) {
	client := &fakeIdentityClient{
		signInErr: fmt.Errorf("%w: INVALID_PASSWORD", identity.ErrRejected),
	}
	svc := newAuthService(t, client)

	_, err := svc.SignIn(context.Background(), "a@b.com", "wrongpass")
	require.ErrorIs(t, err, core.ErrAuthRejected)
}

func TestSignInTransportFailureIsNotARejection(t *testing.T) {
	client := &fakeIdentityClient{signInErr: errors.New("connection refused")}
	svc := newAuthService(t, client)

	_, err := svc.SignIn(context.Background(), "a@b.com", "secret123")
	require.Error(t, err)
	require.NotErrorIs(t, err, core.ErrAuthRejected)
}

func TestRequestPasswordResetForwardsEmail(t *testing.T) {
	client := &fakeIdentityClient{}
	svc := newAuthService(t, client)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "a@b.com"))
	require.Equal(t, []string{"a@b.com"}, client.resetEmails)
}

func TestUpdatePasswordValidatesLocally(t *testing.T) {
	client := &fakeIdentityClient{}
	svc := newAuthService(t, client)

	err := svc.UpdatePassword(context.Background(), "", "secret123")
	require.ErrorIs(t, err, core.ErrAuthRejected)

	err = svc.UpdatePassword(context.Background(), "token", "short")
	require.ErrorIs(t, err, core.ErrPasswordTooShort)

	require.Zero(t, client.updateCalls)
}

func TestUpdatePasswordSucceeds(t *testing.T) {
	client := &fakeIdentityClient{}
	svc := newAuthService(t, client)

	require.NoError(t, svc.UpdatePassword(context.Background(), "token", "secret123"))
	require.Equal(t, 1, client.updateCalls)
}
