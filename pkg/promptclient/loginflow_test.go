package promptclient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"promptvault-backend-go/pkg/promptclient"
)

func TestLoginFlowHappyPath(t *testing.T) {
	flow := promptclient.NewLoginFlow()
	require.Equal(t, promptclient.LoginIdle, flow.State())

	require.NoError(t, flow.Begin())
	require.Equal(t, promptclient.LoginSubmitting, flow.State())

	require.NoError(t, flow.Succeed())
	require.Equal(t, promptclient.LoginSucceeded, flow.State())

	require.NoError(t, flow.Navigate())
	require.Equal(t, promptclient.LoginNavigated, flow.State())
}

func TestLoginFlowNavigationWaitsForSuccess(t *testing.T) {
	flow := promptclient.NewLoginFlow()

	require.ErrorIs(t, flow.Navigate(), promptclient.ErrInvalidTransition)

	require.NoError(t, flow.Begin())
	require.ErrorIs(t, flow.Navigate(), promptclient.ErrInvalidTransition)

	require.NoError(t, flow.Fail())
	require.ErrorIs(t, flow.Navigate(), promptclient.ErrInvalidTransition)
}

func TestLoginFlowFailedAttemptCanRetry(t *testing.T) {
	flow := promptclient.NewLoginFlow()

	require.NoError(t, flow.Begin())
	require.NoError(t, flow.Fail())
	require.Equal(t, promptclient.LoginFailed, flow.State())

	require.NoError(t, flow.Begin())
	require.NoError(t, flow.Succeed())
	require.NoError(t, flow.Navigate())
}

func TestLoginFlowRejectsConcurrentBegin(t *testing.T) {
	flow := promptclient.NewLoginFlow()

	require.NoError(t, flow.Begin())
	require.ErrorIs(t, flow.Begin(), promptclient.ErrInvalidTransition)
}

func TestLoginFlowResetReturnsToIdle(t *testing.T) {
	flow := promptclient.NewLoginFlow()

	require.NoError(t, flow.Begin())
	require.NoError(t, flow.Succeed())
	require.NoError(t, flow.Navigate())

	flow.Reset()
	require.Equal(t, promptclient.LoginIdle, flow.State())
	require.NoError(t, flow.Begin())
}
