package promptclient

import (
	"errors"
	"sync"
)

// LoginState is the phase of a sign-in attempt. Transitions only move
// forward: Idle -> Submitting -> Succeeded -> Navigated, or
// Submitting -> Failed -> (retry) Submitting.
type LoginState int

const (
	// LoginIdle means no attempt is in flight.
	LoginIdle LoginState = iota
	// LoginSubmitting means credentials were sent and the bridge call has
	// not yet completed.
	LoginSubmitting
	// LoginSucceeded means the session cookie is installed and navigation
	// into the protected area may proceed.
	LoginSucceeded
	// LoginFailed means the attempt was rejected; a new attempt may start.
	LoginFailed
	// LoginNavigated means the caller has moved into the protected area.
	LoginNavigated
)

func (s LoginState) String() string {
	switch s {
	case LoginIdle:
		return "idle"
	case LoginSubmitting:
		return "submitting"
	case LoginSucceeded:
		return "succeeded"
	case LoginFailed:
		return "failed"
	case LoginNavigated:
		return "navigated"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when a LoginFlow method is called in a
// state it is not valid for.
var ErrInvalidTransition = errors.New("invalid login flow transition")

// LoginFlow sequences a sign-in attempt so that navigation into the
// protected area can only happen after the session bridge has completed.
// Navigating earlier would land on the guard with no session artifact and
// bounce straight back to the login page.
type LoginFlow struct {
	mu    sync.Mutex
	state LoginState
}

// NewLoginFlow creates a LoginFlow in the idle state.
func NewLoginFlow() *LoginFlow {
	return &LoginFlow{state: LoginIdle}
}

// State returns the current phase.
func (f *LoginFlow) State() LoginState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Begin marks a new attempt as in flight. Valid from Idle or Failed; a
// second Begin while one attempt is still submitting is rejected.
func (f *LoginFlow) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != LoginIdle && f.state != LoginFailed {
		return ErrInvalidTransition
	}
	f.state = LoginSubmitting
	return nil
}

// Succeed records that the bridge completed and the cookie is installed.
func (f *LoginFlow) Succeed() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != LoginSubmitting {
		return ErrInvalidTransition
	}
	f.state = LoginSucceeded
	return nil
}

// Fail records a rejected attempt. The flow can Begin again afterwards.
func (f *LoginFlow) Fail() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != LoginSubmitting {
		return ErrInvalidTransition
	}
	f.state = LoginFailed
	return nil
}

// Navigate is the gate in front of the protected area: it only opens once
// the flow has succeeded.
func (f *LoginFlow) Navigate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != LoginSucceeded {
		return ErrInvalidTransition
	}
	f.state = LoginNavigated
	return nil
}

// Reset returns the flow to idle, e.g. after sign-out.
func (f *LoginFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = LoginIdle
}
