package promptclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"

	"promptvault-backend-go/internal/models"
)

var (
	// ErrMutationInFlight is returned when a second mutation targets a row
	// whose previous mutation has not yet completed.
	ErrMutationInFlight = errors.New("a mutation for this prompt is already in flight")
	// ErrCancelled is returned when the confirmation hook declined a delete.
	ErrCancelled = errors.New("operation cancelled")
	// ErrUnauthorized is returned when the server rejects the session.
	ErrUnauthorized = errors.New("not signed in")
	// ErrNotFound is returned when the server no longer has the row.
	ErrNotFound = errors.New("prompt not found")
)

// ConfirmFunc is asked to approve a destructive operation before any request
// is sent. Returning false cancels the operation with ErrCancelled.
type ConfirmFunc func(prompt models.Prompt) bool

// Client talks to the PromptVault backend and keeps a local Collection
// reconciled with it. Creates are applied to the collection from the row the
// server returns; updates and deletes only touch the collection after the
// server confirms, so a failed call leaves the local copy exactly as it was.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// Prompts is the local working copy the mutation methods reconcile.
	Prompts *Collection
	// Login sequences sign-in so navigation waits for the bridge.
	Login *LoginFlow
	// ConfirmDelete, when set, gates DeletePrompt.
	ConfirmDelete ConfirmFunc

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewClient creates a Client for the backend at baseURL. The underlying HTTP
// client carries a cookie jar, so the session cookie installed by the bridge
// rides along on every subsequent request.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
		Prompts:    NewCollection(),
		Login:      NewLoginFlow(),
		inFlight:   make(map[string]struct{}),
	}, nil
}

// APIError carries the status and message of a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// CredentialResult is the outcome of sign-up or sign-in.
type CredentialResult struct {
	UserID  string            `json:"user_id"`
	Email   string            `json:"email"`
	Session *models.TokenPair `json:"session,omitempty"`
	Pending bool              `json:"pending,omitempty"`
}

type bridgeResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type rewriteResponse struct {
	OptimizedPrompt string `json:"optimizedPrompt"`
}

// SignUp registers a new account. When the returned result carries a token
// pair, the caller should follow with BridgeSession; when Pending is true the
// provider wants email confirmation first and there is nothing to bridge.
func (c *Client) SignUp(ctx context.Context, email, password string) (*CredentialResult, error) {
	var result CredentialResult
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/signup", models.CredentialsRequest{
		Email:    email,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SignIn exchanges credentials for a token pair. It does not install a
// session; call BridgeSession with the returned pair to do that.
func (c *Client) SignIn(ctx context.Context, email, password string) (*CredentialResult, error) {
	if err := c.Login.Begin(); err != nil {
		return nil, err
	}
	var result CredentialResult
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/signin", models.CredentialsRequest{
		Email:    email,
		Password: password,
	}, &result)
	if err != nil {
		c.Login.Fail()
		return nil, err
	}
	return &result, nil
}

// BridgeSession installs the token pair as a server-side session; the
// response sets the session cookie in the client's jar. Only after this
// returns does the login flow allow navigation into the protected area.
func (c *Client) BridgeSession(ctx context.Context, pair models.TokenPair) (*models.User, error) {
	var result bridgeResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/session", models.SetSessionRequest{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, &result)
	if err != nil {
		if c.Login.State() == LoginSubmitting {
			c.Login.Fail()
		}
		return nil, err
	}
	if c.Login.State() == LoginSubmitting {
		c.Login.Succeed()
	}
	return result.User, nil
}

// SignOut tears the session down server-side and resets local state. The
// collection is cleared; its contents belong to the signed-in user.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/v1/auth/session", nil, nil); err != nil {
		return err
	}
	c.Prompts.Replace(nil)
	c.Login.Reset()
	return nil
}

// RequestPasswordReset asks the server to send a reset email. The server
// answers the same way whether or not the address has an account.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/reset-password", models.PasswordResetRequest{Email: email}, nil)
}

// UpdatePassword sets a new password for the signed-in user.
func (c *Client) UpdatePassword(ctx context.Context, newPassword string) error {
	return c.doJSON(ctx, http.MethodPut, "/api/v1/auth/password", models.UpdatePasswordRequest{Password: newPassword}, nil)
}

// CurrentUser fetches the signed-in user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LoadPrompts fetches the user's prompts and replaces the local collection
// with the server's ordering.
func (c *Client) LoadPrompts(ctx context.Context) ([]models.Prompt, error) {
	var prompts []models.Prompt
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/prompts", nil, &prompts); err != nil {
		return nil, err
	}
	c.Prompts.Replace(prompts)
	return c.Prompts.All(), nil
}

// CreatePrompt stores a new prompt and inserts the server-returned row at the
// front of the collection. On failure nothing is inserted.
func (c *Client) CreatePrompt(ctx context.Context, req models.CreatePromptRequest) (*models.Prompt, error) {
	var created models.Prompt
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/prompts", req, &created); err != nil {
		return nil, err
	}
	c.Prompts.InsertFront(created)
	return &created, nil
}

// UpdatePrompt patches a prompt and, on success, replaces the local row with
// the server's version. The local row is untouched until the server answers;
// if the row was removed from the collection while the call was in flight,
// the response is discarded rather than resurrecting a deleted row.
func (c *Client) UpdatePrompt(ctx context.Context, promptID string, req models.UpdatePromptRequest) (*models.Prompt, error) {
	if err := c.beginMutation(promptID); err != nil {
		return nil, err
	}
	defer c.endMutation(promptID)

	var updated models.Prompt
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/prompts/"+promptID, req, &updated); err != nil {
		return nil, err
	}
	// ReplaceByID refuses rows it no longer holds, which is what discards a
	// result that raced with a delete instead of resurrecting the row.
	c.Prompts.ReplaceByID(updated)
	return &updated, nil
}

// DeletePrompt removes a prompt after the confirmation hook (when set)
// approves it. The local row is only filtered out once the server confirms;
// a row the server no longer has is removed locally as well, since both
// sides agree it is gone.
func (c *Client) DeletePrompt(ctx context.Context, promptID string) error {
	if row, ok := c.Prompts.Get(promptID); ok && c.ConfirmDelete != nil {
		if !c.ConfirmDelete(row) {
			return ErrCancelled
		}
	}

	if err := c.beginMutation(promptID); err != nil {
		return err
	}
	defer c.endMutation(promptID)

	err := c.doJSON(ctx, http.MethodDelete, "/api/v1/prompts/"+promptID, nil, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.Prompts.RemoveByID(promptID)
			return nil
		}
		return err
	}
	c.Prompts.RemoveByID(promptID)
	return nil
}

// OptimizePrompt runs the text through the rewrite endpoint and returns the
// improved version. The collection is never touched; applying the result to
// a stored prompt is the caller's explicit next step.
func (c *Client) OptimizePrompt(ctx context.Context, text string) (string, error) {
	var result rewriteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/optimize", models.RewriteRequest{Prompt: text}, &result); err != nil {
		return "", err
	}
	return result.OptimizedPrompt, nil
}

func (c *Client) beginMutation(promptID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[promptID]; busy {
		return ErrMutationInFlight
	}
	c.inFlight[promptID] = struct{}{}
	return nil
}

func (c *Client) endMutation(promptID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, promptID)
}

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil). Non-2xx responses become an
// *APIError, with 401 and 404 additionally wrapped in their sentinels so
// callers can errors.Is on them.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
		default:
			return apiErr
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	var apiBody struct {
		Error string `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return "unreadable error body"
	}
	if json.Unmarshal(raw, &apiBody) == nil && apiBody.Error != "" {
		return apiBody.Error
	}
	return strings.TrimSpace(string(raw))
}
