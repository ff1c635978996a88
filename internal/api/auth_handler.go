package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promptvault-backend-go/internal/core"
	"promptvault-backend-go/internal/middleware"
	"promptvault-backend-go/internal/models"
)

// AuthHandler handles the credential exchange endpoints: sign-up, sign-in,
// password reset dispatch and password update. None of these touch the
// session artifact; a client that receives a token pair here must call the
// session bridge before navigating to a protected route.
type AuthHandler struct {
	authService    core.AuthService
	sessionService core.SessionService
	logger         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as core.AuthService, ss core.SessionService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: as, sessionService: ss, logger: logger}
}

// mapAuthErrorToStatus maps errors from core.AuthService to HTTP status codes.
func (h *AuthHandler) mapAuthErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrPasswordTooShort.Error()})
	case errors.Is(err, core.ErrAuthRejected):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	default:
		h.logger.Error("Auth operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// SignUp handles POST /api/v1/auth/signup.
// The response either carries the issued token pair, or is marked pending
// when the provider requires email confirmation before issuing a session.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.mapAuthErrorToStatus(c, err)
		return
	}

	c.JSON(http.StatusCreated, CredentialResponse{
		UserID:  result.UserID,
		Email:   result.Email,
		Session: result.Pair,
		Pending: result.Pending,
	})
}

// SignIn handles POST /api/v1/auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.mapAuthErrorToStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, CredentialResponse{
		UserID:  result.UserID,
		Email:   result.Email,
		Session: result.Pair,
	})
}

// RequestPasswordReset handles POST /api/v1/auth/reset-password.
// Always answers the same way for known and unknown addresses.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.mapAuthErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "If the address exists, a reset email has been sent."})
}

// UpdatePassword handles PUT /api/v1/auth/password. Guarded: the session
// middleware has already established a live session; the provider call uses
// that session's access token and revalidates it.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	rawSessionID, exists := c.Get(middleware.ContextSessionIDKey)
	sessionID, ok := rawSessionID.(string)
	if !exists || !ok || sessionID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	sess, err := h.sessionService.Resolve(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.authService.UpdatePassword(c.Request.Context(), sess.AccessToken, req.Password); err != nil {
		h.mapAuthErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Password updated"})
}
