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

// SessionHandler handles the session bridge endpoints: installing a
// credential pair as the server-side session artifact, and destroying it.
type SessionHandler struct {
	sessionService core.SessionService
	cookieName     string
	logger         *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(ss core.SessionService, cookieName string, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessionService: ss, cookieName: cookieName, logger: logger}
}

// SetSession handles POST /api/v1/auth/session, the session bridge.
//
// The contract: 400 when either token is missing (no provider call was
// made), 401 when the provider rejects the pair (nothing installed), 200
// with the resolved user when the artifact is fully installed. The cookie is
// written before the response body, so by the time the client observes
// success the next request will carry the session.
func (h *SessionHandler) SetSession(c *gin.Context) {
	var req models.SetSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	pair := models.TokenPair{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	}
	sess, user, err := h.sessionService.Bridge(c.Request.Context(), pair)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing tokens"})
		case errors.Is(err, core.ErrAuthRejected):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired credentials"})
		default:
			h.logger.Error("Session bridge failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	// Overwrites any prior session cookie: last bridge wins.
	h.writeCookie(c, sess.ID, int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds()))
	c.JSON(http.StatusOK, SetSessionResponse{Success: true, User: user})
}

// ClearSession handles DELETE /api/v1/auth/session, sign-out.
//
// Destroys the server-side record, revokes the provider's refresh tokens and
// expires the cookie, so neither side of the dual session state survives.
// Destroying an absent session succeeds: sign-out is idempotent.
func (h *SessionHandler) ClearSession(c *gin.Context) {
	sessionID, err := c.Cookie(h.cookieName)
	if err == nil && sessionID != "" {
		if destroyErr := h.sessionService.Destroy(c.Request.Context(), sessionID); destroyErr != nil {
			h.logger.Error("Session destroy failed", zap.Error(destroyErr))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign out"})
			return
		}
	}

	h.writeCookie(c, "", -1)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Signed out"})
}

func (h *SessionHandler) writeCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Request.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// currentUserID pulls the guard-resolved user id out of the gin context.
// Shared by every guarded handler in this package.
func currentUserID(c *gin.Context) (string, bool) {
	rawUserID, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	userID, ok := rawUserID.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
