package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"promptvault-backend-go/internal/core"
)

// ErrorResponse is a local definition for sending standardized error messages.
// It mirrors the one in internal/api/dto_models.go to avoid import cycles.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Gin context keys populated by the guard for downstream handlers.
const (
	ContextUserIDKey    = "userID"
	ContextUserEmailKey = "userEmail"
	ContextSessionIDKey = "sessionID"
)

// SessionGuard gates protected routes on the session artifact.
//
// It reads only the session cookie on the incoming request; credentials are
// never accepted out-of-band. The decision is made fresh on every request,
// nothing is cached, so a destroyed session is rejected on the very next
// navigation. The guard only gates: it resolves the user identity into the
// gin context and leaves all data fetching to the handler behind it.
type SessionGuard struct {
	sessions   core.SessionService
	cookieName string
	loginPath  string
}

// NewSessionGuard creates a new SessionGuard instance.
func NewSessionGuard(sessions core.SessionService, cookieName, loginPath string) *SessionGuard {
	if sessions == nil {
		panic("SessionGuard requires a non-nil SessionService")
	}
	if cookieName == "" {
		panic("SessionGuard requires a cookie name")
	}
	if loginPath == "" {
		loginPath = "/login"
	}
	return &SessionGuard{sessions: sessions, cookieName: cookieName, loginPath: loginPath}
}

// Require is the guard handler. Requests without a live session are failed
// closed: page navigations are redirected to the login path, API calls get a
// 401 JSON body. No protected content or partial data is ever rendered.
func (g *SessionGuard) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(g.cookieName)
		if err != nil || sessionID == "" {
			g.reject(c)
			return
		}

		sess, err := g.sessions.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			g.reject(c)
			return
		}

		c.Set(ContextUserIDKey, sess.UserID)
		c.Set(ContextUserEmailKey, sess.Email)
		c.Set(ContextSessionIDKey, sess.ID)
		c.Next()
	}
}

func (g *SessionGuard) reject(c *gin.Context) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, g.loginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
}

// wantsHTML reports whether the request is a page navigation rather than an
// API call, going by the Accept header.
func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
