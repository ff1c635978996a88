package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promptvault-backend-go/internal/config"
	"promptvault-backend-go/internal/core"
	"promptvault-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (Logging, Recovery, CORS) are applied to the
// `router` instance before this function is called, typically in main.go.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	authService core.AuthService,
	sessionService core.SessionService,
	userService core.UserService,
	promptService core.PromptService,
	rewriteService core.RewriteService,
) {
	// The guard is the only reader of the session artifact; the session
	// handler (the bridge) is its only writer.
	guard := middleware.NewSessionGuard(sessionService, appConfig.SessionCookieName, appConfig.LoginPath)

	authHandler := NewAuthHandler(authService, sessionService, logger)
	sessionHandler := NewSessionHandler(sessionService, appConfig.SessionCookieName, logger)
	userHandler := NewUserHandler(userService, logger)
	promptHandler := NewPromptHandler(promptService, logger)
	rewriteHandler := NewRewriteHandler(rewriteService, logger)

	apiV1 := router.Group("/api/v1")
	{
		// --- Credential exchange and session bridge ---
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.SignUp)
			authGroup.POST("/signin", authHandler.SignIn)
			authGroup.POST("/reset-password", authHandler.RequestPasswordReset)

			// The bridge: installs a token pair as the session cookie.
			authGroup.POST("/session", sessionHandler.SetSession)
			authGroup.DELETE("/session", sessionHandler.ClearSession)

			// Password update is itself a protected operation.
			authGroup.PUT("/password", guard.Require(), authHandler.UpdatePassword)
		}

		// --- User profile ---
		apiV1.GET("/users/me", guard.Require(), userHandler.GetCurrentUserProfile)

		// --- Prompt endpoints ---
		promptsGroup := apiV1.Group("/prompts", guard.Require())
		{
			promptsGroup.POST("", promptHandler.CreatePrompt)
			promptsGroup.GET("", promptHandler.ListPrompts)
			promptsGroup.GET("/:promptId", promptHandler.GetPrompt)
			promptsGroup.PUT("/:promptId", promptHandler.UpdatePrompt)
			promptsGroup.DELETE("/:promptId", promptHandler.DeletePrompt)
		}

		// --- Prompt rewrite ---
		apiV1.POST("/optimize", guard.Require(), rewriteHandler.OptimizePrompt)
	}

	// --- General Health Check Endpoint ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "PromptVault backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
