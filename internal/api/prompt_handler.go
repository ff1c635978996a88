package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promptvault-backend-go/internal/core"
	"promptvault-backend-go/internal/models"
)

// PromptHandler handles API endpoints related to prompts. All of them sit
// behind the session guard; the user id in the gin context scopes every
// service call.
type PromptHandler struct {
	promptService core.PromptService
	logger        *zap.Logger
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(ps core.PromptService, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{promptService: ps, logger: logger}
}

// mapPromptErrorToStatus maps errors from core.PromptService to HTTP status codes.
func (h *PromptHandler) mapPromptErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrPromptNotFound.Error()})
	default:
		h.logger.Error("Prompt operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// CreatePrompt handles POST /prompts.
// Returns the stored row with its server-assigned id and timestamps, so the
// client can insert it into its local collection without guessing.
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	created, err := h.promptService.CreatePrompt(c.Request.Context(), userID, req)
	if err != nil {
		h.mapPromptErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListPrompts handles GET /prompts. Rows come back ordered by updatedAt
// descending, already filtered to the authenticated user.
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	prompts, err := h.promptService.ListPrompts(c.Request.Context(), userID)
	if err != nil {
		h.mapPromptErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

// GetPrompt handles GET /prompts/:promptId.
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	promptID := c.Param("promptId")
	if promptID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Prompt ID is required"})
		return
	}

	prompt, err := h.promptService.GetPromptByID(c.Request.Context(), userID, promptID)
	if err != nil {
		h.mapPromptErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// UpdatePrompt handles PUT /prompts/:promptId.
func (h *PromptHandler) UpdatePrompt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	promptID := c.Param("promptId")
	if promptID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Prompt ID is required"})
		return
	}

	var req models.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	updated, err := h.promptService.UpdatePrompt(c.Request.Context(), userID, promptID, req)
	if err != nil {
		h.mapPromptErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePrompt handles DELETE /prompts/:promptId. Deleting an id that no
// longer exists answers 404, which is what makes repeated deletes safe for
// the client to reconcile.
func (h *PromptHandler) DeletePrompt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	promptID := c.Param("promptId")
	if promptID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Prompt ID is required"})
		return
	}

	if err := h.promptService.DeletePrompt(c.Request.Context(), userID, promptID); err != nil {
		h.mapPromptErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
