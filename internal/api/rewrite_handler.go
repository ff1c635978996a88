package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promptvault-backend-go/internal/core"
	"promptvault-backend-go/internal/models"
)

// RewriteHandler handles the prompt rewrite endpoint.
type RewriteHandler struct {
	rewriteService core.RewriteService
	logger         *zap.Logger
}

// NewRewriteHandler creates a new RewriteHandler.
func NewRewriteHandler(rs core.RewriteService, logger *zap.Logger) *RewriteHandler {
	return &RewriteHandler{rewriteService: rs, logger: logger}
}

// OptimizePrompt handles POST /optimize. Empty input is rejected here with a
// 400 before any upstream call; an upstream failure is a 500 with no partial
// state anywhere. The caller's prompt is untouched either way.
func (h *RewriteHandler) OptimizePrompt(c *gin.Context) {
	var req models.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid prompt"})
		return
	}

	optimized, err := h.rewriteService.Rewrite(c.Request.Context(), req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyPrompt):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid prompt"})
		case errors.Is(err, core.ErrUpstreamRewrite):
			h.logger.Error("Prompt rewrite upstream failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to optimize prompt"})
		default:
			h.logger.Error("Prompt rewrite failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to optimize prompt"})
		}
		return
	}

	c.JSON(http.StatusOK, RewriteResponse{OptimizedPrompt: optimized})
}
