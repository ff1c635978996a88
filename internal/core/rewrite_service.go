package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"promptvault-backend-go/internal/rewrite"
)

// rewriteService implements the RewriteService interface.
//
// One attempt per invocation, no retry or backoff. An upstream failure is an
// error; an upstream response that carries no usable text falls back to the
// original input unchanged, so a malformed payload never reaches the caller
// as a parse failure.
type rewriteService struct {
	rewriter rewrite.TextRewriter
}

// NewRewriteService creates a new RewriteService instance.
func NewRewriteService(rewriter rewrite.TextRewriter) (RewriteService, error) {
	if rewriter == nil {
		return nil, errors.New("NewRewriteService: TextRewriter is required")
	}
	return &rewriteService{rewriter: rewriter}, nil
}

// Rewrite sends text to the rewriting model and returns the transformed text.
func (s *rewriteService) Rewrite(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPrompt
	}

	rewritten, err := s.rewriter.Rewrite(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamRewrite, err)
	}
	if strings.TrimSpace(rewritten) == "" {
		// Degrade gracefully: hand back the original rather than an empty result.
		return text, nil
	}
	return rewritten, nil
}
