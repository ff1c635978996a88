// Package rewrite talks to the external language model that rewrites prompt
// text. It is stateless: one request in, one response out, no retries.
package rewrite

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// rewriteInstruction frames the model as a prompt engineer and asks for the
// rewritten prompt only, with no surrounding commentary.
const rewriteInstruction = `You are an expert AI prompt engineer. Your task is to optimize the following AI prompt to make it more effective, clear, and likely to produce better results.

When optimizing:
1. Improve clarity and specificity
2. Add structure if missing (e.g., sections for role, task, context, constraints)
3. Include relevant examples if helpful
4. Ensure the prompt is well-formatted using Markdown
5. Make it more actionable and concrete
6. Remove ambiguity while preserving the original intent

Original prompt:
%s

Please provide the optimized version of this prompt. Return ONLY the optimized prompt without any explanation or meta-commentary.`

// TextRewriter transforms prompt text via an upstream model. An error means
// the upstream call failed; an empty result with a nil error means the
// upstream answered but produced no usable text, and callers decide what to
// do with that (the service falls back to the original input).
type TextRewriter interface {
	Rewrite(ctx context.Context, text string) (string, error)
}

// GeminiRewriter implements TextRewriter using Google's Gemini API.
type GeminiRewriter struct {
	client *genai.Client
	model  string
}

// NewGeminiRewriter creates a new Gemini-backed rewriter.
func NewGeminiRewriter(ctx context.Context, apiKey, model string) (*GeminiRewriter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiRewriter{client: client, model: model}, nil
}

// Rewrite sends the text to the model with the rewrite instruction and
// returns whatever text the model produced. No candidate text is not an
// error here; it surfaces as an empty result.
func (g *GeminiRewriter) Rewrite(ctx context.Context, text string) (string, error) {
	contents := genai.Text(fmt.Sprintf(rewriteInstruction, text))

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Gemini generate failed: %w", err)
	}
	if result == nil {
		return "", nil
	}
	return result.Text(), nil
}
