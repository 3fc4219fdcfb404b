package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrMissingModelKey means neither the server nor the caller supplied a
// model API key. This is a server configuration problem, not a user error.
var ErrMissingModelKey = errors.New("no model API key configured")

// Completer sends a prompt to a completion endpoint and returns the raw
// model text. One call, no streaming, no retry.
type Completer interface {
	Complete(ctx context.Context, prompt, apiKey string) (string, error)
}

// GeminiClient completes prompts against a configured Gemini model. When the
// caller brings their own key a short-lived client is built for that request;
// otherwise the server-held key is used.
type GeminiClient struct {
	model     string
	serverKey string
}

// NewGeminiClient creates a completion client for the given model identifier.
func NewGeminiClient(model, serverKey string) *GeminiClient {
	return &GeminiClient{model: model, serverKey: serverKey}
}

// Complete sends the prompt and returns the model's raw text with markdown
// fences stripped. Transport and auth failures are surfaced to the caller
// unshaped.
func (g *GeminiClient) Complete(ctx context.Context, prompt, apiKey string) (string, error) {
	key := apiKey
	if key == "" {
		key = g.serverKey
	}
	if key == "" {
		return "", ErrMissingModelKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: key})
	if err != nil {
		return "", fmt.Errorf("create model client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}

	return stripFences(result.Text()), nil
}

// stripFences removes markdown code fences some models wrap around JSON
// output despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
