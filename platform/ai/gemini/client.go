// Package gemini provides the Gemini-backed text and vision clients used by
// the AI-facing modules, plus an adapter to the ADK model.LLM interface.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Client wraps the genai SDK for single-shot completions. The supplier
// discovery flow treats the reply as untrusted free text; no response
// schema is enforced beyond prompt instructions.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a Gemini client for the given API key and model name.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{genai: c, model: model}, nil
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.model
}

// Complete sends a single text prompt and returns the model's text reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}

// CompleteWithImage sends a prompt plus inline image bytes and returns the
// model's text reply. Used by disease detection.
func (c *Client) CompleteWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}
