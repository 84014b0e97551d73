package gemini

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/adk/model"
)

// Model adapts the Gemini client to the ADK model.LLM interface so the chat
// agent can run on it through the ADK runner.
type Model struct {
	client *Client
}

// NewModel wraps a Client for use as an ADK model.
func NewModel(client *Client) *Model {
	return &Model{client: client}
}

func (m *Model) Name() string {
	return m.client.model
}

// GenerateContent forwards ADK requests to the Gemini API.
func (m *Model) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *Model) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	resp, err := m.client.genai.Models.GenerateContent(ctx, m.client.model, req.Contents, req.Config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini api error: empty candidates")
	}

	return &model.LLMResponse{
		Content: resp.Candidates[0].Content,
	}, nil
}
