// Package chat provides the farming assistant chatbot behind POST /api/chat.
package chat

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/google/uuid"

	"agriportal_backend/platform/ai/gemini"
	"agriportal_backend/platform/logger"
)

const (
	appName = "farming_assistant"

	// Returned verbatim with a 200 when the model is down; the front-end
	// renders whatever text it gets.
	fallbackReply = "Chat assistant is temporarily unavailable. Please try again later."

	systemInstruction = "You are a friendly farming assistant for Indian farmers. " +
		"Answer questions about crops, soil, irrigation, fertilizers, pests, weather and government schemes. " +
		"Keep answers short, practical and in simple language. " +
		"When a question is not about farming, politely steer back to farming topics."
)

// Assistant runs the conversational agent. Sessions live in memory for the
// process lifetime, so a sessionId keeps its history across requests.
type Assistant struct {
	runner   *runner.Runner
	sessions session.Service
	log      *logger.Logger

	mu    sync.Mutex
	known map[string]bool
}

// NewAssistant builds the chatbot agent on top of the Gemini model adapter.
func NewAssistant(model *gemini.Model, log *logger.Logger) (*Assistant, error) {
	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        "FarmingAssistant",
		Model:       model,
		Description: "Conversational assistant answering farming questions for Indian farmers.",
		Instruction: systemInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat agent: %w", err)
	}

	sessions := session.InMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          adkAgent,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat runner: %w", err)
	}

	return &Assistant{
		runner:   r,
		sessions: sessions,
		log:      log,
		known:    make(map[string]bool),
	}, nil
}

// Ask sends one user message and collects the full reply. A failure is
// absorbed into the canned fallback reply; the session ID is returned
// either way so the conversation can continue.
func (a *Assistant) Ask(ctx context.Context, sessionID, prompt string) (string, string) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	if err := a.ensureSession(ctx, sessionID); err != nil {
		a.log.UpstreamError("chat session", err)
		return fallbackReply, sessionID
	}

	userMessage := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}

	var output string
	runConfig := agent.RunConfig{StreamingMode: agent.StreamingModeNone}
	for event, err := range a.runner.Run(ctx, sessionID, sessionID, userMessage, runConfig) {
		if err != nil {
			a.log.UpstreamError("chat completion", err)
			return fallbackReply, sessionID
		}
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				output += part.Text
			}
		}
	}

	if output == "" {
		return fallbackReply, sessionID
	}
	return output, sessionID
}

func (a *Assistant) ensureSession(ctx context.Context, sessionID string) error {
	a.mu.Lock()
	exists := a.known[sessionID]
	a.mu.Unlock()
	if exists {
		return nil
	}

	_, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    sessionID,
		SessionID: sessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	a.mu.Lock()
	a.known[sessionID] = true
	a.mu.Unlock()
	return nil
}
