package chat

import (
	apphttp "agriportal_backend/internal/http"
	"agriportal_backend/platform/ai/gemini"
	"agriportal_backend/platform/logger"
)

// Module wires the chatbot HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(model *gemini.Model, log *logger.Logger) (*Module, error) {
	assistant, err := NewAssistant(model, log.WithModule("chat"))
	if err != nil {
		return nil, err
	}
	return &Module{handler: NewHandler(assistant)}, nil
}

func (m *Module) Name() string {
	return "chat"
}

// RegisterRoutes mounts the chatbot at the legacy path the front-end calls
// and under the versioned API.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.POST("/api/chat", ctx.AIRateLimiter.RateLimit(), m.handler.Chat)
	ctx.V1.POST("/chat", ctx.AIRateLimiter.RateLimit(), m.handler.Chat)
}

var _ apphttp.Module = (*Module)(nil)
