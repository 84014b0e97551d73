package chat

import (
	"net/http"

	"agriportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the chatbot endpoint.
type Handler struct {
	assistant *Assistant
}

func NewHandler(assistant *Assistant) *Handler {
	return &Handler{assistant: assistant}
}

// Chat handles POST /api/chat. Model failures still produce a 200 with a
// canned reply; only a malformed request is an error.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "prompt is required", nil)
		return
	}

	reply, sessionID := h.assistant.Ask(c.Request.Context(), req.SessionID, req.Prompt)
	httpkit.OK(c, ChatResponse{Response: reply, SessionID: sessionID})
}
