package chat

// ChatRequest is the body of POST /api/chat. SessionID is optional; a new
// conversation is started when it is absent.
type ChatRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	SessionID string `json:"sessionId"`
}

// ChatResponse carries the assistant's reply and the session to send the
// next message to.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}
