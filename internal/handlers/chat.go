package handlers

//go:generate mockgen -source=chat.go -destination=chat_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

// Chatter runs one chat turn for a user.
type Chatter interface {
	Send(ctx context.Context, user *models.User, req models.ChatRequest) (*models.ChatResult, error)
}

// ChatRequest represents the body of a chat turn
// swagger:model ChatRequest
type ChatRequest struct {
	// User message, at most 32000 characters
	// required: true
	// default: What is the capital of France?
	Message string `json:"message"`

	// Existing conversation; a new one is started when omitted
	ConversationID *int64 `json:"conversation_id,omitempty"`
}

// NewChatHandler returns an HTTP handler for one chat turn.
// @Summary Send a chat message
// @Description Stores the message, asks the model with a bounded window of prior messages and stores the reply
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chatRequest body handlers.ChatRequest true "Chat message"
// @Success 200 {object} models.ChatResult "Both stored messages"
// @Failure 400 {object} handlers.ErrorResponse "Empty or too long message"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} handlers.ErrorResponse "Conversation not found"
// @Failure 502 {object} handlers.ErrorResponse "LLM unavailable"
// @Router /chat [post]
func NewChatHandler(svc Chatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}

		result, err := svc.Send(r.Context(), user, models.ChatRequest{
			Message:        req.Message,
			ConversationID: req.ConversationID,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
