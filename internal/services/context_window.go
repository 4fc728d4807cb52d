package services

import (
	"context"

	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

// MessageLister reads messages of a conversation.
type MessageLister interface {
	List(ctx context.Context, conversationID int64, q models.MessageQuery) ([]models.Message, error)
}

// ContextWindow builds the bounded history sent to the model with each turn.
type ContextWindow struct {
	msgs MessageLister
}

func NewContextWindow(msgs MessageLister) *ContextWindow {
	return &ContextWindow{msgs: msgs}
}

// Build returns up to size of the most recent messages of the conversation,
// oldest first, leaving out excludeID.
func (w *ContextWindow) Build(ctx context.Context, conversationID, excludeID int64, size int) ([]models.Turn, error) {
	if size <= 0 {
		return nil, models.ErrInvalidWindow
	}

	recent, err := w.msgs.List(ctx, conversationID, models.MessageQuery{
		Limit:     size,
		Order:     models.OrderDesc,
		ExcludeID: excludeID,
	})
	if err != nil {
		logger.Log.Errorw("failed to load history", "conversation_id", conversationID, "error", err)
		return nil, err
	}

	turns := make([]models.Turn, len(recent))
	for i, m := range recent {
		turns[len(recent)-1-i] = models.Turn{Role: m.Role, Content: m.Content}
	}
	return turns, nil
}
