package models

// ChatTurnEvent describes one completed chat turn, published for downstream consumers.
type ChatTurnEvent struct {
	EventID            string `json:"event_id"`             // EventID is a unique identifier for the event.
	Timestamp          int64  `json:"timestamp"`            // Timestamp is the Unix time (in seconds) the turn completed.
	UserID             int64  `json:"user_id"`              // UserID is the owner of the conversation.
	ConversationID     int64  `json:"conversation_id"`      // ConversationID is the conversation the turn belongs to.
	UserMessageID      int64  `json:"user_message_id"`      // UserMessageID is the persisted user message.
	AssistantMessageID int64  `json:"assistant_message_id"` // AssistantMessageID is the persisted assistant reply.
	NewConversation    bool   `json:"new_conversation"`     // NewConversation is true when the turn created the conversation.
}
