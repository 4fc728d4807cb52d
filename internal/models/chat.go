package models

// ChatRequest is the input of one chat turn.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID *int64 `json:"conversation_id,omitempty"`
}

// ChatResult is the outcome of one completed chat turn.
type ChatResult struct {
	ConversationID   int64    `json:"conversation_id"`
	UserMessage      *Message `json:"user_message"`
	AssistantMessage *Message `json:"assistant_message"`
}
