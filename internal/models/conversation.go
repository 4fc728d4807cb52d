package models

import "time"

// DefaultConversationTitle is the placeholder title of a new conversation.
const DefaultConversationTitle = "New Chat"

// MaxTitleLength bounds conversation titles, in characters.
const MaxTitleLength = 255

// Conversation represents a conversation row in the database
type Conversation struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	UserID    int64     `json:"-" db:"user_id"`             // Owner
	Title     string    `json:"title" db:"title"`           // Auto-derived or user-edited title
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Advanced on every new message
}

// ConversationSummary is a conversation with its message count, as listed to the owner.
type ConversationSummary struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	MessageCount int       `json:"message_count" db:"message_count"`
}
