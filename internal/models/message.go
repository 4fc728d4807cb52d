package models

import "time"

// Role is the author of a message.
type Role string

// Supported roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// MaxMessageLength bounds chat input, in characters.
const MaxMessageLength = 32000

// Message represents a message row in the database. Messages are immutable.
type Message struct {
	ID             int64     `json:"id" db:"id"`                // Primary key
	ConversationID int64     `json:"-" db:"conversation_id"`    // Parent conversation
	Role           Role      `json:"role" db:"role"`            // user | assistant
	Content        string    `json:"content" db:"content"`      // Message text
	Timestamp      time.Time `json:"timestamp" db:"created_at"` // Creation timestamp
}

// SortOrder is the direction messages are read in.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// MessageQuery narrows a message listing.
type MessageQuery struct {
	Limit     int       // Zero means no limit
	Order     SortOrder // Defaults to OrderAsc
	ExcludeID int64     // Zero means exclude nothing
}

// Turn is one prior message as sent to the model.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
