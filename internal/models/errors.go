package models

import "github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"

// Domain errors shared by repositories, services and handlers.
var (
	ErrUsernameTaken        = apperrors.New(apperrors.Conflict, "Username already taken")
	ErrEmailTaken           = apperrors.New(apperrors.Conflict, "Email already registered")
	ErrInvalidCredentials   = apperrors.New(apperrors.Auth, "Incorrect username or password")
	ErrUnauthorized         = apperrors.New(apperrors.Auth, "Could not validate credentials")
	ErrInvalidGoogleToken   = apperrors.New(apperrors.Auth, "Invalid Google credential")
	ErrGoogleDisabled       = apperrors.New(apperrors.Auth, "Google sign-in is not configured")
	ErrConversationNotFound = apperrors.New(apperrors.NotFound, "Conversation not found")
	ErrEmptyMessage         = apperrors.New(apperrors.Validation, "Message must not be empty")
	ErrMessageTooLong       = apperrors.New(apperrors.Validation, "Message is too long")
	ErrInvalidTitle         = apperrors.New(apperrors.Validation, "Title must be between 1 and 255 characters")
	ErrInvalidRole          = apperrors.New(apperrors.Validation, "Role must be user or assistant")
	ErrInvalidWindow        = apperrors.New(apperrors.Validation, "History window size must be positive")
	ErrLLMUnavailable       = apperrors.New(apperrors.Upstream, "LLM unavailable")
)
