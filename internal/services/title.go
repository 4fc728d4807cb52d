package services

import (
	"strings"

	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

const titleTokens = 6

// DeriveTitle names a conversation after its first message: the first six
// whitespace-separated words, with "..." appended when words were dropped.
func DeriveTitle(message string) string {
	words := strings.Fields(message)
	if len(words) == 0 {
		return models.DefaultConversationTitle
	}

	title := strings.Join(words[:min(len(words), titleTokens)], " ")
	if len(words) > titleTokens {
		title += "..."
	}

	if runes := []rune(title); len(runes) > models.MaxTitleLength {
		title = string(runes[:models.MaxTitleLength-3]) + "..."
	}
	return title
}
