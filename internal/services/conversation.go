package services

//go:generate mockgen -source=conversation.go -destination=conversation_mock.go -package=services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/metrics"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

// ConversationRepository defines conversation storage. Every owner-scoped
// method reports a foreign or missing conversation as not found.
type ConversationRepository interface {
	Create(ctx context.Context, userID int64, title string) (*models.Conversation, error)
	Get(ctx context.Context, userID, id int64) (*models.Conversation, error)
	List(ctx context.Context, userID int64) ([]models.ConversationSummary, error)
	Delete(ctx context.Context, userID, id int64) error
	UpdateTitle(ctx context.Context, userID, id int64, title string) error
	Touch(ctx context.Context, id int64) error
}

// MessageRepository defines message storage.
type MessageRepository interface {
	Append(ctx context.Context, conversationID int64, role models.Role, content string) (*models.Message, error)
	List(ctx context.Context, conversationID int64, q models.MessageQuery) ([]models.Message, error)
	Count(ctx context.Context, conversationID int64) (int, error)
	DeleteAllForOwner(ctx context.Context, userID int64) (int64, error)
}

// ConversationCache caches conversation listings per owner. Every
// invalidation advances the owner's version; Get reports the version current
// at read time and Set stores a listing only while that version still holds,
// so a listing read before a write never outlives it.
type ConversationCache interface {
	Get(ctx context.Context, userID int64) ([]models.ConversationSummary, int64, error)
	Set(ctx context.Context, userID, version int64, convs []models.ConversationSummary) error
	Invalidate(ctx context.Context, userID int64) error
}

// ConversationService manages the conversations of a user.
type ConversationService struct {
	convs ConversationRepository
	msgs  MessageRepository
	cache ConversationCache // nil disables caching
}

// NewConversationService creates a new ConversationService.
func NewConversationService(convs ConversationRepository, msgs MessageRepository, cache ConversationCache) *ConversationService {
	return &ConversationService{
		convs: convs,
		msgs:  msgs,
		cache: cache,
	}
}

// List returns the user's conversations, most recently active first.
func (s *ConversationService) List(ctx context.Context, userID int64) ([]models.ConversationSummary, error) {
	var version int64
	if s.cache != nil {
		convs, v, err := s.cache.Get(ctx, userID)
		if err == nil {
			metrics.ConversationCacheTotal.WithLabelValues("hit").Inc()
			return convs, nil
		}
		metrics.ConversationCacheTotal.WithLabelValues("miss").Inc()
		version = v
	}

	convs, err := s.convs.List(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list conversations", "user_id", userID, "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, version, convs); err != nil {
			logger.Log.Warnw("failed to cache conversations", "user_id", userID, "error", err)
		}
	}
	return convs, nil
}

// Create starts an empty conversation. A nil title means the default title.
func (s *ConversationService) Create(ctx context.Context, userID int64, title *string) (*models.ConversationSummary, error) {
	name := models.DefaultConversationTitle
	if title != nil {
		var err error
		if name, err = normalizeTitle(*title); err != nil {
			return nil, err
		}
	}

	conv, err := s.convs.Create(ctx, userID, name)
	if err != nil {
		logger.Log.Errorw("failed to create conversation", "user_id", userID, "error", err)
		return nil, err
	}
	invalidateListing(ctx, s.cache, userID)

	return &models.ConversationSummary{
		ID:        conv.ID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}, nil
}

// Messages returns the conversation's messages in chronological order.
func (s *ConversationService) Messages(ctx context.Context, userID, conversationID int64) ([]models.Message, error) {
	if _, err := s.convs.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	msgs, err := s.msgs.List(ctx, conversationID, models.MessageQuery{Order: models.OrderAsc})
	if err != nil {
		logger.Log.Errorw("failed to list messages", "conversation_id", conversationID, "error", err)
		return nil, err
	}
	return msgs, nil
}

// Delete removes a conversation with all of its messages.
func (s *ConversationService) Delete(ctx context.Context, userID, conversationID int64) error {
	if err := s.convs.Delete(ctx, userID, conversationID); err != nil {
		return err
	}
	invalidateListing(ctx, s.cache, userID)
	logger.Log.Infow("conversation deleted", "user_id", userID, "conversation_id", conversationID)
	return nil
}

// Rename sets a new title and returns it as stored.
func (s *ConversationService) Rename(ctx context.Context, userID, conversationID int64, title string) (string, error) {
	name, err := normalizeTitle(title)
	if err != nil {
		return "", err
	}
	if err := s.convs.UpdateTitle(ctx, userID, conversationID, name); err != nil {
		return "", err
	}
	invalidateListing(ctx, s.cache, userID)
	return name, nil
}

// PurgeHistory deletes every message of the user and keeps the conversations.
func (s *ConversationService) PurgeHistory(ctx context.Context, userID int64) (int64, error) {
	deleted, err := s.msgs.DeleteAllForOwner(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to clear history", "user_id", userID, "error", err)
		return 0, err
	}
	invalidateListing(ctx, s.cache, userID)
	logger.Log.Infow("history cleared", "user_id", userID, "deleted", deleted)
	return deleted, nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n == 0 || n > models.MaxTitleLength {
		return "", models.ErrInvalidTitle
	}
	return title, nil
}

// invalidateListing drops the owner's cached listing. Failures are only logged.
func invalidateListing(ctx context.Context, cache ConversationCache, userID int64) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(context.WithoutCancel(ctx), userID); err != nil {
		logger.Log.Warnw("failed to invalidate conversation cache", "user_id", userID, "error", err)
	}
}
