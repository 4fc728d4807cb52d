package services

//go:generate mockgen -source=chat.go -destination=chat_mock.go -package=services

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/metrics"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
	"github.com/segmentio/kafka-go"
)

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// HistoryBuilder builds the bounded history of a conversation.
type HistoryBuilder interface {
	Build(ctx context.Context, conversationID, excludeID int64, size int) ([]models.Turn, error)
}

// Responder produces the assistant reply to a message.
type Responder interface {
	Reply(ctx context.Context, message string, history []models.Turn) (string, error)
}

// KafkaWriter defines an interface for writing messages to Kafka.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// chatState names the last step a chat turn reached.
type chatState string

const (
	stateResolving            chatState = "resolving"
	stateUserMessagePersisted chatState = "user_message_persisted"
	stateTitleUpdated         chatState = "title_updated"
	stateHistoryFetched       chatState = "history_fetched"
	stateAssistantInvoked     chatState = "assistant_invoked"
	stateAssistantPersisted   chatState = "assistant_persisted"
	stateDone                 chatState = "done"
)

// ChatService runs chat turns: it stores the user's message, asks the model
// for a reply with recent history and stores the reply.
type ChatService struct {
	tx          Transactor
	convs       ConversationRepository
	msgs        MessageRepository
	history     HistoryBuilder
	llm         Responder
	cache       ConversationCache // nil disables cache invalidation
	kafkaWriter KafkaWriter       // nil disables events
	window      int
}

// NewChatService creates a new ChatService.
func NewChatService(
	tx Transactor,
	convs ConversationRepository,
	msgs MessageRepository,
	history HistoryBuilder,
	llm Responder,
	cache ConversationCache,
	kafkaWriter KafkaWriter,
	window int,
) *ChatService {
	return &ChatService{
		tx:          tx,
		convs:       convs,
		msgs:        msgs,
		history:     history,
		llm:         llm,
		cache:       cache,
		kafkaWriter: kafkaWriter,
		window:      window,
	}
}

// Send runs one chat turn for user. Without a conversation id a new
// conversation is started. The user message is kept even when the model
// fails; no reply is stored in that case.
func (s *ChatService) Send(ctx context.Context, user *models.User, req models.ChatRequest) (*models.ChatResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		metrics.ChatTurnsTotal.WithLabelValues("rejected").Inc()
		return nil, models.ErrEmptyMessage
	}
	if utf8.RuneCountInString(req.Message) > models.MaxMessageLength {
		metrics.ChatTurnsTotal.WithLabelValues("rejected").Inc()
		return nil, models.ErrMessageTooLong
	}

	state := stateResolving
	var (
		conv    *models.Conversation
		userMsg *models.Message
		created bool
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if req.ConversationID == nil {
			conv, err = s.convs.Create(ctx, user.ID, models.DefaultConversationTitle)
			created = true
		} else {
			conv, err = s.convs.Get(ctx, user.ID, *req.ConversationID)
		}
		if err != nil {
			return err
		}

		if userMsg, err = s.msgs.Append(ctx, conv.ID, models.RoleUser, req.Message); err != nil {
			return err
		}
		state = stateUserMessagePersisted

		count, err := s.msgs.Count(ctx, conv.ID)
		if err != nil {
			return err
		}
		if count == 1 {
			title := DeriveTitle(req.Message)
			if err := s.convs.UpdateTitle(ctx, user.ID, conv.ID, title); err != nil {
				return err
			}
			conv.Title = title
			state = stateTitleUpdated
		}

		return s.convs.Touch(ctx, conv.ID)
	})
	if err != nil {
		return nil, s.fail(state, user.ID, req.ConversationID, err)
	}
	defer invalidateListing(ctx, s.cache, user.ID)

	history, err := s.history.Build(ctx, conv.ID, userMsg.ID, s.window)
	if err != nil {
		return nil, s.fail(state, user.ID, &conv.ID, err)
	}
	state = stateHistoryFetched

	reply, err := s.llm.Reply(ctx, req.Message, history)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.Upstream {
			err = apperrors.Wrap(apperrors.Upstream, models.ErrLLMUnavailable.Message, err)
		}
		metrics.ChatTurnsTotal.WithLabelValues("llm_failed").Inc()
		logger.Log.Errorw("chat turn failed", "state", state, "user_id", user.ID, "conversation_id", conv.ID, "error", err)
		return nil, err
	}
	state = stateAssistantInvoked

	var assistantMsg *models.Message
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if assistantMsg, err = s.msgs.Append(ctx, conv.ID, models.RoleAssistant, reply); err != nil {
			return err
		}
		return s.convs.Touch(ctx, conv.ID)
	})
	if err != nil {
		return nil, s.fail(state, user.ID, &conv.ID, err)
	}
	state = stateAssistantPersisted

	s.publishTurn(ctx, models.ChatTurnEvent{
		EventID:            uuid.NewString(),
		Timestamp:          time.Now().Unix(),
		UserID:             user.ID,
		ConversationID:     conv.ID,
		UserMessageID:      userMsg.ID,
		AssistantMessageID: assistantMsg.ID,
		NewConversation:    created,
	})

	state = stateDone
	metrics.ChatTurnsTotal.WithLabelValues("completed").Inc()
	logger.Log.Infow("chat turn completed",
		"state", state,
		"user_id", user.ID,
		"conversation_id", conv.ID,
		"history", len(history),
	)

	return &models.ChatResult{
		ConversationID:   conv.ID,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

func (s *ChatService) fail(state chatState, userID int64, conversationID *int64, err error) error {
	metrics.ChatTurnsTotal.WithLabelValues("failed").Inc()
	logger.Log.Errorw("chat turn failed", "state", state, "user_id", userID, "conversation_id", conversationID, "error", err)
	return err
}

// publishTurn publishes a completed turn to Kafka.
func (s *ChatService) publishTurn(ctx context.Context, event models.ChatTurnEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal chat turn event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
		logger.Log.Errorw("Failed to publish chat turn to Kafka", "event_id", event.EventID, "error", err)
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues("ok").Inc()
	logger.Log.Infow("Chat turn published to Kafka", "event_id", event.EventID, "conversation_id", event.ConversationID)
}
