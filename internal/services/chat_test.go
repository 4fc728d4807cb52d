package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
	"github.com/sbilibin2017/gw-chat-assistant/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatMocks struct {
	tx      *services.MockTransactor
	convs   *services.MockConversationRepository
	msgs    *services.MockMessageRepository
	history *services.MockHistoryBuilder
	llm     *services.MockResponder
	cache   *services.MockConversationCache
	kafka   *services.MockKafkaWriter
}

func newChatService(t *testing.T, withKafka bool) (*services.ChatService, *chatMocks) {
	ctrl := gomock.NewController(t)
	m := &chatMocks{
		tx:      services.NewMockTransactor(ctrl),
		convs:   services.NewMockConversationRepository(ctrl),
		msgs:    services.NewMockMessageRepository(ctrl),
		history: services.NewMockHistoryBuilder(ctrl),
		llm:     services.NewMockResponder(ctrl),
		cache:   services.NewMockConversationCache(ctrl),
		kafka:   services.NewMockKafkaWriter(ctrl),
	}
	m.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()

	var writer services.KafkaWriter
	if withKafka {
		writer = m.kafka
	}
	svc := services.NewChatService(m.tx, m.convs, m.msgs, m.history, m.llm, m.cache, writer, 10)
	return svc, m
}

var chatUser = &models.User{ID: 1, Username: "alice", IsActive: true}

func TestChatService_Send_NewConversation(t *testing.T) {
	svc, m := newChatService(t, true)

	userMsg := &models.Message{ID: 100, ConversationID: 10, Role: models.RoleUser, Content: "hello"}
	assistantMsg := &models.Message{ID: 101, ConversationID: 10, Role: models.RoleAssistant, Content: "hi there"}

	gomock.InOrder(
		m.convs.EXPECT().Create(gomock.Any(), int64(1), models.DefaultConversationTitle).
			Return(&models.Conversation{ID: 10, UserID: 1, Title: models.DefaultConversationTitle}, nil),
		m.msgs.EXPECT().Append(gomock.Any(), int64(10), models.RoleUser, "hello").Return(userMsg, nil),
		m.msgs.EXPECT().Count(gomock.Any(), int64(10)).Return(1, nil),
		m.convs.EXPECT().UpdateTitle(gomock.Any(), int64(1), int64(10), "hello").Return(nil),
		m.convs.EXPECT().Touch(gomock.Any(), int64(10)).Return(nil),
		m.history.EXPECT().Build(gomock.Any(), int64(10), int64(100), 10).Return([]models.Turn{}, nil),
		m.llm.EXPECT().Reply(gomock.Any(), "hello", []models.Turn{}).Return("hi there", nil),
		m.msgs.EXPECT().Append(gomock.Any(), int64(10), models.RoleAssistant, "hi there").Return(assistantMsg, nil),
		m.convs.EXPECT().Touch(gomock.Any(), int64(10)).Return(nil),
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
				require.Len(t, msgs, 1)
				var event models.ChatTurnEvent
				require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
				assert.Equal(t, string(msgs[0].Key), event.EventID)
				assert.Equal(t, int64(1), event.UserID)
				assert.Equal(t, int64(10), event.ConversationID)
				assert.Equal(t, int64(100), event.UserMessageID)
				assert.Equal(t, int64(101), event.AssistantMessageID)
				assert.True(t, event.NewConversation)
				return nil
			}),
		m.cache.EXPECT().Invalidate(gomock.Any(), int64(1)).Return(nil),
	)

	result, err := svc.Send(context.Background(), chatUser, models.ChatRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, &models.ChatResult{ConversationID: 10, UserMessage: userMsg, AssistantMessage: assistantMsg}, result)
}

func TestChatService_Send_ExistingConversation(t *testing.T) {
	svc, m := newChatService(t, false)
	convID := int64(10)
	message := "and what about Spain"

	history := []models.Turn{
		{Role: models.RoleUser, Content: "capital of France?"},
		{Role: models.RoleAssistant, Content: "Paris"},
	}

	m.convs.EXPECT().Get(gomock.Any(), int64(1), convID).Return(&models.Conversation{ID: convID, UserID: 1, Title: "capital of France?"}, nil)
	m.msgs.EXPECT().Append(gomock.Any(), convID, models.RoleUser, message).Return(&models.Message{ID: 102, Role: models.RoleUser, Content: message}, nil)
	m.msgs.EXPECT().Count(gomock.Any(), convID).Return(3, nil)
	m.convs.EXPECT().Touch(gomock.Any(), convID).Return(nil).Times(2)
	m.cache.EXPECT().Invalidate(gomock.Any(), int64(1)).Return(nil)
	m.history.EXPECT().Build(gomock.Any(), convID, int64(102), 10).Return(history, nil)
	m.llm.EXPECT().Reply(gomock.Any(), message, history).Return("Madrid", nil)
	m.msgs.EXPECT().Append(gomock.Any(), convID, models.RoleAssistant, "Madrid").Return(&models.Message{ID: 103, Role: models.RoleAssistant, Content: "Madrid"}, nil)

	result, err := svc.Send(context.Background(), chatUser, models.ChatRequest{Message: message, ConversationID: &convID})

	require.NoError(t, err)
	assert.Equal(t, convID, result.ConversationID)
	assert.Equal(t, "Madrid", result.AssistantMessage.Content)
}

func TestChatService_Send_ForeignConversation(t *testing.T) {
	svc, m := newChatService(t, true)
	convID := int64(99)

	m.convs.EXPECT().Get(gomock.Any(), int64(1), convID).Return(nil, models.ErrConversationNotFound)

	result, err := svc.Send(context.Background(), chatUser, models.ChatRequest{Message: "hi", ConversationID: &convID})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrConversationNotFound)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestChatService_Send_RejectsInvalidMessage(t *testing.T) {
	svc, _ := newChatService(t, true)

	tests := []struct {
		name    string
		message string
		wantErr error
	}{
		{"empty", "", models.ErrEmptyMessage},
		{"whitespace", " \n\t ", models.ErrEmptyMessage},
		{"too long", strings.Repeat("a", models.MaxMessageLength+1), models.ErrMessageTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(context.Background(), chatUser, models.ChatRequest{Message: tt.message})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
		})
	}
}

func TestChatService_Send_LLMFailureKeepsUserMessage(t *testing.T) {
	tests := []struct {
		name   string
		llmErr error
	}{
		{"upstream error", apperrors.Wrap(apperrors.Upstream, "LLM unavailable", errors.New("timeout"))},
		{"plain error", errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newChatService(t, true)

			m.convs.EXPECT().Create(gomock.Any(), int64(1), gomock.Any()).Return(&models.Conversation{ID: 10, UserID: 1}, nil)
			m.msgs.EXPECT().Append(gomock.Any(), int64(10), models.RoleUser, "hello").Return(&models.Message{ID: 100}, nil)
			m.msgs.EXPECT().Count(gomock.Any(), int64(10)).Return(1, nil)
			m.convs.EXPECT().UpdateTitle(gomock.Any(), int64(1), int64(10), "hello").Return(nil)
			m.convs.EXPECT().Touch(gomock.Any(), int64(10)).Return(nil)
			m.cache.EXPECT().Invalidate(gomock.Any(), int64(1)).Return(nil)
			m.history.EXPECT().Build(gomock.Any(), int64(10), int64(100), 10).Return(nil, nil)
			m.llm.EXPECT().Reply(gomock.Any(), "hello", gomock.Any()).Return("", tt.llmErr)
			// no assistant append and no event

			result, err := svc.Send(context.Background(), chatUser, models.ChatRequest{Message: "hello"})

			assert.Nil(t, result)
			assert.Equal(t, apperrors.Upstream, apperrors.KindOf(err))
			assert.ErrorIs(t, err, models.ErrLLMUnavailable)
		})
	}
}

func TestChatService_Send_StorageFailures(t *testing.T) {
	t.Run("user message append fails", func(t *testing.T) {
		svc, m := newChatService(t, true)

		m.convs.EXPECT().Create(gomock.Any(), int64(1), gomock.Any()).Return(&models.Conversation{ID: 10}, nil)
		m.msgs.EXPECT().Append(gomock.Any(), int64(10), models.RoleUser, "hello").Return(nil, errors.New("db error"))

		_, err := svc.Send(context.Background(), chatUser, models.ChatRequest{Message: "hello"})
		assert.EqualError(t, err, "db error")
	})

	t.Run("assistant append fails", func(t *testing.T) {
		svc, m := newChatService(t, true)

		m.convs.EXPECT().Create(gomock.Any(), int64(1), gomock.Any()).Return(&models.Conversation{ID: 10}, nil)
		m.msgs.EXPECT().Append(gomock.Any(), int64(10), models.RoleUser, "hello").Return(&models.Message{ID: 100}, nil)
		m.msgs.EXPECT().Count(gomock.Any(), int64(10)).Return(2, nil)
		m.convs.EXPECT().Touch(gomock.Any(), int64(10)).Return(nil)
		m.cache.EXPECT().Invalidate(gomock.Any(), int64(1)).Return(nil)
		m.history.EXPECT().Build(gomock.Any(), int64(10), int64(100), 10).Return(nil, nil)
		m.llm.EXPECT().Reply(gomock.Any(), "hello", gomock.Any()).Return("hi", nil)
		m.msgs.EXPECT().Append(gomock.Any(), int64(10), models.RoleAssistant, "hi").Return(nil, errors.New("db error"))

		_, err := svc.Send(context.Background(), chatUser, models.ChatRequest{Message: "hello"})
		assert.EqualError(t, err, "db error")
	})
}

func TestChatService_Send_KafkaFailureIsIgnored(t *testing.T) {
	svc, m := newChatService(t, true)

	m.convs.EXPECT().Create(gomock.Any(), int64(1), gomock.Any()).Return(&models.Conversation{ID: 10}, nil)
	m.msgs.EXPECT().Append(gomock.Any(), int64(10), models.RoleUser, "hello").Return(&models.Message{ID: 100}, nil)
	m.msgs.EXPECT().Count(gomock.Any(), int64(10)).Return(1, nil)
	m.convs.EXPECT().UpdateTitle(gomock.Any(), int64(1), int64(10), "hello").Return(nil)
	m.convs.EXPECT().Touch(gomock.Any(), int64(10)).Return(nil).Times(2)
	m.cache.EXPECT().Invalidate(gomock.Any(), int64(1)).Return(errors.New("redis down"))
	m.history.EXPECT().Build(gomock.Any(), int64(10), int64(100), 10).Return(nil, nil)
	m.llm.EXPECT().Reply(gomock.Any(), "hello", gomock.Any()).Return("hi", nil)
	m.msgs.EXPECT().Append(gomock.Any(), int64(10), models.RoleAssistant, "hi").Return(&models.Message{ID: 101}, nil)
	m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	result, err := svc.Send(context.Background(), chatUser, models.ChatRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, int64(101), result.AssistantMessage.ID)
}
