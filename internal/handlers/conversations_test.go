package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-chat-assistant/internal/middlewares"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = &models.User{ID: 42, Username: "alice", Email: "alice@example.com", IsActive: true}

// conversationRouter mounts the conversation handlers the way the server does,
// with the authenticated user injected in place of the auth middleware.
func conversationRouter(svc Conversationer, user *models.User) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if user != nil {
				req = req.WithContext(middlewares.WithUser(req.Context(), user))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/conversations", NewListConversationsHandler(svc))
	r.Post("/conversations", NewCreateConversationHandler(svc))
	r.Get("/conversations/{conversationID}/messages", NewConversationMessagesHandler(svc))
	r.Delete("/conversations/{conversationID}", NewDeleteConversationHandler(svc))
	r.Patch("/conversations/{conversationID}/title", NewRenameConversationHandler(svc))
	r.Delete("/messages", NewPurgeHistoryHandler(svc))
	return r
}

func TestConversationHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockConversationer(ctrl)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	title := "Trip"

	tests := []struct {
		name         string
		method       string
		target       string
		body         string
		mockSetup    func()
		expectedCode int
		expectedBody string
	}{
		{
			name:   "list",
			method: http.MethodGet,
			target: "/conversations",
			mockSetup: func() {
				mockSvc.EXPECT().List(gomock.Any(), int64(42)).Return([]models.ConversationSummary{
					{ID: 2, Title: "Newer", CreatedAt: now, UpdatedAt: now, MessageCount: 2},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":2,"title":"Newer","created_at":"2024-05-01T12:00:00Z","updated_at":"2024-05-01T12:00:00Z","message_count":2}]`,
		},
		{
			name:   "list empty",
			method: http.MethodGet,
			target: "/conversations",
			mockSetup: func() {
				mockSvc.EXPECT().List(gomock.Any(), int64(42)).Return([]models.ConversationSummary{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:   "create without body",
			method: http.MethodPost,
			target: "/conversations",
			mockSetup: func() {
				mockSvc.EXPECT().Create(gomock.Any(), int64(42), (*string)(nil)).
					Return(&models.ConversationSummary{ID: 3, Title: "New Chat", CreatedAt: now, UpdatedAt: now}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":3,"title":"New Chat","created_at":"2024-05-01T12:00:00Z","updated_at":"2024-05-01T12:00:00Z","message_count":0}`,
		},
		{
			name:   "create with title",
			method: http.MethodPost,
			target: "/conversations",
			body:   `{"title":"Trip"}`,
			mockSetup: func() {
				mockSvc.EXPECT().Create(gomock.Any(), int64(42), &title).
					Return(&models.ConversationSummary{ID: 4, Title: "Trip", CreatedAt: now, UpdatedAt: now}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":4,"title":"Trip","created_at":"2024-05-01T12:00:00Z","updated_at":"2024-05-01T12:00:00Z","message_count":0}`,
		},
		{
			name:   "messages",
			method: http.MethodGet,
			target: "/conversations/5/messages",
			mockSetup: func() {
				mockSvc.EXPECT().Messages(gomock.Any(), int64(42), int64(5)).Return([]models.Message{
					{ID: 1, ConversationID: 5, Role: models.RoleUser, Content: "hello", Timestamp: now},
					{ID: 2, ConversationID: 5, Role: models.RoleAssistant, Content: "hi there", Timestamp: now},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":1,"role":"user","content":"hello","timestamp":"2024-05-01T12:00:00Z"},{"id":2,"role":"assistant","content":"hi there","timestamp":"2024-05-01T12:00:00Z"}]`,
		},
		{
			name:   "messages of foreign conversation",
			method: http.MethodGet,
			target: "/conversations/6/messages",
			mockSetup: func() {
				mockSvc.EXPECT().Messages(gomock.Any(), int64(42), int64(6)).Return(nil, models.ErrConversationNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Conversation not found"}`,
		},
		{
			name:         "invalid id",
			method:       http.MethodGet,
			target:       "/conversations/abc/messages",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"invalid conversation id"}`,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			target: "/conversations/5",
			mockSetup: func() {
				mockSvc.EXPECT().Delete(gomock.Any(), int64(42), int64(5)).Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Conversation deleted"}`,
		},
		{
			name:   "delete missing",
			method: http.MethodDelete,
			target: "/conversations/9",
			mockSetup: func() {
				mockSvc.EXPECT().Delete(gomock.Any(), int64(42), int64(9)).Return(models.ErrConversationNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Conversation not found"}`,
		},
		{
			name:   "rename with body",
			method: http.MethodPatch,
			target: "/conversations/5/title",
			body:   `{"title":"  Trip  "}`,
			mockSetup: func() {
				mockSvc.EXPECT().Rename(gomock.Any(), int64(42), int64(5), "  Trip  ").Return("Trip", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Title updated","title":"Trip"}`,
		},
		{
			name:   "rename with query",
			method: http.MethodPatch,
			target: "/conversations/5/title?title=Trip",
			mockSetup: func() {
				mockSvc.EXPECT().Rename(gomock.Any(), int64(42), int64(5), "Trip").Return("Trip", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Title updated","title":"Trip"}`,
		},
		{
			name:   "rename with blank title",
			method: http.MethodPatch,
			target: "/conversations/5/title",
			body:   `{"title":"   "}`,
			mockSetup: func() {
				mockSvc.EXPECT().Rename(gomock.Any(), int64(42), int64(5), "   ").Return("", models.ErrInvalidTitle)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Title must be between 1 and 255 characters"}`,
		},
		{
			name:   "purge history",
			method: http.MethodDelete,
			target: "/messages",
			mockSetup: func() {
				mockSvc.EXPECT().PurgeHistory(gomock.Any(), int64(42)).Return(int64(4), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"History cleared","deleted":4}`,
		},
	}

	router := conversationRouter(mockSvc, testUser)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestConversationHandlers_RequireUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := conversationRouter(NewMockConversationer(ctrl), nil)

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Could not validate credentials", resp.Error)
}

func TestMeHandler(t *testing.T) {
	fullName := "Alice"
	user := *testUser
	user.FullName = &fullName

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = req.WithContext(middlewares.WithUser(req.Context(), &user))
	w := httptest.NewRecorder()

	NewMeHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"username":"alice","email":"alice@example.com","full_name":"Alice"}`, w.Body.String())
}
