package handlers

//go:generate mockgen -source=conversations.go -destination=conversations_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

// Conversationer manages the conversations of the authenticated user.
type Conversationer interface {
	List(ctx context.Context, userID int64) ([]models.ConversationSummary, error)
	Create(ctx context.Context, userID int64, title *string) (*models.ConversationSummary, error)
	Messages(ctx context.Context, userID, conversationID int64) ([]models.Message, error)
	Delete(ctx context.Context, userID, conversationID int64) error
	Rename(ctx context.Context, userID, conversationID int64, title string) (string, error)
	PurgeHistory(ctx context.Context, userID int64) (int64, error)
}

// CreateConversationRequest is the optional body of a conversation creation
// swagger:model CreateConversationRequest
type CreateConversationRequest struct {
	// Initial title, "New Chat" when omitted
	// default: Trip planning
	Title *string `json:"title,omitempty"`
}

// RenameConversationRequest carries a new conversation title
// swagger:model RenameConversationRequest
type RenameConversationRequest struct {
	// New title, 1 to 255 characters
	// required: true
	// default: Trip planning
	Title string `json:"title"`
}

// RenameConversationResponse confirms a rename
// swagger:model RenameConversationResponse
type RenameConversationResponse struct {
	// default: Title updated
	Message string `json:"message"`
	Title   string `json:"title"`
}

// PurgeHistoryResponse confirms a history purge
// swagger:model PurgeHistoryResponse
type PurgeHistoryResponse struct {
	// default: History cleared
	Message string `json:"message"`

	// Number of messages removed
	Deleted int64 `json:"deleted"`
}

// conversationID reads the {conversationID} path parameter.
func conversationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "conversationID"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "invalid conversation id")
		return 0, false
	}
	return id, true
}

// NewListConversationsHandler returns an HTTP handler listing the user's conversations.
// @Summary List conversations
// @Description Conversations of the authenticated user, most recently updated first, with message counts
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ConversationSummary
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Router /conversations [get]
func NewListConversationsHandler(svc Conversationer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		list, err := svc.List(r.Context(), user.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// NewCreateConversationHandler returns an HTTP handler creating an empty conversation.
// @Summary Create conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createConversationRequest body handlers.CreateConversationRequest false "Optional title"
// @Success 200 {object} models.ConversationSummary
// @Failure 400 {object} handlers.ErrorResponse "Invalid title"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Router /conversations [post]
func NewCreateConversationHandler(svc Conversationer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req CreateConversationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeBadRequest(w, "invalid request body")
			return
		}

		conv, err := svc.Create(r.Context(), user.ID, req.Title)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, conv)
	}
}

// NewConversationMessagesHandler returns an HTTP handler listing one conversation's messages.
// @Summary Conversation messages
// @Description Messages of an owned conversation, oldest first
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param conversationID path int true "Conversation ID"
// @Success 200 {array} models.Message
// @Failure 400 {object} handlers.ErrorResponse "Invalid conversation id"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} handlers.ErrorResponse "Conversation not found"
// @Router /conversations/{conversationID}/messages [get]
func NewConversationMessagesHandler(svc Conversationer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := conversationID(w, r)
		if !ok {
			return
		}

		msgs, err := svc.Messages(r.Context(), user.ID, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}

// NewDeleteConversationHandler returns an HTTP handler deleting a conversation and its messages.
// @Summary Delete conversation
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param conversationID path int true "Conversation ID"
// @Success 200 {object} handlers.MessageResponse "Conversation deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid conversation id"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} handlers.ErrorResponse "Conversation not found"
// @Router /conversations/{conversationID} [delete]
func NewDeleteConversationHandler(svc Conversationer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := conversationID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), user.ID, id); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Conversation deleted"})
	}
}

// NewRenameConversationHandler returns an HTTP handler renaming a conversation.
// The title is read from the JSON body or, failing that, the title query parameter.
// @Summary Rename conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conversationID path int true "Conversation ID"
// @Param renameConversationRequest body handlers.RenameConversationRequest false "New title"
// @Param title query string false "New title"
// @Success 200 {object} handlers.RenameConversationResponse "Title updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid title"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Failure 404 {object} handlers.ErrorResponse "Conversation not found"
// @Router /conversations/{conversationID}/title [patch]
func NewRenameConversationHandler(svc Conversationer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := conversationID(w, r)
		if !ok {
			return
		}

		var req RenameConversationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeBadRequest(w, "invalid request body")
			return
		}
		if req.Title == "" {
			req.Title = r.URL.Query().Get("title")
		}

		title, err := svc.Rename(r.Context(), user.ID, id, req.Title)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, RenameConversationResponse{Message: "Title updated", Title: title})
	}
}

// NewPurgeHistoryHandler returns an HTTP handler removing every message of the user.
// Conversations are kept.
// @Summary Clear chat history
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.PurgeHistoryResponse "History cleared"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Router /messages [delete]
func NewPurgeHistoryHandler(svc Conversationer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		deleted, err := svc.PurgeHistory(r.Context(), user.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, PurgeHistoryResponse{Message: "History cleared", Deleted: deleted})
	}
}
