package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/middlewares"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Conversation not found
	Error string `json:"error"`
}

// MessageResponse is a plain confirmation
// swagger:model MessageResponse
type MessageResponse struct {
	// default: Conversation deleted
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.Validation, apperrors.Conflict:
		return http.StatusBadRequest
	case apperrors.Auth:
		return http.StatusUnauthorized
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with the status of its kind. Internal errors are
// logged and replaced by a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Errorw("internal server error", "method", r.Method, "uri", r.RequestURI, "err", err)
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, ErrorResponse{Error: apperrors.MessageOf(err)})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}

// currentUser returns the user put in the context by the auth middleware,
// answering 401 itself when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := middlewares.UserFromContext(r.Context())
	if user == nil {
		writeError(w, r, models.ErrUnauthorized)
		return nil, false
	}
	return user, true
}
