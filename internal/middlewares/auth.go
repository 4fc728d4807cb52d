package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/jwt"
	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// UserLoader resolves the user a token was issued to.
type UserLoader interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

type userKey struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey{}).(*models.User)
	return user
}

// AuthMiddleware returns a middleware that validates the bearer token and
// puts the active user it belongs to into the request context.
func AuthMiddleware(tokener Tokener, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			user, err := users.GetUser(ctx, claims.UserID)
			if err != nil {
				if apperrors.KindOf(err) != apperrors.Auth {
					logger.Log.Errorw("failed to load session user", "user_id", claims.UserID, "err", err)
					writeJSONError(w, http.StatusInternalServerError, apperrors.MessageOf(err))
					return
				}
				logger.Log.Infow("authorization failed", "user_id", claims.UserID, "err", err)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Message)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
