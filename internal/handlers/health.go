package handlers

//go:generate mockgen -source=health.go -destination=health_mock.go -package=handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse describes service liveness
// swagger:model HealthResponse
type HealthResponse struct {
	// default: healthy
	Status string `json:"status"`

	// default: Chat assistant API is running
	Message string `json:"message"`
}

// NewHealthHandler returns a liveness handler. When db is not nil it is
// pinged and an unreachable database answers 503.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Failure 503 {object} handlers.HealthResponse
// @Router /health [get]
func NewHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				logger.FromContext(r.Context()).Warnw("health check failed", "error", err)
				writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  "unhealthy",
					Message: "Database unreachable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:  "healthy",
			Message: "Chat assistant API is running",
		})
	}
}
