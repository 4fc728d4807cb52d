package handlers

//go:generate mockgen -source=google_auth.go -destination=google_auth_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// GoogleLoginer signs users in with Google ID tokens.
type GoogleLoginer interface {
	LoginWithGoogle(ctx context.Context, credential string) (string, error)
}

// GoogleAuthRequest carries the ID token returned by Google Identity Services
// swagger:model GoogleAuthRequest
type GoogleAuthRequest struct {
	// Google ID token
	// required: true
	Credential string `json:"credential"`
}

// NewGoogleAuthHandler returns an HTTP handler for Google sign-in.
// @Summary Google sign-in
// @Description Verifies a Google ID token, creating the account on first sign-in, and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param googleAuthRequest body handlers.GoogleAuthRequest true "Google credential"
// @Success 200 {object} handlers.TokenResponse "Access token"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid Google credential"
// @Router /auth/google [post]
func NewGoogleAuthHandler(svc GoogleLoginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GoogleAuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Credential) == "" {
			writeBadRequest(w, "credential is required")
			return
		}

		token, err := svc.LoginWithGoogle(r.Context(), req.Credential)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}
