package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, login, password string) (string, error)
}

// LoginRequest carries the credentials, as a form or as JSON
// swagger:model LoginRequest
type LoginRequest struct {
	// Username or email
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// TokenResponse represents a successful login response
// swagger:model TokenResponse
type TokenResponse struct {
	// JWT access token
	// default: JWT_TOKEN
	AccessToken string `json:"access_token"`

	// Always "bearer"
	// default: bearer
	TokenType string `json:"token_type"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by username or email and return a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param username formData string true "Username or email"
// @Param password formData string true "Password"
// @Success 200 {object} handlers.TokenResponse "Access token"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Incorrect username or password"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "application/json" {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeBadRequest(w, "invalid request body")
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				writeBadRequest(w, "invalid request body")
				return
			}
			req.Username = r.PostFormValue("username")
			req.Password = r.PostFormValue("password")
		}

		token, err := svc.Login(r.Context(), req.Username, req.Password)
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
