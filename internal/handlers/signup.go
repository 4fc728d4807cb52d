package handlers

//go:generate mockgen -source=signup.go -destination=signup_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, req models.SignupRequest) (*models.User, error)
}

// SignupRequest represents the JSON body for user registration
// swagger:model SignupRequest
type SignupRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Username, 3 to 50 characters
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Password, 6 to 72 characters
	// required: true
	// default: secret123
	Password string `json:"password"`

	// Optional display name
	// default: John Doe
	FullName *string `json:"full_name,omitempty"`
}

// UserResponse is the public view of a user
// swagger:model UserResponse
type UserResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
}

// NewSignupHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Username and email are unique ignoring case. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body handlers.SignupRequest true "User registration request"
// @Success 200 {object} handlers.UserResponse "Created user"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input, username taken or email registered"
// @Router /signup [post]
func NewSignupHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}

		user, err := svc.Register(r.Context(), models.SignupRequest{
			Email:    req.Email,
			Username: req.Username,
			Password: req.Password,
			FullName: req.FullName,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}
