package handlers

import "net/http"

// NewMeHandler returns an HTTP handler describing the authenticated user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.UserResponse "Authenticated user"
// @Failure 401 {object} handlers.ErrorResponse "Could not validate credentials"
// @Router /me [get]
func NewMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}
