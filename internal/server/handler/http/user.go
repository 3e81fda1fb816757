package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"bookmarker/internal/middleware"
	"bookmarker/internal/models"
)

// ProfileService defines the interface for profile operations required by
// the user handlers.
type ProfileService interface {
	// Edit applies the patch to the profile of the user with the given id.
	Edit(ctx context.Context, userID int64, patch models.UserPatch) (models.PublicUser, error)
}

// UserHandler handles HTTP requests for the authenticated user's profile.
type UserHandler struct {
	ProfileService ProfileService
}

// editUserRequest represents the JSON payload for a profile edit. Absent
// fields leave the profile unchanged.
type editUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Me handles GET /users/me.
// It returns the user resolved from the bearer token by the auth middleware.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Edit handles PATCH /users.
// The target record is always the authenticated user; ids in the payload
// are not accepted. Responds with 409 when the new email collides with a
// different user.
func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req editUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			writeError(w, http.StatusBadRequest, "invalid email")
			return
		}
		req.Email = &email
	}

	updated, err := h.ProfileService.Edit(r.Context(), user.ID, models.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
