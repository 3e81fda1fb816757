package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"bookmarker/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// SignUp registers a new user and returns a signed bearer token.
	SignUp(ctx context.Context, email, password string) (string, error)
	// SignIn verifies credentials and returns a signed bearer token.
	SignIn(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles HTTP requests for user signup and signin.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// credentialsRequest represents the JSON payload for signup and signin.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse carries the issued bearer token.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// parseCredentials decodes and validates a signup/signin body. The email
// is normalized to lower case.
func parseCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return credentialsRequest{}, models.ErrInvalidData
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return credentialsRequest{}, models.ErrInvalidData
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return credentialsRequest{}, models.ErrInvalidData
	}
	return req, nil
}

// SignUp handles POST /auth/signup.
// It expects a JSON body with non-empty "email" and "password" fields and
// responds with 201 and an access token, or 409 when the email is taken.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	req, err := parseCredentials(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	tok, err := h.AuthService.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: tok})
}

// SignIn handles POST /auth/signin.
// A wrong password and an unknown email are answered identically so the
// response does not reveal which field was wrong.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	req, err := parseCredentials(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	tok, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			writeError(w, http.StatusForbidden, "credentials incorrect")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: tok})
}
