package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bookmarker/internal/middleware"
	"bookmarker/internal/models"

	"github.com/go-chi/chi/v5"
)

// BookmarkService defines the interface for bookmark operations required
// by the HTTP handlers.
type BookmarkService interface {
	// Create persists a new bookmark owned by userID.
	Create(ctx context.Context, userID int64, title, link, description string) (models.Bookmark, error)
	// List returns all bookmarks owned by userID.
	List(ctx context.Context, userID int64) ([]models.Bookmark, error)
	// GetByID returns the bookmark, or (nil, nil) when it is missing or
	// owned by someone else.
	GetByID(ctx context.Context, userID, id int64) (*models.Bookmark, error)
	// EditByID patches the bookmark under the owner guard.
	EditByID(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (models.Bookmark, error)
	// DeleteByID removes the bookmark under the owner guard.
	DeleteByID(ctx context.Context, userID, id int64) error
}

// BookmarkHandler handles HTTP requests for bookmark management.
type BookmarkHandler struct {
	BookmarkService BookmarkService
}

// createBookmarkRequest represents the JSON payload for bookmark creation.
type createBookmarkRequest struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// editBookmarkRequest represents the JSON payload for a bookmark edit.
// Absent fields leave the bookmark unchanged.
type editBookmarkRequest struct {
	Title       *string `json:"title"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
}

// validLink reports whether link is an absolute URL with a host.
func validLink(link string) bool {
	u, err := url.ParseRequestURI(link)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// bookmarkID parses the {id} route parameter.
func bookmarkID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// Create handles POST /bookmarks.
// Title must be non-empty and link must be a well-formed absolute URL.
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}
	if !validLink(req.Link) {
		writeError(w, http.StatusBadRequest, "link must be a valid URL")
		return
	}

	bookmark, err := h.BookmarkService.Create(r.Context(), user.ID, req.Title, req.Link, req.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, bookmark)
}

// List handles GET /bookmarks.
// It always responds with a JSON array, empty when the user has no bookmarks.
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookmarks, err := h.BookmarkService.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}

	writeJSON(w, http.StatusOK, bookmarks)
}

// GetOne handles GET /bookmarks/{id}.
// A bookmark that is missing or owned by another user yields 404 either way.
func (h *BookmarkHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := bookmarkID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bookmark id")
		return
	}

	bookmark, err := h.BookmarkService.GetByID(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if bookmark == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, bookmark)
}

// Edit handles PATCH /bookmarks/{id}.
// The owner guard answers 403 for foreign and missing bookmarks alike.
func (h *BookmarkHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := bookmarkID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bookmark id")
		return
	}

	var req editBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title must not be empty")
		return
	}
	if req.Link != nil && !validLink(*req.Link) {
		writeError(w, http.StatusBadRequest, "link must be a valid URL")
		return
	}

	bookmark, err := h.BookmarkService.EditByID(r.Context(), user.ID, id, models.BookmarkPatch{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		if errors.Is(err, models.ErrAccessDenied) {
			writeError(w, http.StatusForbidden, "Access to resource denied")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, bookmark)
}

// Delete handles DELETE /bookmarks/{id}.
// Success is 204 with no body; the guard failure is identical to Edit's.
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := bookmarkID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bookmark id")
		return
	}

	if err := h.BookmarkService.DeleteByID(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, models.ErrAccessDenied) {
			writeError(w, http.StatusForbidden, "Access to resource denied")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
