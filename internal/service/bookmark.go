package service

import (
	"context"

	"bookmarker/internal/models"
)

// BookmarkRepository defines the persistence operations needed by the
// BookmarkService. Implementations must make the owner check and the
// mutation in UpdateBookmark/DeleteBookmark a single atomic conditional
// write so the guard holds under concurrent requests.
type BookmarkRepository interface {
	// CreateBookmark inserts a new bookmark owned by userID.
	CreateBookmark(ctx context.Context, userID int64, title, link, description string) (models.Bookmark, error)
	// ListBookmarks fetches all bookmarks owned by userID.
	ListBookmarks(ctx context.Context, userID int64) ([]models.Bookmark, error)
	// GetBookmarkByID fetches a bookmark owned by userID, or (nil, nil)
	// when it is missing or owned by someone else.
	GetBookmarkByID(ctx context.Context, userID, id int64) (*models.Bookmark, error)
	// UpdateBookmark patches a bookmark under the owner guard. Returns
	// models.ErrAccessDenied when the bookmark is missing or foreign.
	UpdateBookmark(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (models.Bookmark, error)
	// DeleteBookmark removes a bookmark under the owner guard. Returns
	// models.ErrAccessDenied when the bookmark is missing or foreign.
	DeleteBookmark(ctx context.Context, userID, id int64) error
}

// BookmarkService implements bookmark management for a single owner per call.
type BookmarkService struct {
	repo BookmarkRepository
}

// NewBookmarkService constructs a BookmarkService with the provided repository.
func NewBookmarkService(repo BookmarkRepository) *BookmarkService {
	return &BookmarkService{repo: repo}
}

// Create persists a new bookmark owned by userID and returns the created record.
func (s *BookmarkService) Create(ctx context.Context, userID int64, title, link, description string) (models.Bookmark, error) {
	return s.repo.CreateBookmark(ctx, userID, title, link, description)
}

// List returns all bookmarks owned by userID.
func (s *BookmarkService) List(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	return s.repo.ListBookmarks(ctx, userID)
}

// GetByID returns the bookmark when it exists and is owned by userID, and
// (nil, nil) otherwise. Absence never reveals whether the id exists for
// another owner.
func (s *BookmarkService) GetByID(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	return s.repo.GetBookmarkByID(ctx, userID, id)
}

// EditByID patches the bookmark under the owner guard.
func (s *BookmarkService) EditByID(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (models.Bookmark, error) {
	return s.repo.UpdateBookmark(ctx, userID, id, patch)
}

// DeleteByID removes the bookmark under the owner guard.
func (s *BookmarkService) DeleteByID(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteBookmark(ctx, userID, id)
}
