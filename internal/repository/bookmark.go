package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookmarker/internal/models"
)

// PostgresBookmarkRepository implements bookmark persistence against
// PostgreSQL. Every query is scoped by owner; the edit and delete paths use
// a single conditional statement so the owner check and the mutation cannot
// be separated by a concurrent writer.
type PostgresBookmarkRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresBookmarkRepository creates a PostgresBookmarkRepository with
// the given database connection.
func NewPostgresBookmarkRepository(db *sql.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{DB: db}
}

// CreateBookmark inserts a new bookmark owned by userID.
func (r *PostgresBookmarkRepository) CreateBookmark(ctx context.Context, userID int64, title, link, description string) (models.Bookmark, error) {
	bookmark := models.Bookmark{
		Title:       title,
		Description: description,
		Link:        link,
		UserID:      userID,
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO bookmarks (user_id, title, link, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, userID, title, link, description).Scan(&bookmark.ID, &bookmark.CreatedAt, &bookmark.UpdatedAt)
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("create bookmark: %w", err)
	}
	return bookmark, nil
}

// ListBookmarks fetches all bookmarks owned by userID.
func (r *PostgresBookmarkRepository) ListBookmarks(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, created_at, updated_at, title, description, link, user_id
		FROM bookmarks WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Title, &b.Description, &b.Link, &b.UserID); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// GetBookmarkByID fetches a single bookmark owned by userID. A bookmark
// that does not exist or belongs to another user yields (nil, nil), so the
// caller cannot tell the two apart.
func (r *PostgresBookmarkRepository) GetBookmarkByID(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	var b models.Bookmark
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, title, description, link, user_id
		FROM bookmarks WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Title, &b.Description, &b.Link, &b.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	return &b, nil
}

// UpdateBookmark applies the non-nil fields of patch to the bookmark with
// the given id, but only when it is owned by userID. The owner check and
// the mutation are one atomic conditional UPDATE; zero affected rows means
// the bookmark is missing or foreign, reported uniformly as
// models.ErrAccessDenied.
func (r *PostgresBookmarkRepository) UpdateBookmark(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (models.Bookmark, error) {
	var b models.Bookmark
	err := r.DB.QueryRowContext(ctx, `
		UPDATE bookmarks SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			link = COALESCE($5, link),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, created_at, updated_at, title, description, link, user_id
	`, id, userID, patch.Title, patch.Description, patch.Link).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Title, &b.Description, &b.Link, &b.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Bookmark{}, models.ErrAccessDenied
		}
		return models.Bookmark{}, fmt.Errorf("update bookmark: %w", err)
	}
	return b, nil
}

// DeleteBookmark removes the bookmark with the given id when it is owned by
// userID, under the same atomic conditional guard as UpdateBookmark.
func (r *PostgresBookmarkRepository) DeleteBookmark(ctx context.Context, userID, id int64) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM bookmarks WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if affected == 0 {
		return models.ErrAccessDenied
	}
	return nil
}
