// Package repository provides persistence implementations for the user and
// bookmark services using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookmarker/internal/models"

	"github.com/lib/pq"
)

// pgErrCodeUniqueViolation is the PostgreSQL class 23 code for
// unique-constraint violations.
const pgErrCodeUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgErrCodeUniqueViolation
}

// PostgresUserRepository implements user persistence against PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a PostgresUserRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL
// instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser inserts a new user with the given email and password hash.
// Returns models.ErrEmailTaken if the email is already registered.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, email, hash string) (models.User, error) {
	user := models.User{Email: email, Hash: hash}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, email, hash).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail fetches a user by email. Returns models.ErrNotFound if no
// user with that email exists.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, email, hash, first_name, last_name
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Email, &user.Hash, &user.FirstName, &user.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID fetches a user by id. Returns models.ErrNotFound if no user
// with that id exists.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, email, hash, first_name, last_name
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Email, &user.Hash, &user.FirstName, &user.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// UpdateUser applies the non-nil fields of patch to the user with the given
// id in a single statement. Returns models.ErrEmailTaken if the new email
// collides with a different user and models.ErrNotFound if the id does not
// exist.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		UPDATE users SET
			email = COALESCE($2, email),
			first_name = COALESCE($3, first_name),
			last_name = COALESCE($4, last_name),
			updated_at = now()
		WHERE id = $1
		RETURNING id, created_at, updated_at, email, hash, first_name, last_name
	`, id, patch.Email, patch.FirstName, patch.LastName).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Email, &user.Hash, &user.FirstName, &user.LastName)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.ErrEmailTaken
		}
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
