package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bookmarker/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func setupUserMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresUserRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (email, hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`)).
		WithArgs("user@testing.com", "hashed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	user, err := repo.CreateUser(context.Background(), "user@testing.com", "hashed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Email != "user@testing.com" || user.Hash != "hashed" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("user@testing.com", "hashed").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), "user@testing.com", "hashed")
	if !errors.Is(err, models.ErrEmailTaken) {
		t.Fatalf("error = %v; want models.ErrEmailTaken", err)
	}
}

func TestGetUserByEmail_Found(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "email", "hash", "first_name", "last_name"}).
		AddRow(int64(7), now, now, "user@testing.com", "hashed", "Ada", "")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("user@testing.com").
		WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "user@testing.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || user.FirstName != "Ada" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("nobody@testing.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUserByEmail(context.Background(), "nobody@testing.com")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("error = %v; want models.ErrNotFound", err)
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUserByID(context.Background(), 99)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("error = %v; want models.ErrNotFound", err)
	}
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	now := time.Now()
	first := "Grace"
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "email", "hash", "first_name", "last_name"}).
		AddRow(int64(7), now, now, "user@testing.com", "hashed", "Grace", "Hopper")
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET`)).
		WithArgs(int64(7), nil, "Grace", nil).
		WillReturnRows(rows)

	user, err := repo.UpdateUser(context.Background(), 7, models.UserPatch{FirstName: &first})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.FirstName != "Grace" {
		t.Errorf("FirstName = %q; want Grace", user.FirstName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	email := "taken@testing.com"
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET`)).
		WithArgs(int64(7), email, nil, nil).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.UpdateUser(context.Background(), 7, models.UserPatch{Email: &email})
	if !errors.Is(err, models.ErrEmailTaken) {
		t.Fatalf("error = %v; want models.ErrEmailTaken", err)
	}
}
