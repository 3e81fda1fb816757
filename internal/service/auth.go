// Package service provides business-logic services for authentication,
// profile edits and bookmark management, delegating persistence to
// repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"bookmarker/internal/models"
	"bookmarker/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations required by the
// authentication and profile services.
type UserRepository interface {
	// CreateUser creates a new user record with the given email and
	// password hash. Returns models.ErrEmailTaken on a duplicate email.
	CreateUser(ctx context.Context, email, hash string) (models.User, error)
	// GetUserByEmail fetches a user by email. Returns models.ErrNotFound
	// if no user with that email exists.
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	// GetUserByID fetches a user by id. Returns models.ErrNotFound
	// if no user with that id exists.
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	// UpdateUser applies the non-nil fields of patch to the user with
	// the given id.
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
}

// TokenManager signs and verifies bearer tokens bound to a user identity.
type TokenManager interface {
	// Issue returns a signed token bound to the user id and email.
	Issue(userID int64, email string) (string, error)
	// Parse verifies a token and returns its claims.
	Parse(tokenString string) (*token.Claims, error)
}

// AuthService implements signup, signin and per-request session resolution.
type AuthService struct {
	repo   UserRepository
	tokens TokenManager
}

// NewAuthService constructs an AuthService using the provided repository
// and token manager.
func NewAuthService(repo UserRepository, tokens TokenManager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// SignUp registers a new user and returns a signed bearer token bound to
// the new user's id and email. Returns models.ErrEmailTaken when the email
// is already registered.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, string(hash))
	if err != nil {
		return "", err
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// SignIn verifies the credentials and returns a signed bearer token.
// An unknown email and a wrong password both yield
// models.ErrInvalidCredentials; the bcrypt comparison is constant time.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// ResolveSession verifies the bearer token and loads the bound user,
// returning its public projection. Any verification failure, including a
// token whose user no longer exists, yields models.ErrInvalidToken.
func (s *AuthService) ResolveSession(ctx context.Context, tokenString string) (models.PublicUser, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return models.PublicUser{}, models.ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.PublicUser{}, models.ErrInvalidToken
		}
		return models.PublicUser{}, err
	}

	return user.Public(), nil
}
