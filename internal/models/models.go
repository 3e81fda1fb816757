// Package models defines the core data structures for users and bookmarks.
package models

import "time"

// User represents an application user with credentials.
// It is internal to the service and repository layers; anything that
// leaves the system boundary is a PublicUser.
type User struct {
	// ID is the unique identifier for the user.
	ID int64
	// CreatedAt is the time the user record was created.
	CreatedAt time.Time
	// UpdatedAt is updated on any profile mutation.
	UpdatedAt time.Time
	// Email is the unique login email of the user.
	Email string
	// Hash is the bcrypt hash of the user's password.
	Hash string
	// FirstName is the optional first name (empty when unset).
	FirstName string
	// LastName is the optional last name (empty when unset).
	LastName string
}

// PublicUser is the outward-facing projection of a User. It has no hash
// field at all, so no code path can leak one by forgetting to strip it.
type PublicUser struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
}

// Public returns the outward-facing projection of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Bookmark represents a saved link owned by a single user.
type Bookmark struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link"`
	UserID      int64     `json:"userId"`
}

// UserPatch holds optional profile updates. A nil field leaves the
// corresponding column unchanged.
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// BookmarkPatch holds optional bookmark updates. A nil field leaves the
// corresponding column unchanged.
type BookmarkPatch struct {
	Title       *string
	Description *string
	Link        *string
}
