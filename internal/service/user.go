package service

import (
	"context"

	"bookmarker/internal/models"
)

// ProfileService mutates the authenticated user's own profile fields.
type ProfileService struct {
	repo UserRepository
}

// NewProfileService constructs a ProfileService using the provided repository.
func NewProfileService(repo UserRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Edit applies the patch to exactly the record identified by userID, which
// the caller takes from the authenticated session, never from request
// input. Returns models.ErrEmailTaken when the new email collides with a
// different user.
func (s *ProfileService) Edit(ctx context.Context, userID int64, patch models.UserPatch) (models.PublicUser, error) {
	user, err := s.repo.UpdateUser(ctx, userID, patch)
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}
