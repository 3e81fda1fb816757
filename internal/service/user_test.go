package service

import (
	"context"
	"errors"
	"testing"

	"bookmarker/internal/models"
)

func TestProfileEdit_TargetsCallerOnly(t *testing.T) {
	repo := &mockUserRepo{
		UpdateUserFunc: func(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
			if id != 7 {
				t.Errorf("UpdateUser received id = %d; want 7", id)
			}
			return models.User{ID: id, Email: "user@testing.com", Hash: "secret-hash", FirstName: *patch.FirstName}, nil
		},
	}
	svc := NewProfileService(repo)

	first := "Grace"
	user, err := svc.Edit(context.Background(), 7, models.UserPatch{FirstName: &first})
	if err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}
	if user.FirstName != "Grace" {
		t.Errorf("FirstName = %q; want Grace", user.FirstName)
	}
}

func TestProfileEdit_EmailConflict(t *testing.T) {
	repo := &mockUserRepo{
		UpdateUserFunc: func(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
			return models.User{}, models.ErrEmailTaken
		},
	}
	svc := NewProfileService(repo)

	email := "taken@testing.com"
	_, err := svc.Edit(context.Background(), 7, models.UserPatch{Email: &email})
	if !errors.Is(err, models.ErrEmailTaken) {
		t.Fatalf("error = %v; want models.ErrEmailTaken", err)
	}
}
