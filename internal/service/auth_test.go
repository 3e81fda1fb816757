package service

import (
	"context"
	"errors"
	"testing"

	"bookmarker/internal/models"
	"bookmarker/internal/token"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	CreateUserFunc     func(ctx context.Context, email, hash string) (models.User, error)
	GetUserByEmailFunc func(ctx context.Context, email string) (models.User, error)
	GetUserByIDFunc    func(ctx context.Context, id int64) (models.User, error)
	UpdateUserFunc     func(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, email, hash string) (models.User, error) {
	return m.CreateUserFunc(ctx, email, hash)
}
func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.GetUserByEmailFunc(ctx, email)
}
func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	return m.GetUserByIDFunc(ctx, id)
}
func (m *mockUserRepo) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	return m.UpdateUserFunc(ctx, id, patch)
}

type mockTokenManager struct {
	IssueFunc func(userID int64, email string) (string, error)
	ParseFunc func(tokenString string) (*token.Claims, error)
}

func (m *mockTokenManager) Issue(userID int64, email string) (string, error) {
	return m.IssueFunc(userID, email)
}
func (m *mockTokenManager) Parse(tokenString string) (*token.Claims, error) {
	return m.ParseFunc(tokenString)
}

func TestSignUp_HashesPasswordAndIssuesToken(t *testing.T) {
	var storedHash string
	repo := &mockUserRepo{
		CreateUserFunc: func(ctx context.Context, email, hash string) (models.User, error) {
			storedHash = hash
			return models.User{ID: 1, Email: email, Hash: hash}, nil
		},
	}
	tokens := &mockTokenManager{
		IssueFunc: func(userID int64, email string) (string, error) {
			if userID != 1 || email != "user@testing.com" {
				t.Errorf("Issue received (%d, %q); want (1, user@testing.com)", userID, email)
			}
			return "signed-token", nil
		},
	}
	svc := NewAuthService(repo, tokens)

	got, err := svc.SignUp(context.Background(), "user@testing.com", "test-password")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if got != "signed-token" {
		t.Errorf("SignUp = %q; want %q", got, "signed-token")
	}
	if storedHash == "test-password" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("test-password")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		CreateUserFunc: func(ctx context.Context, email, hash string) (models.User, error) {
			return models.User{}, models.ErrEmailTaken
		},
	}
	svc := NewAuthService(repo, &mockTokenManager{})

	_, err := svc.SignUp(context.Background(), "user@testing.com", "test-password")
	if !errors.Is(err, models.ErrEmailTaken) {
		t.Fatalf("error = %v; want models.ErrEmailTaken", err)
	}
}

func TestSignIn_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (models.User, error) {
			return models.User{}, models.ErrNotFound
		},
	}
	svc := NewAuthService(repo, &mockTokenManager{})

	_, err := svc.SignIn(context.Background(), "nobody@testing.com", "test-password")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("error = %v; want models.ErrInvalidCredentials", err)
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	repo := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: 1, Email: email, Hash: string(hash)}, nil
		},
	}
	svc := NewAuthService(repo, &mockTokenManager{})

	_, err := svc.SignIn(context.Background(), "user@testing.com", "wrong-password")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("error = %v; want models.ErrInvalidCredentials", err)
	}
}

func TestSignIn_SameErrorForBothFailureModes(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	repo := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (models.User, error) {
			if email == "known@testing.com" {
				return models.User{ID: 1, Email: email, Hash: string(hash)}, nil
			}
			return models.User{}, models.ErrNotFound
		},
	}
	svc := NewAuthService(repo, &mockTokenManager{})

	_, errUnknown := svc.SignIn(context.Background(), "unknown@testing.com", "right-password")
	_, errWrongPass := svc.SignIn(context.Background(), "known@testing.com", "wrong-password")
	if !errors.Is(errUnknown, models.ErrInvalidCredentials) || !errors.Is(errWrongPass, models.ErrInvalidCredentials) {
		t.Fatalf("errors = (%v, %v); want models.ErrInvalidCredentials for both", errUnknown, errWrongPass)
	}
}

func TestSignIn_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	repo := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: 3, Email: email, Hash: string(hash)}, nil
		},
	}
	tokens := &mockTokenManager{
		IssueFunc: func(userID int64, email string) (string, error) { return "signed-token", nil },
	}
	svc := NewAuthService(repo, tokens)

	got, err := svc.SignIn(context.Background(), "user@testing.com", "test-password")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if got != "signed-token" {
		t.Errorf("SignIn = %q; want %q", got, "signed-token")
	}
}

func TestResolveSession_BadToken(t *testing.T) {
	tokens := &mockTokenManager{
		ParseFunc: func(tokenString string) (*token.Claims, error) {
			return nil, errors.New("signature is invalid")
		},
	}
	svc := NewAuthService(&mockUserRepo{}, tokens)

	_, err := svc.ResolveSession(context.Background(), "garbage")
	if !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("error = %v; want models.ErrInvalidToken", err)
	}
}

func TestResolveSession_DeletedUser(t *testing.T) {
	tokens := &mockTokenManager{
		ParseFunc: func(tokenString string) (*token.Claims, error) {
			return &token.Claims{UserID: 9, Email: "gone@testing.com"}, nil
		},
	}
	repo := &mockUserRepo{
		GetUserByIDFunc: func(ctx context.Context, id int64) (models.User, error) {
			return models.User{}, models.ErrNotFound
		},
	}
	svc := NewAuthService(repo, tokens)

	_, err := svc.ResolveSession(context.Background(), "stale-token")
	if !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("error = %v; want models.ErrInvalidToken", err)
	}
}

func TestResolveSession_ReturnsBoundUser(t *testing.T) {
	tokens := &mockTokenManager{
		ParseFunc: func(tokenString string) (*token.Claims, error) {
			return &token.Claims{UserID: 9, Email: "user@testing.com"}, nil
		},
	}
	repo := &mockUserRepo{
		GetUserByIDFunc: func(ctx context.Context, id int64) (models.User, error) {
			if id != 9 {
				t.Errorf("GetUserByID received id = %d; want 9", id)
			}
			return models.User{ID: 9, Email: "user@testing.com", Hash: "secret-hash"}, nil
		},
	}
	svc := NewAuthService(repo, tokens)

	user, err := svc.ResolveSession(context.Background(), "valid-token")
	if err != nil {
		t.Fatalf("ResolveSession returned error: %v", err)
	}
	if user.ID != 9 || user.Email != "user@testing.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}
