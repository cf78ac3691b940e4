package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dev-abhisheks/recipe-app-api/internal/model"
	"github.com/dev-abhisheks/recipe-app-api/internal/repository"
	"github.com/dev-abhisheks/recipe-app-api/internal/validation"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := repository.NewDB("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(newTestDB(t)),
		validation.New(),
		"test-secret",
		time.Hour,
	)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Email:    "not-an-email",
		Password: "password123",
	})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.CreateUserRequest{
		Email:    "test@example.com",
		Password: "pw",
	})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	req := model.CreateUserRequest{Email: "dup@example.com", Password: "testpass123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_ResponseOmitsPassword(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), model.CreateUserRequest{
		Email:    "safe@example.com",
		Password: "testpass123",
		Name:     "Safe User",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if resp.ID == 0 {
		t.Error("expected generated ID")
	}
	if resp.Email != "safe@example.com" {
		t.Errorf("Email: got %q, want %q", resp.Email, "safe@example.com")
	}
	if resp.Name != "Safe User" {
		t.Errorf("Name: got %q, want %q", resp.Name, "Safe User")
	}
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, model.CreateUserRequest{
		Email:    "login@example.com",
		Password: "goodpass123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(ctx, model.TokenRequest{
		Email:    "login@example.com",
		Password: "goodpass123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, model.CreateUserRequest{
		Email:    "wrongpw@example.com",
		Password: "goodpass123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = svc.Login(ctx, model.TokenRequest{
		Email:    "wrongpw@example.com",
		Password: "badpass123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), model.TokenRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, model.CreateUserRequest{
		Email:    "update@example.com",
		Password: "oldpass123",
		Name:     "Old Name",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	newName := "New Name"
	newPassword := "newpass123"
	resp, err := svc.UpdateUser(ctx, created.ID, model.UpdateUserRequest{
		Name:     &newName,
		Password: &newPassword,
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if resp.Name != "New Name" {
		t.Errorf("Name: got %q, want %q", resp.Name, "New Name")
	}

	// The new password works, the old one does not.
	if _, err := svc.Login(ctx, model.TokenRequest{Email: "update@example.com", Password: "newpass123"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, model.TokenRequest{Email: "update@example.com", Password: "oldpass123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials with old password, got %v", err)
	}
}
