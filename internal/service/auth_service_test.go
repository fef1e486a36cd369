package service

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"
	"ripple/internal/token"

	"golang.org/x/crypto/bcrypt"
)

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "testuser" {
			return &models.User{ID: 8, Username: "testuser", Password: string(hash)}, nil
		}
		return nil, nil
	}

	codec := token.NewCodec("test-secret-key-12345678901234567890123456789012")
	svc := NewAuthService(users, codec, 0)

	t.Run("Valid Credentials", func(t *testing.T) {
		signed, err := svc.Login(context.Background(), "testuser", "testpassword")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := codec.Validate(signed)
		if err != nil {
			t.Fatalf("issued token failed validation: %v", err)
		}
		if claims.UserID != 8 || claims.Username != "testuser" {
			t.Fatalf("unexpected claims: %#v", claims)
		}
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "testuser", "nope")
		assertInvalidCredentials(t, err)
	})

	t.Run("Unknown User", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost", "testpassword")
		assertInvalidCredentials(t, err)
	})
}

func assertInvalidCredentials(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected invalid-credentials error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeInvalidCredentials {
		t.Fatalf("expected invalid-credentials app error, got %#v", err)
	}
	if appErr.Message != "Invalid email or password" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}
