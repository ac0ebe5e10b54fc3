package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marqlabs/marq/internal/domain"
	"github.com/marqlabs/marq/internal/logger"
	"github.com/marqlabs/marq/internal/store/memory"
)

func newTestAuth() *Service {
	tokens := NewTokenManager("test-secret", time.Hour)
	return NewService(memory.NewUsers(), tokens, logger.Nop())
}

func TestRegister(t *testing.T) {
	svc := newTestAuth()

	creds, err := svc.Register(context.Background(), "User@Example.COM ", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if creds.Email != "user@example.com" {
		t.Errorf("Email = %q, want normalized user@example.com", creds.Email)
	}
	if creds.ID.IsZero() {
		t.Errorf("Register() left ID unset")
	}
	if creds.Token == "" {
		t.Errorf("Register() issued no token")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuth()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "password123"},
		{name: "blank email", email: "   ", password: "password123"},
		{name: "empty password", email: "user@example.com", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("Register() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuth()

	if _, err := svc.Register(context.Background(), "user@example.com", "password123"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	// case and whitespace differences still collide
	_, err := svc.Register(context.Background(), " USER@example.com", "other-password")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("second Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newTestAuth()

	reg, err := svc.Register(context.Background(), "user@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	creds, err := svc.Login(context.Background(), "User@Example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if creds.ID != reg.ID {
		t.Errorf("Login() ID = %v, want %v", creds.ID, reg.ID)
	}
	if creds.Token == "" {
		t.Errorf("Login() issued no token")
	}

	// the token must verify back to the same user
	userID, err := svc.tokens.Verify(creds.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != reg.ID {
		t.Errorf("token subject = %v, want %v", userID, reg.ID)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newTestAuth()

	if _, err := svc.Register(context.Background(), "user@example.com", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@example.com", password: "password123"},
		{name: "wrong password", email: "user@example.com", password: "wrong"},
		{name: "empty everything", email: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
