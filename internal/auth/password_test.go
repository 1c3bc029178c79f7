package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/minibank/internal/storage/memory"
)

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(memory.New(), bcrypt.MinCost)

	rec, err := a.Register(ctx, "user1", "John Doe", "password1", decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if rec.CredentialHash == "password1" || !strings.HasPrefix(rec.CredentialHash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", rec.CredentialHash)
	}

	t.Run("correct password", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "user1", "password1")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.Account.Owner() != "John Doe" {
			t.Errorf("Owner = %q", got.Account.Owner())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "user1", "password2"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "nobody", "password1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := a.Register(ctx, "user1", "Someone Else", "other", decimal.NewFromInt(1))
		if !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
		// The first password still works.
		if _, err := a.Authenticate(ctx, "user1", "password1"); err != nil {
			t.Errorf("first credential rejected after duplicate register: %v", err)
		}
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		_, err := a.Register(ctx, "user4", "Long", strings.Repeat("x", 73), decimal.Zero)
		if !errors.Is(err, ErrCredentialTooLong) {
			t.Errorf("expected ErrCredentialTooLong, got %v", err)
		}
		if _, err := a.Register(ctx, "user5", "Exact", strings.Repeat("x", 72), decimal.Zero); err != nil {
			t.Errorf("72-byte password should be accepted: %v", err)
		}
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := a.Register(ctx, "user3", "Empty", "", decimal.Zero)
		if !errors.Is(err, ErrEmptyCredential) {
			t.Errorf("expected ErrEmptyCredential, got %v", err)
		}
	})
}

func TestNewPasswordAuthenticatorCostFallback(t *testing.T) {
	a := NewPasswordAuthenticator(memory.New(), 0)
	if a.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", a.cost, bcrypt.DefaultCost)
	}
}
