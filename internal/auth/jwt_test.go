package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSessionManagerRoundTrip(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	token, claims, err := m.Generate("user1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if claims.ID == "" {
		t.Error("expected a token ID")
	}

	got, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got.Username != "user1" {
		t.Errorf("Username = %q, want user1", got.Username)
	}
	if got.ID != claims.ID {
		t.Errorf("ID = %q, want %q", got.ID, claims.ID)
	}

	other, _, err := m.Generate("user1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if other == token {
		t.Error("two sessions for the same user should differ")
	}
}

func TestSessionManagerRejects(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)
	token, _, err := m.Generate("user1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	expiredToken, _, err := NewSessionManager("test-secret", -time.Minute).Generate("user1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	foreignToken, _, err := NewSessionManager("other-secret", time.Hour).Generate("user1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not-a-token", ErrInvalidToken},
		{"tampered", token + "x", ErrInvalidToken},
		{"expired", expiredToken, ErrInvalidToken},
		{"wrong secret", foreignToken, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
