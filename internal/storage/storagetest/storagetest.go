// Package storagetest holds behaviour tests shared by every storage.Store implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/minibank/internal/models"
	"github.com/mmynk/minibank/internal/storage"
)

// Run exercises newStore against the storage.Store contract.
// newStore must return a fresh, empty store; Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("CreateAccount then GetAccount", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		rec := &models.AccountRecord{
			Username:       "user1",
			CredentialHash: "hash1",
			Account:        models.NewAccount("John Doe", decimal.NewFromInt(1000)),
		}
		if err := store.CreateAccount(ctx, rec); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		if rec.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetAccount(ctx, "user1")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if got.CredentialHash != "hash1" {
			t.Errorf("CredentialHash = %q, want hash1", got.CredentialHash)
		}
		if got.Account.Owner() != "John Doe" {
			t.Errorf("Owner = %q, want John Doe", got.Account.Owner())
		}
		if !got.Account.Balance().Equal(decimal.NewFromInt(1000)) {
			t.Errorf("Balance = %s, want 1000", got.Account.Balance())
		}
		if len(got.Account.History()) != 0 {
			t.Errorf("expected empty history, got %v", got.Account.History())
		}
	})

	t.Run("duplicate username is rejected and existing record kept", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		first := &models.AccountRecord{Username: "u1", CredentialHash: "h1", Account: models.NewAccount("John", decimal.NewFromInt(1000))}
		if err := store.CreateAccount(ctx, first); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		dup := &models.AccountRecord{Username: "u1", CredentialHash: "h2", Account: models.NewAccount("Mallory", decimal.NewFromInt(5))}
		if err := store.CreateAccount(ctx, dup); !errors.Is(err, storage.ErrExists) {
			t.Fatalf("expected ErrExists, got %v", err)
		}

		got, err := store.GetAccount(ctx, "u1")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if got.CredentialHash != "h1" || got.Account.Owner() != "John" {
			t.Errorf("existing record was altered: %+v", got)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		if _, err := store.GetAccount(ctx, "ghost"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetAccount: expected ErrNotFound, got %v", err)
		}
		entry := models.Entry{Amount: decimal.NewFromInt(1), Label: models.LabelDeposit}
		if err := store.AppendEntry(ctx, "ghost", entry); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("AppendEntry: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AppendEntry keeps order and balance", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		rec := &models.AccountRecord{Username: "u1", CredentialHash: "h", Account: models.NewAccount("John", decimal.NewFromInt(1000))}
		if err := store.CreateAccount(ctx, rec); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}

		entries := []models.Entry{
			{Amount: decimal.NewFromInt(500), Label: models.LabelDeposit},
			{Amount: decimal.RequireFromString("-200.25"), Label: models.LabelWithdrawal},
			{Amount: decimal.RequireFromString("0.25"), Label: models.LabelDeposit},
		}
		for _, e := range entries {
			if err := store.AppendEntry(ctx, "u1", e); err != nil {
				t.Fatalf("AppendEntry failed: %v", err)
			}
		}

		got, err := store.GetAccount(ctx, "u1")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		history := got.Account.History()
		if len(history) != len(entries) {
			t.Fatalf("history length = %d, want %d", len(history), len(entries))
		}
		for i := range entries {
			if !history[i].Amount.Equal(entries[i].Amount) || history[i].Label != entries[i].Label {
				t.Errorf("history[%d] = %v, want %v", i, history[i], entries[i])
			}
		}
		if !got.Account.Balance().Equal(decimal.NewFromInt(1300)) {
			t.Errorf("Balance = %s, want 1300", got.Account.Balance())
		}
	})

	t.Run("returned account is a copy", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		rec := &models.AccountRecord{Username: "u1", CredentialHash: "h", Account: models.NewAccount("John", decimal.NewFromInt(10))}
		if err := store.CreateAccount(ctx, rec); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}
		got, err := store.GetAccount(ctx, "u1")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if _, err := got.Account.Deposit(decimal.NewFromInt(5)); err != nil {
			t.Fatal(err)
		}

		again, err := store.GetAccount(ctx, "u1")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if !again.Account.Balance().Equal(decimal.NewFromInt(10)) {
			t.Errorf("store changed without AppendEntry: balance %s", again.Account.Balance())
		}
	})
}
