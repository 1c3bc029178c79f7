// Package storage provides abstractions for account storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/minibank/internal/models"
)

var (
	ErrNotFound = errors.New("account not found")
	ErrExists   = errors.New("account already exists")
)

// Store defines the interface for account storage operations.
// This abstraction allows swapping backends (in-memory map, SQLite)
// without changing the directory.
type Store interface {
	// CreateAccount inserts a new record.
	// Returns ErrExists if the username is already taken; the existing record is left alone.
	CreateAccount(ctx context.Context, rec *models.AccountRecord) error

	// GetAccount retrieves a record by username, with its account and full ledger.
	// The returned account is a copy; mutating it does not change the store.
	// Returns ErrNotFound if the username is unknown.
	GetAccount(ctx context.Context, username string) (*models.AccountRecord, error)

	// AppendEntry adds one ledger entry to the account of username.
	// Returns ErrNotFound if the username is unknown.
	AppendEntry(ctx context.Context, username string, entry models.Entry) error

	// Close releases any resources held by the store.
	Close() error
}
