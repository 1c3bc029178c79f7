// Package memory provides a map-backed implementation of storage.Store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmynk/minibank/internal/models"
	"github.com/mmynk/minibank/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

type row struct {
	credentialHash string
	account        *models.Account
	createdAt      int64
}

// Store keeps account records in a map keyed by username.
type Store struct {
	mu   sync.RWMutex
	rows map[string]*row
}

// New creates an empty store.
func New() *Store {
	return &Store{rows: make(map[string]*row)}
}

// CreateAccount stores a copy of rec.
func (s *Store) CreateAccount(ctx context.Context, rec *models.AccountRecord) error {
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[rec.Username]; ok {
		return fmt.Errorf("%w: %s", storage.ErrExists, rec.Username)
	}
	s.rows[rec.Username] = &row{
		credentialHash: rec.CredentialHash,
		account:        rec.Account.Clone(),
		createdAt:      rec.CreatedAt,
	}
	return nil
}

// GetAccount returns a copy of the record for username.
func (s *Store) GetAccount(ctx context.Context, username string) (*models.AccountRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rows[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, username)
	}
	return &models.AccountRecord{
		Username:       username,
		CredentialHash: r.credentialHash,
		Account:        r.account.Clone(),
		CreatedAt:      r.createdAt,
	}, nil
}

// AppendEntry adds entry to the stored ledger of username.
func (s *Store) AppendEntry(ctx context.Context, username string, entry models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[username]
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, username)
	}
	a := r.account
	r.account = models.RestoreAccount(a.Owner(), a.InitialBalance(), append(a.History(), entry))
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
