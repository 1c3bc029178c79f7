package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/minibank/internal/models"
	"github.com/mmynk/minibank/internal/storage"
)

// CreateAccount inserts a new account row. The account's ledger is written too,
// so restoring a non-empty account round-trips.
func (s *SQLiteStore) CreateAccount(ctx context.Context, rec *models.AccountRecord) error {
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM accounts WHERE username = ?", rec.Username).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: %s", storage.ErrExists, rec.Username)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check account: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (username, credential_hash, owner, initial_balance, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.Username, rec.CredentialHash, rec.Account.Owner(),
		rec.Account.InitialBalance().String(), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	for i, e := range rec.Account.History() {
		if err := insertEntry(ctx, tx, rec.Username, i+1, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAccount retrieves an account and its ledger ordered by sequence.
func (s *SQLiteStore) GetAccount(ctx context.Context, username string) (*models.AccountRecord, error) {
	rec := &models.AccountRecord{Username: username}
	var owner, initial string

	err := s.db.QueryRowContext(ctx,
		`SELECT credential_hash, owner, initial_balance, created_at
		 FROM accounts WHERE username = ?`,
		username,
	).Scan(&rec.CredentialHash, &owner, &initial, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	initialBalance, err := decimal.NewFromString(initial)
	if err != nil {
		return nil, fmt.Errorf("failed to parse initial balance %q: %w", initial, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT amount, label FROM entries WHERE username = ? ORDER BY seq",
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var amount, label string
		if err := rows.Scan(&amount, &label); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse entry amount %q: %w", amount, err)
		}
		entries = append(entries, models.Entry{Amount: a, Label: label})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	rec.Account = models.RestoreAccount(owner, initialBalance, entries)
	return rec, nil
}

// AppendEntry adds entry at the end of the ledger of username.
func (s *SQLiteStore) AppendEntry(ctx context.Context, username string, entry models.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(e.seq), 0) + 1
		 FROM accounts a LEFT JOIN entries e ON e.username = a.username
		 WHERE a.username = ?
		 GROUP BY a.username`,
		username,
	).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, username)
	}
	if err != nil {
		return fmt.Errorf("failed to read ledger position: %w", err)
	}

	if err := insertEntry(ctx, tx, username, next, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, username string, seq int, e models.Entry) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO entries (username, seq, amount, label) VALUES (?, ?, ?, ?)",
		username, seq, e.Amount.String(), e.Label,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}
