// Package bank implements the bank directory: the registry of accounts and the single active session.
package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/minibank/internal/auth"
	"github.com/mmynk/minibank/internal/calculator"
	"github.com/mmynk/minibank/internal/metrics"
	"github.com/mmynk/minibank/internal/models"
	"github.com/mmynk/minibank/internal/storage"
)

// Session is the handle returned by Authenticate. Its Token must be passed to
// every operation that acts on the authenticated user's account.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// current identifies the one live session.
type current struct {
	username string
	tokenID  string
}

// Directory owns the account records and tracks at most one current session.
// A successful Authenticate replaces whatever session was current before it;
// tokens from earlier sessions then fail with a no-session error.
type Directory struct {
	mu            sync.Mutex
	store         storage.Store
	authenticator auth.Authenticator
	sessions      *auth.SessionManager
	metrics       *metrics.Recorder
	logger        *slog.Logger
	current       *current
}

// NewDirectory wires a directory over its collaborators.
// recorder may be nil; a nil logger means slog.Default().
func NewDirectory(store storage.Store, authenticator auth.Authenticator, sessions *auth.SessionManager, recorder *metrics.Recorder, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{
		store:         store,
		authenticator: authenticator,
		sessions:      sessions,
		metrics:       recorder,
		logger:        logger,
	}
}

// CreateAccount opens an account for username with the given owner and opening balance.
// A taken username, an empty username or credential, or a negative opening balance
// is an invalid-argument error and leaves the directory unchanged.
func (d *Directory) CreateAccount(ctx context.Context, username, credential, owner string, initialBalance decimal.Decimal) (err error) {
	defer func() { d.metrics.Observe(metrics.OpCreateAccount, err) }()

	if username == "" {
		return models.InvalidArgument("username must not be empty")
	}
	if initialBalance.IsNegative() {
		return models.InvalidArgument("invalid initial balance %s", initialBalance)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	_, err = d.authenticator.Register(ctx, username, owner, credential, initialBalance)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		d.logger.Warn("CreateAccount rejected", "username", username, "error", err)
		return models.InvalidArgument("account %q already exists", username)
	case errors.Is(err, auth.ErrEmptyCredential), errors.Is(err, auth.ErrCredentialTooLong):
		return models.InvalidArgument("%v", err)
	case err != nil:
		d.logger.Error("CreateAccount failed", "username", username, "error", err)
		return fmt.Errorf("create account %q: %w", username, err)
	}

	d.logger.Info("Account created", "username", username, "owner", owner, "balance", initialBalance.String())
	return nil
}

// Authenticate checks the credential and, on success, makes username the current user.
// On failure the current session, if any, is left as it was.
func (d *Directory) Authenticate(ctx context.Context, username, credential string) (_ Session, err error) {
	defer func() { d.metrics.Observe(metrics.OpAuthenticate, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.authenticator.Authenticate(ctx, username, credential); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			d.logger.Warn("Authentication failed", "username", username)
			return Session{}, models.InvalidArgument("authentication failed")
		}
		d.logger.Error("Authentication error", "username", username, "error", err)
		return Session{}, fmt.Errorf("authenticate %q: %w", username, err)
	}

	token, claims, err := d.sessions.Generate(username)
	if err != nil {
		d.logger.Error("Failed to generate token", "username", username, "error", err)
		return Session{}, err
	}

	if d.current != nil && d.current.username != username {
		d.logger.Info("Session replaced", "previous", d.current.username, "username", username)
	}
	d.current = &current{username: username, tokenID: claims.ID}

	d.logger.Info("User authenticated", "username", username)
	return Session{
		Token:     token,
		Username:  username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// CurrentUser returns the username of the current session, or "" if there is none.
func (d *Directory) CurrentUser() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return ""
	}
	return d.current.username
}

// Deposit credits amount to the session user's account.
func (d *Directory) Deposit(ctx context.Context, token string, amount decimal.Decimal) (_ models.Entry, err error) {
	defer func() { d.metrics.Observe(metrics.OpDeposit, err) }()
	return d.mutate(ctx, token, "Deposit", amount, (*models.Account).Deposit)
}

// Withdraw debits amount from the session user's account.
func (d *Directory) Withdraw(ctx context.Context, token string, amount decimal.Decimal) (_ models.Entry, err error) {
	defer func() { d.metrics.Observe(metrics.OpWithdraw, err) }()
	return d.mutate(ctx, token, "Withdraw", amount, (*models.Account).Withdraw)
}

// History returns the session user's ledger in creation order.
func (d *Directory) History(ctx context.Context, token string) (_ []models.Entry, err error) {
	defer func() { d.metrics.Observe(metrics.OpHistory, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	rec, err := d.sessionRecord(ctx, token)
	if err != nil {
		return nil, err
	}
	return rec.Account.History(), nil
}

// CurrentAccount returns a snapshot of the session user's account.
func (d *Directory) CurrentAccount(ctx context.Context, token string) (_ *models.Account, err error) {
	defer func() { d.metrics.Observe(metrics.OpCurrentAccount, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	rec, err := d.sessionRecord(ctx, token)
	if err != nil {
		return nil, err
	}

	st, err := calculator.Reconcile(rec.Account)
	if err != nil {
		d.logger.Error("Ledger mismatch", "username", rec.Username, "error", err)
		return nil, err
	}
	d.logger.Debug("Statement",
		"username", rec.Username,
		"opening", st.Opening.String(),
		"credits", st.Credits.String(),
		"debits", st.Debits.String(),
		"closing", st.Closing.String(),
		"deposits", st.Deposits,
		"withdrawals", st.Withdrawals,
	)
	return rec.Account, nil
}

// mutate applies op to a copy of the session user's account and stores the
// resulting entry. Nothing is stored when op fails.
func (d *Directory) mutate(ctx context.Context, token, name string, amount decimal.Decimal, op func(*models.Account, decimal.Decimal) (models.Entry, error)) (models.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, err := d.sessionRecord(ctx, token)
	if err != nil {
		return models.Entry{}, err
	}

	entry, err := op(rec.Account, amount)
	if err != nil {
		d.logger.Warn(name+" rejected", "username", rec.Username, "amount", amount.String(), "error", err)
		return models.Entry{}, err
	}

	if err := d.store.AppendEntry(ctx, rec.Username, entry); err != nil {
		d.logger.Error(name+" failed", "username", rec.Username, "error", err)
		return models.Entry{}, fmt.Errorf("record %s: %w", name, err)
	}

	d.logger.Info(name+" applied",
		"username", rec.Username,
		"amount", entry.Amount.String(),
		"balance", rec.Account.Balance().String(),
	)
	return entry, nil
}

// sessionRecord resolves token to the current user's record. Callers hold d.mu.
func (d *Directory) sessionRecord(ctx context.Context, token string) (*models.AccountRecord, error) {
	claims, err := d.sessions.Validate(token)
	if err != nil {
		return nil, models.NoSession("%v", err)
	}
	if d.current == nil || d.current.tokenID != claims.ID || d.current.username != claims.Username {
		return nil, models.NoSession("session is no longer current")
	}

	rec, err := d.store.GetAccount(ctx, claims.Username)
	if err != nil {
		return nil, fmt.Errorf("load account %q: %w", claims.Username, err)
	}
	return rec, nil
}
