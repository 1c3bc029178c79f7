package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/minibank/internal/models"
	"github.com/mmynk/minibank/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredential    = errors.New("password must not be empty")
	ErrCredentialTooLong  = errors.New("password must be at most 72 bytes")
	ErrUsernameTaken      = errors.New("account already exists")
)

// maxCredentialBytes is the longest input bcrypt will hash.
const maxCredentialBytes = 72

// AccountStorage defines the storage operations the authenticator needs.
type AccountStorage interface {
	CreateAccount(ctx context.Context, rec *models.AccountRecord) error
	GetAccount(ctx context.Context, username string) (*models.AccountRecord, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage AccountStorage
	cost    int
}

// NewPasswordAuthenticator creates a password authenticator hashing with the given bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewPasswordAuthenticator(storage AccountStorage, cost int) *PasswordAuthenticator {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordAuthenticator{
		storage: storage,
		cost:    cost,
	}
}

// ValidateCredential rejects empty passwords and passwords bcrypt cannot hash.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if credential == "" {
		return ErrEmptyCredential
	}
	if len(credential) > maxCredentialBytes {
		return ErrCredentialTooLong
	}
	return nil
}

// Register hashes the password and stores a new account with an empty ledger.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, owner, credential string, initialBalance decimal.Decimal) (*models.AccountRecord, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &models.AccountRecord{
		Username:       username,
		CredentialHash: string(hashed),
		Account:        models.NewAccount(owner, initialBalance),
	}
	if err := a.storage.CreateAccount(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return rec, nil
}

// Authenticate looks the user up and compares the password against the stored hash.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.AccountRecord, error) {
	rec, err := a.storage.GetAccount(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.CredentialHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return rec, nil
}
