package auth

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mmynk/minibank/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping credential schemes without changing the bank directory.
type Authenticator interface {
	// Register opens an account for username, protected by credential.
	// Returns the stored record or an error if registration fails.
	Register(ctx context.Context, username, owner, credential string, initialBalance decimal.Decimal) (*models.AccountRecord, error)

	// Authenticate verifies the credential and returns the user's record if it matches.
	Authenticate(ctx context.Context, username, credential string) (*models.AccountRecord, error)

	// ValidateCredential checks that the credential is acceptable for this scheme.
	ValidateCredential(credential string) error
}
