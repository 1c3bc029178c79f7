package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account is a balance plus the ledger of every change made to it.
// Fields are private so the balance can only move through Deposit and Withdraw,
// which keeps Balance equal to InitialBalance plus the sum of History.
type Account struct {
	owner   string
	initial decimal.Decimal
	balance decimal.Decimal
	history []Entry
}

// NewAccount creates an account with the given owner, opening balance and empty history.
func NewAccount(owner string, initialBalance decimal.Decimal) *Account {
	return &Account{
		owner:   owner,
		initial: initialBalance,
		balance: initialBalance,
	}
}

// RestoreAccount rebuilds an account from its opening balance and stored ledger.
// The balance is recomputed from the entries.
func RestoreAccount(owner string, initialBalance decimal.Decimal, entries []Entry) *Account {
	a := NewAccount(owner, initialBalance)
	for _, e := range entries {
		a.balance = a.balance.Add(e.Amount)
	}
	a.history = append([]Entry(nil), entries...)
	return a
}

// Owner returns the account holder's name.
func (a *Account) Owner() string { return a.owner }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// InitialBalance returns the balance the account was opened with.
func (a *Account) InitialBalance() decimal.Decimal { return a.initial }

// Deposit adds amount to the balance and records a "Deposit" entry.
// Non-positive amounts are rejected without touching the account.
func (a *Account) Deposit(amount decimal.Decimal) (Entry, error) {
	if !amount.IsPositive() {
		return Entry{}, InvalidArgument("invalid deposit amount %s", amount)
	}
	e := Entry{Amount: amount, Label: LabelDeposit}
	a.balance = a.balance.Add(amount)
	a.history = append(a.history, e)
	return e, nil
}

// Withdraw subtracts amount from the balance and records a "Withdrawal" entry.
// Non-positive amounts and amounts above the balance are rejected without touching the account.
func (a *Account) Withdraw(amount decimal.Decimal) (Entry, error) {
	if !amount.IsPositive() || amount.GreaterThan(a.balance) {
		return Entry{}, InvalidArgument("invalid withdrawal amount %s", amount)
	}
	e := Entry{Amount: amount.Neg(), Label: LabelWithdrawal}
	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, e)
	return e, nil
}

// History returns a copy of the ledger in creation order.
func (a *Account) History() []Entry {
	out := make([]Entry, len(a.history))
	copy(out, a.history)
	return out
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	return RestoreAccount(a.owner, a.initial, a.history)
}

func (a *Account) String() string {
	return fmt.Sprintf("Owner: %s, Balance: %s", a.owner, a.balance.String())
}

// AccountRecord is what the directory keeps per username: the credential hash and the account.
// The plaintext credential is never stored.
type AccountRecord struct {
	// Username is the login name and the directory key.
	Username string

	// CredentialHash is the bcrypt hash of the credential.
	CredentialHash string

	// Account holds the owner, balance and ledger.
	Account *Account

	// CreatedAt is the Unix timestamp when the account was opened.
	CreatedAt int64
}
