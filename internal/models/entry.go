package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	LabelDeposit    = "Deposit"
	LabelWithdrawal = "Withdrawal"
)

// Entry is one immutable balance change on an account's ledger.
type Entry struct {
	// Amount is signed: positive for credits, negative for debits.
	Amount decimal.Decimal

	// Label describes the change ("Deposit" or "Withdrawal").
	Label string
}

func (e Entry) String() string {
	return fmt.Sprintf("Amount: %s, Description: %s", e.Amount.String(), e.Label)
}
