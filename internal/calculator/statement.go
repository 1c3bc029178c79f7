// Package calculator derives totals from an account's ledger.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/minibank/internal/models"
)

// Statement summarises a ledger between its opening and closing balance.
type Statement struct {
	Opening     decimal.Decimal
	Credits     decimal.Decimal // Sum of positive entries
	Debits      decimal.Decimal // Sum of negative entries, as a positive number
	Closing     decimal.Decimal
	Deposits    int
	Withdrawals int
}

// Net is credits minus debits.
func (s Statement) Net() decimal.Decimal {
	return s.Credits.Sub(s.Debits)
}

// Summarize walks entries in order from opening and totals them.
//
// Algorithm:
// - positive amounts add to Credits, negative amounts add |amount| to Debits
// - entries are counted by label
// - Closing = Opening + Credits - Debits
func Summarize(opening decimal.Decimal, entries []models.Entry) Statement {
	s := Statement{
		Opening: opening,
		Credits: decimal.Zero,
		Debits:  decimal.Zero,
	}
	for _, e := range entries {
		if e.Amount.IsNegative() {
			s.Debits = s.Debits.Add(e.Amount.Abs())
		} else {
			s.Credits = s.Credits.Add(e.Amount)
		}
		switch e.Label {
		case models.LabelDeposit:
			s.Deposits++
		case models.LabelWithdrawal:
			s.Withdrawals++
		}
	}
	s.Closing = opening.Add(s.Net())
	return s
}

// Reconcile checks that the account's balance equals its opening balance plus its ledger.
func Reconcile(a *models.Account) (Statement, error) {
	s := Summarize(a.InitialBalance(), a.History())
	if !s.Closing.Equal(a.Balance()) {
		return s, fmt.Errorf("ledger for %q does not reconcile: expected %s, balance %s",
			a.Owner(), s.Closing, a.Balance())
	}
	return s, nil
}
