package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// checkInvariant verifies balance == initial + sum(history).
func checkInvariant(t *testing.T, a *Account) {
	t.Helper()
	sum := a.InitialBalance()
	for _, e := range a.History() {
		sum = sum.Add(e.Amount)
	}
	if !sum.Equal(a.Balance()) {
		t.Errorf("invariant broken: initial+history = %s, balance = %s", sum, a.Balance())
	}
}

func TestAccountDepositWithdraw(t *testing.T) {
	a := NewAccount("John", d(1000))

	if _, err := a.Deposit(d(500)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if !a.Balance().Equal(d(1500)) {
		t.Errorf("balance after deposit = %s, want 1500", a.Balance())
	}

	if _, err := a.Withdraw(d(200)); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if !a.Balance().Equal(d(1300)) {
		t.Errorf("balance after withdraw = %s, want 1300", a.Balance())
	}

	want := []Entry{
		{Amount: d(500), Label: "Deposit"},
		{Amount: d(-200), Label: "Withdrawal"},
	}
	got := a.History()
	if len(got) != len(want) {
		t.Fatalf("history length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Amount.Equal(want[i].Amount) || got[i].Label != want[i].Label {
			t.Errorf("history[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	checkInvariant(t, a)
}

func TestAccountRejectsBadAmounts(t *testing.T) {
	tests := []struct {
		name string
		op   func(a *Account) error
	}{
		{"zero deposit", func(a *Account) error { _, err := a.Deposit(d(0)); return err }},
		{"negative deposit", func(a *Account) error { _, err := a.Deposit(d(-5)); return err }},
		{"zero withdrawal", func(a *Account) error { _, err := a.Withdraw(d(0)); return err }},
		{"negative withdrawal", func(a *Account) error { _, err := a.Withdraw(d(-1)); return err }},
		{"overdraw", func(a *Account) error { _, err := a.Withdraw(d(2000)); return err }},
		{"overdraw by a cent", func(a *Account) error {
			_, err := a.Withdraw(decimal.RequireFromString("1300.01"))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := RestoreAccount("John", d(1000), []Entry{
				{Amount: d(500), Label: LabelDeposit},
				{Amount: d(-200), Label: LabelWithdrawal},
			})
			before := a.History()

			err := tt.op(a)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if KindOf(err) != KindInvalidArgument {
				t.Errorf("KindOf = %v, want %v", KindOf(err), KindInvalidArgument)
			}
			if !a.Balance().Equal(d(1300)) {
				t.Errorf("balance changed to %s", a.Balance())
			}
			if len(a.History()) != len(before) {
				t.Errorf("history changed: %v", a.History())
			}
			checkInvariant(t, a)
		})
	}
}

func TestAccountWithdrawWholeBalance(t *testing.T) {
	a := NewAccount("Jane", d(100))
	if _, err := a.Withdraw(d(100)); err != nil {
		t.Fatalf("Withdraw of full balance failed: %v", err)
	}
	if !a.Balance().IsZero() {
		t.Errorf("balance = %s, want 0", a.Balance())
	}
	checkInvariant(t, a)
}

func TestAccountHistoryIsACopy(t *testing.T) {
	a := NewAccount("John", d(10))
	if _, err := a.Deposit(d(5)); err != nil {
		t.Fatal(err)
	}
	h := a.History()
	h[0].Label = "tampered"
	if a.History()[0].Label != LabelDeposit {
		t.Error("mutating History() result changed the account")
	}
}

func TestAccountCloneIsIndependent(t *testing.T) {
	a := NewAccount("John", d(10))
	c := a.Clone()
	if _, err := c.Deposit(d(5)); err != nil {
		t.Fatal(err)
	}
	if !a.Balance().Equal(d(10)) || len(a.History()) != 0 {
		t.Errorf("source account changed after clone mutation: %s", a)
	}
}

func TestAccountString(t *testing.T) {
	a := NewAccount("John Doe", d(1300))
	if got := a.String(); got != "Owner: John Doe, Balance: 1300" {
		t.Errorf("String() = %q", got)
	}
	e := Entry{Amount: d(-200), Label: LabelWithdrawal}
	if got := e.String(); got != "Amount: -200, Description: Withdrawal" {
		t.Errorf("Entry.String() = %q", got)
	}
}

func TestErrorKinds(t *testing.T) {
	err := NoSession("no user logged in")
	if !errors.Is(err, ErrNoSession) {
		t.Error("expected NoSession to match ErrNoSession")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("NoSession should not match ErrInvalidArgument")
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("KindOf of a plain error should be 0")
	}
}
