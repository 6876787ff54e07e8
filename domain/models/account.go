package models

import "math"

// DefaultPIN and DefaultOpeningBalance describe the sample account.
const (
	DefaultPIN            = "12345"
	DefaultOpeningBalance = 100000.0
)

// Account is the single card account an ATM session operates on.
// It lives in memory only and is rebuilt from configuration on every start.
type Account struct {
	pin     string
	balance float64
}

// NewAccount creates an account guarded by pin with an opening balance
func NewAccount(pin string, openingBalance float64) *Account {
	return &Account{
		pin:     pin,
		balance: openingBalance,
	}
}

// Validate checks if the account is usable
func (a *Account) Validate() error {
	if a.pin == "" {
		return ErrMissingPIN
	}

	if a.balance < 0 {
		return ErrNegativeBalance
	}

	return nil
}

// VerifyPIN reports whether pin matches the stored PIN exactly
func (a *Account) VerifyPIN(pin string) bool {
	return a.pin == pin
}

// Balance returns the current balance
func (a *Account) Balance() float64 {
	return a.balance
}

// HasSufficientBalance checks if the account can cover a debit of amount
func (a *Account) HasSufficientBalance(amount float64) bool {
	return a.balance >= amount
}

// Credit adds amount to the balance. The balance is left untouched when the
// result would no longer be a finite number.
func (a *Account) Credit(amount float64) error {
	balance := a.balance + amount
	if math.IsInf(balance, 0) || math.IsNaN(balance) {
		return ErrBalanceOverflow
	}
	a.balance = balance
	return nil
}

// Debit removes amount from the balance. The balance is left untouched
// when it cannot cover the amount.
func (a *Account) Debit(amount float64) error {
	if !a.HasSufficientBalance(amount) {
		return ErrInsufficientFunds
	}

	a.balance -= amount
	return nil
}
