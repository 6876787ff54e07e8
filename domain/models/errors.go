package models

import (
	"errors"
)

// Domain error types
var (
	// Account errors
	// ErrMissingPIN is returned when an account is configured without a PIN
	ErrMissingPIN = errors.New("account must have a PIN")

	// ErrNegativeBalance is returned when an account is configured with a negative opening balance
	ErrNegativeBalance = errors.New("account balance cannot be negative")

	// ErrInsufficientFunds is returned when the balance cannot cover a debit
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBalanceOverflow is returned when a credit would take the balance past the largest representable amount
	ErrBalanceOverflow = errors.New("balance would overflow")

	// Transaction errors
	// ErrInvalidAmount is returned when an amount is not a number or not greater than 0
	ErrInvalidAmount = errors.New("amount must be a number greater than 0")

	// ErrMissingRecipient is returned when a transfer has no recipient account
	ErrMissingRecipient = errors.New("transfer must have a recipient account")

	// ErrMissingPayee is returned when a bill payment has no payee
	ErrMissingPayee = errors.New("bill payment must have a payee")

	// ErrUnknownPayee is returned when a payee is not in the fixed payee list
	ErrUnknownPayee = errors.New("unknown bill payee")

	// ErrUnknownOperation is returned for an operation kind outside the supported set
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrNotFastCashOption is returned when a fast cash amount is not one of the presets
	ErrNotFastCashOption = errors.New("amount is not a fast cash option")

	// Session errors
	// ErrIncorrectPIN is returned when a login attempt uses the wrong PIN
	ErrIncorrectPIN = errors.New("incorrect PIN")

	// ErrNotLoggedIn is returned when an operation needs an authenticated session
	ErrNotLoggedIn = errors.New("session is not logged in")

	// ErrInvalidTransition is returned when an action is not allowed from the current screen
	ErrInvalidTransition = errors.New("action not allowed on the current screen")

	// ErrUnknownScreen is returned when a screen name cannot be parsed
	ErrUnknownScreen = errors.New("unknown screen")

	// ErrUnknownInput is returned when an input names a field no form has
	ErrUnknownInput = errors.New("unknown input field")
)
