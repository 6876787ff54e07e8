package models

import (
	"fmt"
	"strings"
)

// Screen is the screen the ATM currently shows.
type Screen int

const (
	ScreenLoggedOut Screen = iota
	ScreenMain
	ScreenFastCash
	ScreenWithdrawal
	ScreenDeposit
	ScreenTransfer
	ScreenBalance
	ScreenBillPayment
)

// MenuScreens are the screens reachable from the main menu, in menu order.
var MenuScreens = []Screen{
	ScreenFastCash,
	ScreenWithdrawal,
	ScreenDeposit,
	ScreenTransfer,
	ScreenBalance,
	ScreenBillPayment,
}

func (s Screen) String() string {
	switch s {
	case ScreenLoggedOut:
		return "loggedOut"
	case ScreenMain:
		return "main"
	case ScreenFastCash:
		return "fastCash"
	case ScreenWithdrawal:
		return "withdrawal"
	case ScreenDeposit:
		return "deposit"
	case ScreenTransfer:
		return "transfer"
	case ScreenBalance:
		return "balance"
	case ScreenBillPayment:
		return "billPayment"
	default:
		return fmt.Sprintf("Screen(%d)", int(s))
	}
}

// Title is the heading shown on the screen and its menu button
func (s Screen) Title() string {
	switch s {
	case ScreenLoggedOut:
		return "Login"
	case ScreenMain:
		return "Main Menu"
	case ScreenFastCash:
		return "Fast Cash"
	case ScreenWithdrawal:
		return "Cash Withdrawal"
	case ScreenDeposit:
		return "Deposit"
	case ScreenTransfer:
		return "Transfer"
	case ScreenBalance:
		return "Check Balance"
	case ScreenBillPayment:
		return "Pay Bills"
	default:
		return s.String()
	}
}

// IsMenuScreen reports whether s is one of the screens opened from the main menu
func (s Screen) IsMenuScreen() bool {
	switch s {
	case ScreenFastCash, ScreenWithdrawal, ScreenDeposit, ScreenTransfer, ScreenBalance, ScreenBillPayment:
		return true
	case ScreenLoggedOut, ScreenMain:
		return false
	default:
		return false
	}
}

// Operation returns the operation a screen's confirm button performs.
// Screens without an amount form return false.
func (s Screen) Operation() (OperationKind, bool) {
	switch s {
	case ScreenWithdrawal:
		return OperationWithdraw, true
	case ScreenDeposit:
		return OperationDeposit, true
	case ScreenTransfer:
		return OperationTransfer, true
	case ScreenBillPayment:
		return OperationBillPayment, true
	case ScreenLoggedOut, ScreenMain, ScreenFastCash, ScreenBalance:
		return "", false
	default:
		return "", false
	}
}

// ParseScreen parses the String form of a screen, case-insensitively
func ParseScreen(name string) (Screen, error) {
	name = strings.TrimSpace(name)
	for s := ScreenLoggedOut; s <= ScreenBillPayment; s++ {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownScreen)
}

// MarshalText implements encoding.TextMarshaler so screens encode by name
func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Screen) UnmarshalText(text []byte) error {
	parsed, err := ParseScreen(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
