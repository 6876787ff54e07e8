package models

import (
	"fmt"
	"strings"
)

// OperationKind defines the type of operation applied to the balance
type OperationKind string

const (
	// OperationWithdraw takes cash out of the account
	OperationWithdraw OperationKind = "withdraw"

	// OperationDeposit puts cash into the account
	OperationDeposit OperationKind = "deposit"

	// OperationTransfer sends money to another account number
	OperationTransfer OperationKind = "transfer"

	// OperationBillPayment pays one of the fixed bill payees
	OperationBillPayment OperationKind = "billPayment"
)

// Debits reports whether the operation takes money out of the account
func (k OperationKind) Debits() bool {
	switch k {
	case OperationWithdraw, OperationTransfer, OperationBillPayment:
		return true
	default:
		return false
	}
}

// Validate checks the kind is one of the supported operations
func (k OperationKind) Validate() error {
	switch k {
	case OperationWithdraw, OperationDeposit, OperationTransfer, OperationBillPayment:
		return nil
	default:
		return fmt.Errorf("%q: %w", string(k), ErrUnknownOperation)
	}
}

// Payee is a bill payment target
type Payee string

const (
	PayeeElectricity Payee = "Electricity"
	PayeeWater       Payee = "Water"
	PayeeInternet    Payee = "Internet"
	PayeePhone       Payee = "Phone"
)

// Payees lists every payee in selector order
var Payees = []Payee{PayeeElectricity, PayeeWater, PayeeInternet, PayeePhone}

// ParsePayee resolves a payee name. An empty name yields the empty payee
// and no error, meaning nothing is selected.
func ParsePayee(name string) (Payee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	for _, p := range Payees {
		if strings.EqualFold(string(p), name) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownPayee)
}

// DefaultFastCashOptions are the preset fast cash amounts
var DefaultFastCashOptions = []float64{1000, 2000, 5000, 10000, 20000, 25000}

// IsFastCashOption reports whether amount is one of options
func IsFastCashOption(options []float64, amount float64) bool {
	for _, o := range options {
		if o == amount {
			return true
		}
	}
	return false
}
