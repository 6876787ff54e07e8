package models

import (
	"errors"
	"testing"
)

func TestParsePayee(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Payee
		wantErr error
	}{
		{"Exact", "Electricity", PayeeElectricity, nil},
		{"Lower Case", "water", PayeeWater, nil},
		{"Padded", "  Phone ", PayeePhone, nil},
		{"Empty Means Unselected", "", "", nil},
		{"Unknown", "Gas", "", ErrUnknownPayee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePayee(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParsePayee(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePayee(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOperationKind(t *testing.T) {
	if OperationDeposit.Debits() {
		t.Error("Deposit must not debit")
	}
	for _, k := range []OperationKind{OperationWithdraw, OperationTransfer, OperationBillPayment} {
		if !k.Debits() {
			t.Errorf("Expected %s to debit", k)
		}
		if err := k.Validate(); err != nil {
			t.Errorf("Validate(%s) returned unexpected error: %v", k, err)
		}
	}
	if err := OperationKind("loan").Validate(); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("Validate(loan) error = %v, want %v", err, ErrUnknownOperation)
	}
}

func TestIsFastCashOption(t *testing.T) {
	if !IsFastCashOption(DefaultFastCashOptions, 5000) {
		t.Error("Expected 5000 to be a fast cash option")
	}
	if IsFastCashOption(DefaultFastCashOptions, 3000) {
		t.Error("Did not expect 3000 to be a fast cash option")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{2000, "₨2,000"},
		{100000, "₨100,000"},
		{999, "₨999"},
		{1234.5, "₨1,234.5"},
		{0.25, "₨0.25"},
	}

	for _, tt := range tests {
		if got := FormatAmount(DefaultCurrencySymbol, tt.amount); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
