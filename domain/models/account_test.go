package models

import (
	"errors"
	"testing"
)

func TestNewAccount(t *testing.T) {
	account := NewAccount(DefaultPIN, DefaultOpeningBalance)

	if !account.VerifyPIN("12345") {
		t.Error("Expected account to accept the configured PIN")
	}
	if account.Balance() != 100000 {
		t.Errorf("Expected opening balance to be 100000, but got %f", account.Balance())
	}
}

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name      string
		account   *Account
		expectErr bool
		errType   error
	}{
		{
			name:      "Valid Account",
			account:   NewAccount("1111", 50),
			expectErr: false,
		},
		{
			name:      "Zero Balance",
			account:   NewAccount("1111", 0),
			expectErr: false,
		},
		{
			name:      "Missing PIN",
			account:   NewAccount("", 50),
			expectErr: true,
			errType:   ErrMissingPIN,
		},
		{
			name:      "Negative Balance",
			account:   NewAccount("1111", -1),
			expectErr: true,
			errType:   ErrNegativeBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			hasErr := err != nil

			if hasErr != tt.expectErr {
				t.Errorf("Validate() error = %v, expectErr %v", err, tt.expectErr)
				return
			}

			if tt.expectErr && !errors.Is(err, tt.errType) {
				t.Errorf("Validate() error = %v, want %v", err, tt.errType)
			}
		})
	}
}

func TestAccount_VerifyPIN(t *testing.T) {
	account := NewAccount("12345", 0)

	tests := []struct {
		pin  string
		want bool
	}{
		{"12345", true},
		{"1234", false},
		{"123456", false},
		{" 12345", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := account.VerifyPIN(tt.pin); got != tt.want {
			t.Errorf("VerifyPIN(%q) = %v, want %v", tt.pin, got, tt.want)
		}
	}
}

func TestAccount_HasSufficientBalance(t *testing.T) {
	account := NewAccount(DefaultPIN, 100.0)

	tests := []struct {
		name   string
		amount float64
		want   bool
	}{
		{"Sufficient", 50.0, true},
		{"Exact", 100.0, true},
		{"Insufficient", 100.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := account.HasSufficientBalance(tt.amount); got != tt.want {
				t.Errorf("HasSufficientBalance(%f) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestAccount_Credit(t *testing.T) {
	account := NewAccount(DefaultPIN, 50.0)

	if err := account.Credit(100.5); err != nil {
		t.Fatalf("Credit() returned unexpected error: %v", err)
	}

	if account.Balance() != 150.5 {
		t.Errorf("Expected balance after credit to be 150.5, but got %f", account.Balance())
	}
}

func TestAccount_CreditOverflow(t *testing.T) {
	account := NewAccount(DefaultPIN, 1e308)

	err := account.Credit(1e308)
	if !errors.Is(err, ErrBalanceOverflow) {
		t.Errorf("Expected ErrBalanceOverflow, got %v", err)
	}
	if account.Balance() != 1e308 {
		t.Errorf("Expected balance to stay 1e308, but got %g", account.Balance())
	}
}

func TestAccount_Debit(t *testing.T) {
	t.Run("Sufficient Funds", func(t *testing.T) {
		account := NewAccount(DefaultPIN, 100.0)

		if err := account.Debit(75.0); err != nil {
			t.Errorf("Debit() returned unexpected error: %v", err)
		}
		if account.Balance() != 25.0 {
			t.Errorf("Expected balance after debit to be 25, but got %f", account.Balance())
		}
	})

	t.Run("Whole Balance", func(t *testing.T) {
		account := NewAccount(DefaultPIN, 100.0)

		if err := account.Debit(100.0); err != nil {
			t.Errorf("Debit() returned unexpected error: %v", err)
		}
		if account.Balance() != 0 {
			t.Errorf("Expected balance to be 0, but got %f", account.Balance())
		}
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		account := NewAccount(DefaultPIN, 50.0)

		err := account.Debit(75.0)
		if !errors.Is(err, ErrInsufficientFunds) {
			t.Errorf("Debit() error = %v, want %v", err, ErrInsufficientFunds)
		}
		if account.Balance() != 50.0 {
			t.Errorf("Expected balance to remain 50 after failed debit, but got %f", account.Balance())
		}
	})
}
