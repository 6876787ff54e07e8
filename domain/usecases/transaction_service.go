package usecases

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/internal"
)

// User-facing messages
const (
	MsgInvalidAmount           = "Please enter a valid amount."
	MsgInsufficientFunds       = "Insufficient funds."
	MsgInsufficientForTransfer = "Insufficient funds for transfer."
	MsgInsufficientForBill     = "Insufficient funds for bill payment."
	MsgMissingRecipient        = "Please enter a valid account number."
	MsgMissingPayee            = "Please select a bill payee."
	MsgIncorrectPIN            = "Incorrect PIN. Please try again."
)

// TransactionService applies operations to the session account.
type TransactionService struct {
	account *models.Account
	symbol  string
	logger  *internal.Logger
}

// NewTransactionService creates a new TransactionService over account.
func NewTransactionService(account *models.Account, symbol string, logger *internal.Logger) *TransactionService {
	if symbol == "" {
		symbol = models.DefaultCurrencySymbol
	}
	if logger == nil {
		logger = internal.GetLogger()
	}
	return &TransactionService{
		account: account,
		symbol:  symbol,
		logger:  logger,
	}
}

// TransactionInput is everything a single Apply call needs.
// Amount is the raw text typed by the user; Recipient and Payee only matter
// for transfers and bill payments.
type TransactionInput struct {
	Kind      models.OperationKind
	Amount    string
	Recipient string
	Payee     models.Payee
}

// Balance returns the current balance of the underlying account
func (s *TransactionService) Balance() float64 {
	return s.account.Balance()
}

// FormatAmount renders amount in the configured currency
func (s *TransactionService) FormatAmount(amount float64) string {
	return models.FormatAmount(s.symbol, amount)
}

// ParseAmount converts user input to a positive amount
func ParseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", raw, models.ErrInvalidAmount)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, fmt.Errorf("%v: %w", amount, models.ErrInvalidAmount)
	}
	return amount, nil
}

// Apply validates input and, when valid, applies it to the balance.
// Every call yields an Outcome; a failed Outcome leaves the balance unchanged.
func (s *TransactionService) Apply(input TransactionInput) *models.Outcome {
	logger := s.logger.For(internal.ComponentTransaction).With().Str("kind", string(input.Kind)).Logger()

	outcome := models.NewOutcome(input.Kind)
	defer func() {
		outcome.Balance = s.account.Balance()
		if outcome.Success {
			logger.Info().Str("outcomeID", outcome.ID).Float64("amount", outcome.Amount).Float64("balance", outcome.Balance).Msg("Transaction applied")
		} else {
			logger.Warn().Err(outcome.Err).Str("outcomeID", outcome.ID).Msg("Transaction rejected")
		}
	}()

	if err := input.Kind.Validate(); err != nil {
		outcome.Fail(err, err.Error())
		return outcome
	}

	amount, err := ParseAmount(input.Amount)
	if err != nil {
		outcome.Fail(err, MsgInvalidAmount)
		return outcome
	}
	outcome.Amount = amount
	formatted := s.FormatAmount(amount)

	switch input.Kind {
	case models.OperationWithdraw:
		if err := s.account.Debit(amount); err != nil {
			outcome.Fail(err, MsgInsufficientFunds)
			return outcome
		}
		outcome.Succeed(fmt.Sprintf("Successfully withdrew %s", formatted))

	case models.OperationDeposit:
		if err := s.account.Credit(amount); err != nil {
			outcome.Fail(err, MsgInvalidAmount)
			return outcome
		}
		outcome.Succeed(fmt.Sprintf("Successfully deposited %s", formatted))

	case models.OperationTransfer:
		recipient := strings.TrimSpace(input.Recipient)
		outcome.Recipient = recipient
		if !s.account.HasSufficientBalance(amount) {
			outcome.Fail(models.ErrInsufficientFunds, MsgInsufficientForTransfer)
			return outcome
		}
		if recipient == "" {
			outcome.Fail(models.ErrMissingRecipient, MsgMissingRecipient)
			return outcome
		}
		if err := s.account.Debit(amount); err != nil {
			outcome.Fail(err, MsgInsufficientForTransfer)
			return outcome
		}
		outcome.Succeed(fmt.Sprintf("Successfully transferred %s to account %s", formatted, recipient))

	case models.OperationBillPayment:
		outcome.Payee = input.Payee
		if !s.account.HasSufficientBalance(amount) {
			outcome.Fail(models.ErrInsufficientFunds, MsgInsufficientForBill)
			return outcome
		}
		if input.Payee == "" {
			outcome.Fail(models.ErrMissingPayee, MsgMissingPayee)
			return outcome
		}
		if _, err := models.ParsePayee(string(input.Payee)); err != nil {
			outcome.Fail(err, MsgMissingPayee)
			return outcome
		}
		if err := s.account.Debit(amount); err != nil {
			outcome.Fail(err, MsgInsufficientForBill)
			return outcome
		}
		outcome.Succeed(fmt.Sprintf("Successfully paid %s to %s", formatted, input.Payee))
	}

	return outcome
}
