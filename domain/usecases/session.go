package usecases

import (
	"fmt"
	"strconv"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/google/uuid"
)

// PendingInput holds what the user has typed on the current screen
type PendingInput struct {
	Amount    string       `json:"amount"`
	Recipient string       `json:"recipient"`
	Payee     models.Payee `json:"payee"`
}

// SessionView is a read-only snapshot of a session, enough to render any screen
type SessionView struct {
	SessionID       string          `json:"sessionId"`
	LoggedIn        bool            `json:"loggedIn"`
	Screen          models.Screen   `json:"screen"`
	Title           string          `json:"title"`
	Balance         float64         `json:"balance"`
	BalanceText     string          `json:"balanceText"`
	Pending         PendingInput    `json:"pending"`
	Message         models.Message  `json:"message"`
	MenuScreens     []models.Screen `json:"menuScreens,omitempty"`
	FastCashOptions []float64       `json:"fastCashOptions,omitempty"`
	Payees          []models.Payee  `json:"payees,omitempty"`
}

// SessionOptions configures a Session
type SessionOptions struct {
	CurrencySymbol  string
	FastCashOptions []float64
	Logger          *internal.Logger
}

// Session is the ATM screen state machine. It is not safe for concurrent
// use; the session actor serialises access to it.
type Session struct {
	id       string
	account  *models.Account
	txs      *TransactionService
	screen   models.Screen
	pending  PendingInput
	message  models.Message
	fastCash []float64
	logger   *internal.Logger
}

// NewSession creates a logged out session over account
func NewSession(account *models.Account, opts SessionOptions) *Session {
	if opts.Logger == nil {
		opts.Logger = internal.GetLogger()
	}
	fastCash := opts.FastCashOptions
	if len(fastCash) == 0 {
		fastCash = models.DefaultFastCashOptions
	}
	return &Session{
		id:       uuid.New().String(),
		account:  account,
		txs:      NewTransactionService(account, opts.CurrencySymbol, opts.Logger),
		screen:   models.ScreenLoggedOut,
		fastCash: append([]float64(nil), fastCash...),
		logger:   opts.Logger,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Screen returns the current screen
func (s *Session) Screen() models.Screen {
	return s.screen
}

// LoggedIn reports whether the PIN has been accepted
func (s *Session) LoggedIn() bool {
	return s.screen != models.ScreenLoggedOut
}

// Login moves a logged out session to the main menu when pin matches
func (s *Session) Login(pin string) error {
	logger := s.logger.For(internal.ComponentSession)

	if s.LoggedIn() {
		return fmt.Errorf("login from %s: %w", s.screen, models.ErrInvalidTransition)
	}

	if !s.account.VerifyPIN(pin) {
		s.message = models.ErrorMessage(MsgIncorrectPIN)
		logger.Warn().Str("sessionID", s.id).Msg("Login rejected")
		return models.ErrIncorrectPIN
	}

	s.screen = models.ScreenMain
	s.pending = PendingInput{}
	s.message = models.Message{}
	logger.Info().Str("sessionID", s.id).Msg("Logged in")
	return nil
}

// Logout returns to the login screen from anywhere, dropping pending input and the message
func (s *Session) Logout() {
	s.screen = models.ScreenLoggedOut
	s.pending = PendingInput{}
	s.message = models.Message{}
	logger := s.logger.For(internal.ComponentSession)
	logger.Info().Str("sessionID", s.id).Msg("Logged out")
}

// Navigate opens a menu screen from the main menu
func (s *Session) Navigate(to models.Screen) error {
	if !s.LoggedIn() {
		return models.ErrNotLoggedIn
	}
	if s.screen != models.ScreenMain || !to.IsMenuScreen() {
		return fmt.Errorf("navigate %s -> %s: %w", s.screen, to, models.ErrInvalidTransition)
	}

	s.screen = to
	s.pending = PendingInput{}
	logger := s.logger.For(internal.ComponentSession)
	logger.Debug().Str("sessionID", s.id).Stringer("screen", to).Msg("Navigated")
	return nil
}

// Back returns from a menu screen to the main menu
func (s *Session) Back() error {
	if !s.LoggedIn() {
		return models.ErrNotLoggedIn
	}
	if !s.screen.IsMenuScreen() {
		return fmt.Errorf("back from %s: %w", s.screen, models.ErrInvalidTransition)
	}

	s.screen = models.ScreenMain
	s.pending = PendingInput{}
	return nil
}

// SetAmount records the amount field
func (s *Session) SetAmount(amount string) error {
	if err := s.requireForm(); err != nil {
		return err
	}
	s.pending.Amount = amount
	return nil
}

// SetRecipient records the transfer account number field
func (s *Session) SetRecipient(recipient string) error {
	if err := s.requireForm(); err != nil {
		return err
	}
	if s.screen != models.ScreenTransfer {
		return fmt.Errorf("recipient on %s: %w", s.screen, models.ErrInvalidTransition)
	}
	s.pending.Recipient = recipient
	return nil
}

// SelectPayee records the bill payee selection
func (s *Session) SelectPayee(name string) error {
	if err := s.requireForm(); err != nil {
		return err
	}
	if s.screen != models.ScreenBillPayment {
		return fmt.Errorf("payee on %s: %w", s.screen, models.ErrInvalidTransition)
	}
	payee, err := models.ParsePayee(name)
	if err != nil {
		return err
	}
	s.pending.Payee = payee
	return nil
}

// Confirm applies the current screen's operation to the pending input.
// Pending input is cleared whatever the outcome.
func (s *Session) Confirm() (*models.Outcome, error) {
	if err := s.requireForm(); err != nil {
		return nil, err
	}
	kind, _ := s.screen.Operation()

	outcome := s.txs.Apply(TransactionInput{
		Kind:      kind,
		Amount:    s.pending.Amount,
		Recipient: s.pending.Recipient,
		Payee:     s.pending.Payee,
	})
	s.finish(outcome)
	return outcome, nil
}

// FastCash withdraws one of the preset amounts
func (s *Session) FastCash(amount float64) (*models.Outcome, error) {
	if !s.LoggedIn() {
		return nil, models.ErrNotLoggedIn
	}
	if s.screen != models.ScreenFastCash {
		return nil, fmt.Errorf("fast cash on %s: %w", s.screen, models.ErrInvalidTransition)
	}
	if !models.IsFastCashOption(s.fastCash, amount) {
		return nil, fmt.Errorf("%v: %w", amount, models.ErrNotFastCashOption)
	}

	outcome := s.txs.Apply(TransactionInput{
		Kind:   models.OperationWithdraw,
		Amount: strconv.FormatFloat(amount, 'f', -1, 64),
	})
	s.finish(outcome)
	return outcome, nil
}

// View snapshots the session for rendering
func (s *Session) View() SessionView {
	view := SessionView{
		SessionID: s.id,
		LoggedIn:  s.LoggedIn(),
		Screen:    s.screen,
		Title:     s.screen.Title(),
		Pending:   s.pending,
		Message:   s.message,
	}

	switch s.screen {
	case models.ScreenLoggedOut:
		// balance stays hidden until the PIN is accepted
	case models.ScreenMain:
		view.MenuScreens = append([]models.Screen(nil), models.MenuScreens...)
	case models.ScreenFastCash:
		view.FastCashOptions = append([]float64(nil), s.fastCash...)
	case models.ScreenBillPayment:
		view.Payees = append([]models.Payee(nil), models.Payees...)
	case models.ScreenWithdrawal, models.ScreenDeposit, models.ScreenTransfer, models.ScreenBalance:
	}

	if view.LoggedIn {
		view.Balance = s.account.Balance()
		view.BalanceText = s.txs.FormatAmount(view.Balance)
	}
	return view
}

// Fill runs set against the pending input and rolls it back when set fails,
// so a form is filled either completely or not at all.
func (s *Session) Fill(set func() error) error {
	saved := s.pending
	if err := set(); err != nil {
		s.pending = saved
		return err
	}
	return nil
}

func (s *Session) requireForm() error {
	if !s.LoggedIn() {
		return models.ErrNotLoggedIn
	}
	if _, ok := s.screen.Operation(); !ok {
		return fmt.Errorf("form on %s: %w", s.screen, models.ErrInvalidTransition)
	}
	return nil
}

func (s *Session) finish(outcome *models.Outcome) {
	s.message = outcome.Message
	s.pending = PendingInput{}
}
