package interfaces

import (
	"context"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/domain/usecases"
)

// InputField names one of the pending input fields of a form screen
type InputField string

const (
	InputAmount    InputField = "amount"
	InputRecipient InputField = "recipient"
	InputPayee     InputField = "payee"
)

// Input is a single field update
type Input struct {
	Field InputField
	Value string
}

// SessionReply is what every session request gets back: the view after the
// request was handled and, for transactions, the outcome.
type SessionReply struct {
	View    usecases.SessionView
	Outcome *models.Outcome
	Err     error
}

// SessionService drives the ATM session. Each method returns the reply and
// the domain error (if any) as the error, so callers that only care about
// failure can ignore the reply.
type SessionService interface {
	View(ctx context.Context) (*SessionReply, error)
	Login(ctx context.Context, pin string) (*SessionReply, error)
	Logout(ctx context.Context) (*SessionReply, error)
	Navigate(ctx context.Context, screen models.Screen) (*SessionReply, error)
	Back(ctx context.Context) (*SessionReply, error)
	Input(ctx context.Context, inputs ...Input) (*SessionReply, error)
	Confirm(ctx context.Context, inputs ...Input) (*SessionReply, error)
	FastCash(ctx context.Context, amount float64) (*SessionReply, error)
	Status(ctx context.Context) (*ServiceInfo, error)
}
