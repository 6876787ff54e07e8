package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind classifies the footer message for presentation
type MessageKind string

const (
	MessageNone    MessageKind = ""
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the text shown in the ATM footer
type Message struct {
	Text string      `json:"text"`
	Kind MessageKind `json:"kind"`
}

// SuccessMessage builds a success footer message
func SuccessMessage(text string) Message {
	return Message{Text: text, Kind: MessageSuccess}
}

// ErrorMessage builds an error footer message
func ErrorMessage(text string) Message {
	return Message{Text: text, Kind: MessageError}
}

// IsZero reports whether there is nothing to show
func (m Message) IsZero() bool {
	return m.Text == ""
}

// Outcome is the result of a single transaction attempt
type Outcome struct {
	ID        string        `json:"id"`
	Kind      OperationKind `json:"kind"`
	Amount    float64       `json:"amount,omitempty"`
	Recipient string        `json:"recipient,omitempty"`
	Payee     Payee         `json:"payee,omitempty"`
	Balance   float64       `json:"balance"`
	Message   Message       `json:"message"`
	Success   bool          `json:"success"`
	Err       error         `json:"-"`
	At        time.Time     `json:"at"`
}

// NewOutcome creates an outcome for kind stamped with a fresh ID
func NewOutcome(kind OperationKind) *Outcome {
	return &Outcome{
		ID:   uuid.New().String(),
		Kind: kind,
		At:   time.Now(),
	}
}

// Succeed marks the outcome successful with text as its message
func (o *Outcome) Succeed(text string) {
	o.Success = true
	o.Err = nil
	o.Message = SuccessMessage(text)
}

// Fail marks the outcome failed; err carries the domain cause and text the
// message shown to the user.
func (o *Outcome) Fail(err error, text string) {
	o.Success = false
	o.Err = err
	o.Message = ErrorMessage(text)
}
