package services

import (
	"context"
	"time"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/domain/usecases"
	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/anthdm/hollywood/actor"
)

const SessionServiceName = "session"

// publishTimeout bounds how long the actor waits on the event bus
const publishTimeout = 2 * time.Second

// Messages understood by the session actor. Every one of them is answered
// with an interfaces.SessionReply.
type (
	LoginMsg    struct{ PIN string }
	LogoutMsg   struct{}
	NavigateMsg struct{ Screen models.Screen }
	BackMsg     struct{}
	ViewMsg     struct{}
	InputMsg    struct{ Inputs []interfaces.Input }
	// ConfirmMsg applies Inputs, then confirms the current form
	ConfirmMsg  struct{ Inputs []interfaces.Input }
	FastCashMsg struct{ Amount float64 }
)

// SessionActor owns the single ATM session and handles one UI event at a time
type SessionActor struct {
	BaseActor
	session   *usecases.Session
	publisher interfaces.EventPublisher
}

// NewSessionActor creates the actor around session. A nil publisher drops events.
func NewSessionActor(session *usecases.Session, publisher interfaces.EventPublisher, logger *internal.Logger) *SessionActor {
	if publisher == nil {
		publisher = interfaces.NopPublisher{}
	}
	return &SessionActor{
		BaseActor: NewBaseActor(SessionServiceName, logger),
		session:   session,
		publisher: publisher,
	}
}

// Receive implements the actor.Receiver interface
func (a *SessionActor) Receive(c *actor.Context) {
	switch msg := c.Message().(type) {
	case actor.Started:
		a.markStarted()
		a.logger.Info(internal.ComponentSession, "Session actor started (session %s)", a.session.ID())
		a.publish(interfaces.NewEvent(interfaces.EventTypeStart, SessionServiceName))

	case actor.Stopped:
		a.markStopped()
		a.logger.Info(internal.ComponentSession, "Session actor stopped")
		a.publish(interfaces.NewEvent(interfaces.EventTypeStop, SessionServiceName))

	case LoginMsg:
		err := a.session.Login(msg.PIN)
		event := interfaces.NewEvent(interfaces.EventTypeLogin, SessionServiceName)
		if err != nil {
			event = interfaces.NewEvent(interfaces.EventTypeLoginFailed, SessionServiceName).WithError(err)
		}
		a.publish(event)
		a.respond(c, nil, err)

	case LogoutMsg:
		a.session.Logout()
		a.publish(interfaces.NewEvent(interfaces.EventTypeLogout, SessionServiceName))
		a.respond(c, nil, nil)

	case NavigateMsg:
		err := a.session.Navigate(msg.Screen)
		if err == nil {
			a.publish(interfaces.NewEvent(interfaces.EventTypeNavigate, SessionServiceName).
				WithData("screen", msg.Screen.String()))
		}
		a.respond(c, nil, err)

	case BackMsg:
		err := a.session.Back()
		if err == nil {
			a.publish(interfaces.NewEvent(interfaces.EventTypeNavigate, SessionServiceName).
				WithData("screen", a.session.Screen().String()))
		}
		a.respond(c, nil, err)

	case ViewMsg:
		a.respond(c, nil, nil)

	case InputMsg:
		a.respond(c, nil, a.applyInputs(msg.Inputs))

	case ConfirmMsg:
		if err := a.applyInputs(msg.Inputs); err != nil {
			a.respond(c, nil, err)
			return
		}
		outcome, err := a.session.Confirm()
		a.publishOutcome(outcome)
		a.respond(c, outcome, err)

	case FastCashMsg:
		outcome, err := a.session.FastCash(msg.Amount)
		a.publishOutcome(outcome)
		a.respond(c, outcome, err)

	case StatusRequestMsg:
		c.Respond(StatusResponseMsg{Info: a.info()})

	default:
		a.logger.Debug(internal.ComponentSession, "Ignoring message %T", msg)
	}
}

// applyInputs sets every input or, on the first failure, none of them
func (a *SessionActor) applyInputs(inputs []interfaces.Input) error {
	return a.session.Fill(func() error {
		return a.setInputs(inputs)
	})
}

func (a *SessionActor) setInputs(inputs []interfaces.Input) error {
	for _, in := range inputs {
		var err error
		switch in.Field {
		case interfaces.InputAmount:
			err = a.session.SetAmount(in.Value)
		case interfaces.InputRecipient:
			err = a.session.SetRecipient(in.Value)
		case interfaces.InputPayee:
			err = a.session.SelectPayee(in.Value)
		default:
			err = models.ErrUnknownInput
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *SessionActor) respond(c *actor.Context, outcome *models.Outcome, err error) {
	a.record(err)
	if err != nil {
		a.logger.Debug(internal.ComponentSession, "%T rejected: %v", c.Message(), err)
	}
	c.Respond(&interfaces.SessionReply{
		View:    a.session.View(),
		Outcome: outcome,
		Err:     err,
	})
}

func (a *SessionActor) publishOutcome(outcome *models.Outcome) {
	if outcome == nil {
		return
	}
	eventType := interfaces.EventTypeTransaction
	if !outcome.Success {
		eventType = interfaces.EventTypeTransactionFailed
	}
	a.publish(interfaces.NewEvent(eventType, SessionServiceName).
		WithData("outcome", outcome).
		WithError(outcome.Err))
}

func (a *SessionActor) publish(event *interfaces.Event) {
	event.WithSession(a.session.ID())
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := a.publisher.Publish(ctx, event); err != nil {
		a.logger.Warn(internal.ComponentSession, "Failed to publish %s event: %v", event.Type, err)
	}
}
