// Package terminal drives the ATM session from a line-oriented text console.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/domain/usecases"
	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
)

const (
	banner   = "BANK AL-BADAR ATM"
	quitKey  = "q"
	backKey  = "b"
	logoutNo = 0
)

// errQuit ends the loop without an error
var errQuit = errors.New("quit")

type Options struct {
	CurrencySymbol string
	Logger         *internal.Logger
}

// Terminal renders the current screen, reads one line of input and turns it
// into a session request, until the input ends or the user quits.
type Terminal struct {
	session interfaces.SessionService
	in      io.Reader
	out     io.Writer
	symbol  string
	logger  *internal.Logger

	lines chan string
}

func New(session interfaces.SessionService, in io.Reader, out io.Writer, opts Options) *Terminal {
	if opts.Logger == nil {
		opts.Logger = internal.GetLogger()
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = models.DefaultCurrencySymbol
	}
	return &Terminal{
		session: session,
		in:      in,
		out:     out,
		symbol:  opts.CurrencySymbol,
		logger:  opts.Logger,
	}
}

// Start runs the terminal until EOF, "q" or ctx is cancelled
func (t *Terminal) Start(ctx context.Context) error {
	t.lines = make(chan string)
	go t.scan(ctx)

	for {
		reply, err := t.session.View(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetching session view: %w", err)
		}
		t.render(reply.View)

		err = t.step(ctx, reply.View)
		switch {
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			fmt.Fprintln(t.out, "Goodbye.")
			return nil
		case ctx.Err() != nil:
			return nil
		case err != nil:
			t.logger.Debug(internal.ComponentTerminal, "Action rejected: %v", err)
		}
	}
}

func (t *Terminal) scan(ctx context.Context) {
	defer close(t.lines)
	scanner := bufio.NewScanner(t.in)
	for scanner.Scan() {
		select {
		case t.lines <- strings.TrimSpace(scanner.Text()):
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		t.logger.Warn(internal.ComponentTerminal, "Reading input: %v", err)
	}
}

// prompt prints label and waits for the next line
func (t *Terminal) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)
	select {
	case line, ok := <-t.lines:
		if !ok {
			fmt.Fprintln(t.out)
			return "", io.EOF
		}
		if strings.EqualFold(line, quitKey) {
			return "", errQuit
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (t *Terminal) render(view usecases.SessionView) {
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "==== %s ====\n", banner)
	fmt.Fprintf(t.out, "-- %s --\n", view.Title)

	switch view.Screen {
	case models.ScreenMain:
		for i, screen := range view.MenuScreens {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, screen.Title())
		}
		fmt.Fprintf(t.out, "  %d) Logout\n", logoutNo)
	case models.ScreenFastCash:
		for i, amount := range view.FastCashOptions {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, models.FormatAmount(t.symbol, amount))
		}
		fmt.Fprintf(t.out, "  %s) Back\n", backKey)
	case models.ScreenBalance:
		fmt.Fprintf(t.out, "  Current Balance: %s\n", view.BalanceText)
	case models.ScreenBillPayment:
		for i, payee := range view.Payees {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, payee)
		}
	}

	if !view.Message.IsZero() {
		marker := "+"
		if view.Message.Kind == models.MessageError {
			marker = "!"
		}
		fmt.Fprintf(t.out, "%s %s\n", marker, view.Message.Text)
	}
}

// step reads the input the current screen needs and sends it to the session
func (t *Terminal) step(ctx context.Context, view usecases.SessionView) error {
	switch view.Screen {
	case models.ScreenLoggedOut:
		pin, err := t.prompt(ctx, "Enter PIN (q to quit)")
		if err != nil {
			return err
		}
		_, err = t.session.Login(ctx, pin)
		return err

	case models.ScreenMain:
		n, err := t.choose(ctx, "Choose an option", logoutNo, len(view.MenuScreens))
		if err != nil {
			return err
		}
		if n == logoutNo {
			_, err = t.session.Logout(ctx)
			return err
		}
		_, err = t.session.Navigate(ctx, view.MenuScreens[n-1])
		return err

	case models.ScreenFastCash:
		line, err := t.prompt(ctx, "Choose an amount")
		if err != nil {
			return err
		}
		if strings.EqualFold(line, backKey) {
			_, err = t.session.Back(ctx)
			return err
		}
		n, err := t.parseChoice(line, 1, len(view.FastCashOptions))
		if err != nil {
			return err
		}
		_, err = t.session.FastCash(ctx, view.FastCashOptions[n-1])
		return err

	case models.ScreenBalance:
		if _, err := t.prompt(ctx, "Press enter to go back"); err != nil {
			return err
		}
		_, err := t.session.Back(ctx)
		return err

	default:
		return t.form(ctx, view)
	}
}

// form collects the fields of an amount screen, then confirms. "b" at any
// field goes back to the main menu.
func (t *Terminal) form(ctx context.Context, view usecases.SessionView) error {
	var inputs []interfaces.Input
	ask := func(label string, field interfaces.InputField) (bool, error) {
		line, err := t.prompt(ctx, label+" (b to go back)")
		if err != nil {
			return false, err
		}
		if strings.EqualFold(line, backKey) {
			_, err = t.session.Back(ctx)
			return false, err
		}
		inputs = append(inputs, interfaces.Input{Field: field, Value: line})
		return true, nil
	}

	if view.Screen == models.ScreenBillPayment {
		line, err := t.prompt(ctx, "Select bill payee (b to go back)")
		if err != nil {
			return err
		}
		if strings.EqualFold(line, backKey) {
			_, err = t.session.Back(ctx)
			return err
		}
		payee := line
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(view.Payees) {
			payee = string(view.Payees[n-1])
		}
		inputs = append(inputs, interfaces.Input{Field: interfaces.InputPayee, Value: payee})
	}

	if view.Screen == models.ScreenTransfer {
		if ok, err := ask("Enter account number", interfaces.InputRecipient); !ok {
			return err
		}
	}

	if ok, err := ask("Enter amount", interfaces.InputAmount); !ok {
		return err
	}

	_, err := t.session.Confirm(ctx, inputs...)
	if errors.Is(err, models.ErrUnknownPayee) {
		fmt.Fprintln(t.out, "! Please select a bill payee.")
	}
	return err
}

func (t *Terminal) choose(ctx context.Context, label string, lo, hi int) (int, error) {
	line, err := t.prompt(ctx, label)
	if err != nil {
		return 0, err
	}
	return t.parseChoice(line, lo, hi)
}

func (t *Terminal) parseChoice(line string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(line)
	if err != nil || n < lo || n > hi {
		fmt.Fprintln(t.out, "! Invalid choice.")
		return 0, fmt.Errorf("invalid choice %q", line)
	}
	return n, nil
}
