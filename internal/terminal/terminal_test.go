package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/ZanzyTHEbar/atm-go/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *services.SessionClient {
	t.Helper()

	cfg := &internal.Config{}
	cfg.Account.PIN = "12345"
	cfg.Account.OpeningBalance = 100000

	mgr, err := services.NewActorServiceManager(cfg, nil, internal.NopLogger())
	require.NoError(t, err)
	require.NoError(t, mgr.Initialize())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mgr.Shutdown(ctx)
	})
	return mgr.Session()
}

func run(t *testing.T, session *services.SessionClient, lines ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer

	term := New(session, in, &out, Options{Logger: internal.NopLogger()})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, term.Start(ctx))
	return out.String()
}

func TestTerminal_FullSession(t *testing.T) {
	session := newSession(t)

	out := run(t, session,
		"1111",   // wrong PIN
		"12345",  // login
		"2",      // Cash Withdrawal
		"150000", // too much
		"2000",   // ok
		"b",      // back to menu
		"6",      // Pay Bills
		"2",      // Water
		"1200",
		"b",
		"5", // Check Balance
		"",  // back
		"1", // Fast Cash
		"6", // 25,000
		"b",
		"0", // Logout
	)

	assert.Contains(t, out, "! Incorrect PIN. Please try again.")
	assert.Contains(t, out, "-- Main Menu --")
	assert.Contains(t, out, "  2) Cash Withdrawal")
	assert.Contains(t, out, "! Insufficient funds.")
	assert.Contains(t, out, "+ Successfully withdrew ₨2,000")
	assert.Contains(t, out, "+ Successfully paid ₨1,200 to Water")
	assert.Contains(t, out, "Current Balance: ₨96,800")
	assert.Contains(t, out, "  6) ₨25,000")
	assert.Contains(t, out, "+ Successfully withdrew ₨25,000")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "Goodbye."))

	reply, err := session.View(context.Background())
	require.NoError(t, err)
	assert.False(t, reply.View.LoggedIn)
	assert.Zero(t, reply.View.Balance, "balance is hidden once logged out")

	// the account outlives the login
	reply, err = session.Login(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, 71800.0, reply.View.Balance)
}

func TestTerminal_Transfer(t *testing.T) {
	session := newSession(t)

	out := run(t, session,
		"12345",
		"4", // Transfer
		"PK-1001",
		"700",
		"",    // no recipient
		"100", // amount
		"q",
	)

	assert.Contains(t, out, "+ Successfully transferred ₨700 to account PK-1001")
	assert.Contains(t, out, "! Please enter a valid account number.")
	assert.Contains(t, out, "Goodbye.")

	reply, err := session.View(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99300.0, reply.View.Balance)
	assert.True(t, reply.View.LoggedIn, "quitting the terminal does not log out")
}

func TestTerminal_InvalidChoices(t *testing.T) {
	session := newSession(t)

	out := run(t, session,
		"12345",
		"9",
		"menu",
		"1",
		"7",
		"b",
	)

	assert.Equal(t, 3, strings.Count(out, "! Invalid choice."))
}

func TestTerminal_UnknownPayee(t *testing.T) {
	session := newSession(t)

	out := run(t, session,
		"12345",
		"6",
		"Gas",
		"100",
	)

	assert.Contains(t, out, "! Please select a bill payee.")
}

func TestTerminal_StopsOnCancel(t *testing.T) {
	session := newSession(t)

	// a reader that never yields a line
	r, w := io.Pipe()
	defer w.Close()

	term := New(session, r, &bytes.Buffer{}, Options{Logger: internal.NopLogger()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("terminal did not stop")
	}
}
