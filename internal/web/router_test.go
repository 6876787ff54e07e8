package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/ZanzyTHEbar/atm-go/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &internal.Config{}
	cfg.Account.PIN = "12345"
	cfg.Account.OpeningBalance = 100000
	cfg.Currency.Symbol = "₨"

	mgr, err := services.NewActorServiceManager(cfg, nil, internal.NopLogger())
	require.NoError(t, err)
	require.NoError(t, mgr.Initialize())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mgr.Shutdown(ctx)
	})

	router, err := NewRouter(mgr.Session(), Options{CurrencySymbol: "₨", Logger: internal.NopLogger()})
	require.NoError(t, err)
	return router
}

type apiResult struct {
	Session struct {
		LoggedIn bool    `json:"loggedIn"`
		Screen   string  `json:"screen"`
		Balance  float64 `json:"balance"`
		Message  struct {
			Text string `json:"text"`
			Kind string `json:"kind"`
		} `json:"message"`
	} `json:"session"`
	Outcome *struct {
		Success bool    `json:"success"`
		Amount  float64 `json:"amount"`
		Balance float64 `json:"balance"`
	} `json:"outcome"`
	Error string `json:"error"`
}

func call(t *testing.T, h http.Handler, method, path, body string) (int, apiResult) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var res apiResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res), rec.Body.String())
	return rec.Code, res
}

func TestAPI_SessionFlow(t *testing.T) {
	h := newTestRouter(t)

	code, res := call(t, h, http.MethodGet, "/api/v1/session", "")
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, res.Session.LoggedIn)
	assert.Equal(t, "loggedOut", res.Session.Screen)

	code, _ = call(t, h, http.MethodPost, "/api/v1/session/navigate", `{"screen":"deposit"}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, res = call(t, h, http.MethodPost, "/api/v1/session/login", `{"pin":"1111"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Incorrect PIN. Please try again.", res.Session.Message.Text)

	code, res = call(t, h, http.MethodPost, "/api/v1/session/login", `{"pin":"12345"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "main", res.Session.Screen)

	code, res = call(t, h, http.MethodPost, "/api/v1/session/navigate", `{"screen":"withdrawal"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "withdrawal", res.Session.Screen)

	code, _ = call(t, h, http.MethodPost, "/api/v1/session/navigate", `{"screen":"deposit"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, res = call(t, h, http.MethodPost, "/api/v1/session/confirm", `{"amount":"150000"}`)
	require.Equal(t, http.StatusOK, code, "a declined transaction is not an HTTP error")
	require.NotNil(t, res.Outcome)
	assert.False(t, res.Outcome.Success)
	assert.Equal(t, "Insufficient funds.", res.Session.Message.Text)
	assert.Equal(t, "error", res.Session.Message.Kind)

	code, res = call(t, h, http.MethodPost, "/api/v1/session/confirm", `{"amount":"2000"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, res.Outcome.Success)
	assert.Equal(t, 98000.0, res.Outcome.Balance)
	assert.Equal(t, "Successfully withdrew ₨2,000", res.Session.Message.Text)

	code, res = call(t, h, http.MethodPost, "/api/v1/session/back", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "main", res.Session.Screen)

	code, res = call(t, h, http.MethodPost, "/api/v1/session/logout", "")
	require.Equal(t, http.StatusOK, code)
	assert.False(t, res.Session.LoggedIn)
	assert.Empty(t, res.Session.Message.Text)
}

func TestAPI_BillPaymentWithInput(t *testing.T) {
	h := newTestRouter(t)
	call(t, h, http.MethodPost, "/api/v1/session/login", `{"pin":"12345"}`)
	call(t, h, http.MethodPost, "/api/v1/session/navigate", `{"screen":"billPayment"}`)

	code, _ := call(t, h, http.MethodPost, "/api/v1/session/input", `{"payee":"Gas"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, h, http.MethodPost, "/api/v1/session/input", `{"payee":"Electricity"}`)
	require.Equal(t, http.StatusOK, code)

	code, res := call(t, h, http.MethodPost, "/api/v1/session/confirm", `{"amount":"4500"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, res.Outcome.Success)
	assert.Equal(t, "Successfully paid ₨4,500 to Electricity", res.Session.Message.Text)
	assert.Equal(t, 95500.0, res.Session.Balance)
}

func TestAPI_HugeDepositKeepsResponsesEncodable(t *testing.T) {
	h := newTestRouter(t)
	call(t, h, http.MethodPost, "/api/v1/session/login", `{"pin":"12345"}`)
	call(t, h, http.MethodPost, "/api/v1/session/navigate", `{"screen":"deposit"}`)

	code, res := call(t, h, http.MethodPost, "/api/v1/session/confirm", `{"amount":"1e308"}`)
	require.Equal(t, http.StatusOK, code)
	require.True(t, res.Outcome.Success)

	code, res = call(t, h, http.MethodPost, "/api/v1/session/confirm", `{"amount":"1e308"}`)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, res.Outcome.Success)
	assert.Equal(t, "Please enter a valid amount.", res.Session.Message.Text)

	code, res = call(t, h, http.MethodGet, "/api/v1/session", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 100000+1e308, res.Session.Balance)
}

func TestAPI_FastCash(t *testing.T) {
	h := newTestRouter(t)
	call(t, h, http.MethodPost, "/api/v1/session/login", `{"pin":"12345"}`)

	code, _ := call(t, h, http.MethodPost, "/api/v1/session/fastcash", `{"amount":1000}`)
	assert.Equal(t, http.StatusConflict, code)

	call(t, h, http.MethodPost, "/api/v1/session/navigate", `{"screen":"fastCash"}`)

	code, _ = call(t, h, http.MethodPost, "/api/v1/session/fastcash", `{"amount":1234}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, res := call(t, h, http.MethodPost, "/api/v1/session/fastcash", `{"amount":5000}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, res.Outcome.Success)
	assert.Equal(t, 95000.0, res.Session.Balance)
}

func TestAPI_BadRequests(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/api/v1/session/login", `{"pin":`},
		{"unknown field", "/api/v1/session/login", `{"password":"12345"}`},
		{"unknown screen", "/api/v1/session/navigate", `{"screen":"loans"}`},
		{"amount is not a number", "/api/v1/session/fastcash", `{"amount":"lots"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, res := call(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, res.Error)
		})
	}
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Status  string `json:"status"`
		Session struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"session"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, services.SessionServiceName, res.Session.Name)
	assert.Equal(t, "RUNNING", res.Session.Status)
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func getPage(t *testing.T, h http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	return rec.Body.String()
}

func TestPage_FormFlow(t *testing.T) {
	h := newTestRouter(t)

	page := getPage(t, h)
	assert.Contains(t, page, "Enter PIN")
	assert.Contains(t, page, "BANK AL-BADAR ATM")
	assert.Contains(t, page, "header { background: #16a34a;", "bank header is green")

	postForm(t, h, "/login", url.Values{"pin": {"999"}})
	assert.Contains(t, getPage(t, h), "Incorrect PIN. Please try again.")

	postForm(t, h, "/login", url.Values{"pin": {"12345"}})
	page = getPage(t, h)
	for _, screen := range models.MenuScreens {
		assert.Contains(t, page, screen.Title())
	}
	assert.Contains(t, page, "Logout")

	postForm(t, h, "/navigate", url.Values{"screen": {"fastCash"}})
	page = getPage(t, h)
	assert.Contains(t, page, "₨1,000")
	assert.Contains(t, page, "₨25,000")

	postForm(t, h, "/fastcash", url.Values{"amount": {"1000"}})
	assert.Contains(t, getPage(t, h), "Successfully withdrew ₨1,000")

	postForm(t, h, "/back", nil)
	postForm(t, h, "/navigate", url.Values{"screen": {"transfer"}})
	page = getPage(t, h)
	assert.Contains(t, page, "Enter account number")
	assert.Contains(t, page, "Confirm Transfer")

	postForm(t, h, "/confirm", url.Values{"amount": {"500"}, "recipient": {"PK-77"}})
	assert.Contains(t, getPage(t, h), "Successfully transferred ₨500 to account PK-77")

	postForm(t, h, "/back", nil)
	postForm(t, h, "/navigate", url.Values{"screen": {"balance"}})
	page = getPage(t, h)
	assert.Contains(t, page, "Current Balance")
	assert.Contains(t, page, "₨98,500")

	postForm(t, h, "/logout", nil)
	assert.Contains(t, getPage(t, h), "Enter PIN")
}

func TestPage_BillPaymentNeedsPayee(t *testing.T) {
	h := newTestRouter(t)
	postForm(t, h, "/login", url.Values{"pin": {"12345"}})
	postForm(t, h, "/navigate", url.Values{"screen": {"billPayment"}})

	page := getPage(t, h)
	assert.Contains(t, page, "Select bill payee")
	for _, payee := range models.Payees {
		assert.Contains(t, page, string(payee))
	}

	postForm(t, h, "/confirm", url.Values{"amount": {"100"}, "payee": {""}})
	assert.Contains(t, getPage(t, h), "Please select a bill payee.")
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := NewServer("127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), time.Second, internal.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	var addr string
	select {
	case a := <-srv.Ready():
		addr = a.String()
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
