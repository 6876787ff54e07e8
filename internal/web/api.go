package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/domain/usecases"
	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 16

type loginRequest struct {
	PIN string `json:"pin"`
}

type navigateRequest struct {
	Screen models.Screen `json:"screen"`
}

// formRequest carries the pending input of a form screen; absent fields are left alone
type formRequest struct {
	Amount    *string `json:"amount,omitempty"`
	Recipient *string `json:"recipient,omitempty"`
	Payee     *string `json:"payee,omitempty"`
}

type fastCashRequest struct {
	Amount float64 `json:"amount"`
}

type sessionResponse struct {
	Session usecases.SessionView `json:"session"`
	Outcome *models.Outcome      `json:"outcome,omitempty"`
	Error   string               `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string                  `json:"status"`
	Version string                  `json:"version"`
	Session *interfaces.ServiceInfo `json:"session,omitempty"`
}

type apiHandler struct {
	session interfaces.SessionService
	logger  *internal.Logger
}

func newAPIHandler(session interfaces.SessionService, logger *internal.Logger) *apiHandler {
	return &apiHandler{session: session, logger: logger}
}

func (h *apiHandler) Health(w http.ResponseWriter, r *http.Request) {
	info, err := h.session.Status(r.Context())
	if err != nil {
		h.logger.Warn(internal.ComponentHTTP, "Health check failed: %v", err)
		h.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Version: internal.Version})
		return
	}
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: internal.Version, Session: info})
}

func (h *apiHandler) View(w http.ResponseWriter, r *http.Request) {
	reply, err := h.session.View(r.Context())
	h.reply(w, reply, err)
}

func (h *apiHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	reply, err := h.session.Login(r.Context(), req.PIN)
	h.reply(w, reply, err)
}

func (h *apiHandler) Logout(w http.ResponseWriter, r *http.Request) {
	reply, err := h.session.Logout(r.Context())
	h.reply(w, reply, err)
}

func (h *apiHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !h.decode(w, r, &req) {
		return
	}
	reply, err := h.session.Navigate(r.Context(), req.Screen)
	h.reply(w, reply, err)
}

func (h *apiHandler) Back(w http.ResponseWriter, r *http.Request) {
	reply, err := h.session.Back(r.Context())
	h.reply(w, reply, err)
}

func (h *apiHandler) Input(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if !h.decode(w, r, &req) {
		return
	}
	reply, err := h.session.Input(r.Context(), req.inputs()...)
	h.reply(w, reply, err)
}

func (h *apiHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if !h.decode(w, r, &req) {
		return
	}
	reply, err := h.session.Confirm(r.Context(), req.inputs()...)
	h.reply(w, reply, err)
}

func (h *apiHandler) FastCash(w http.ResponseWriter, r *http.Request) {
	var req fastCashRequest
	if !h.decode(w, r, &req) {
		return
	}
	reply, err := h.session.FastCash(r.Context(), req.Amount)
	h.reply(w, reply, err)
}

func (f formRequest) inputs() []interfaces.Input {
	var inputs []interfaces.Input
	if f.Payee != nil {
		inputs = append(inputs, interfaces.Input{Field: interfaces.InputPayee, Value: *f.Payee})
	}
	if f.Recipient != nil {
		inputs = append(inputs, interfaces.Input{Field: interfaces.InputRecipient, Value: *f.Recipient})
	}
	if f.Amount != nil {
		inputs = append(inputs, interfaces.Input{Field: interfaces.InputAmount, Value: *f.Amount})
	}
	return inputs
}

// decode reads a JSON body into v. An empty body leaves v at its zero value.
func (h *apiHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn(internal.ComponentHTTP, "Bad request body on %s: %v", r.URL.Path, err)
		h.writeJSON(w, http.StatusBadRequest, sessionResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (h *apiHandler) reply(w http.ResponseWriter, reply *interfaces.SessionReply, err error) {
	status := statusFor(err)
	if reply == nil {
		h.logger.Error(internal.ComponentHTTP, "Session request failed: %v", err)
		h.writeJSON(w, status, sessionResponse{Error: err.Error()})
		return
	}

	resp := sessionResponse{Session: reply.View, Outcome: reply.Outcome}
	if err != nil {
		resp.Error = err.Error()
	}
	h.writeJSON(w, status, resp)
}

// statusFor maps session errors onto HTTP status codes. A transaction that
// fails validation is not an HTTP error; its outcome says so.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrNotLoggedIn), errors.Is(err, models.ErrIncorrectPIN):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnknownScreen),
		errors.Is(err, models.ErrUnknownPayee),
		errors.Is(err, models.ErrUnknownInput),
		errors.Is(err, models.ErrNotFastCashOption):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *apiHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(internal.ComponentHTTP, "Error encoding response: %v", err)
	}
}
