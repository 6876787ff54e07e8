package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/domain/usecases"
	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
)

const (
	bankName = "BANK AL-BADAR"
	tagline  = "Your Complete Internet Banking Solution"
)

//go:embed templates/atm.html
var templates embed.FS

type pageData struct {
	Bank    string
	Tagline string
	View    usecases.SessionView
}

// pageHandler serves the ATM as a plain HTML page. Every button is a form post
// that updates the session and redirects back to GET /.
type pageHandler struct {
	session interfaces.SessionService
	tmpl    *template.Template
	logger  *internal.Logger
}

func newPageHandler(session interfaces.SessionService, symbol string, logger *internal.Logger) (*pageHandler, error) {
	tmpl, err := template.New("atm.html").Funcs(template.FuncMap{
		"money": func(amount float64) string { return models.FormatAmount(symbol, amount) },
	}).ParseFS(templates, "templates/atm.html")
	if err != nil {
		return nil, err
	}
	return &pageHandler{session: session, tmpl: tmpl, logger: logger}, nil
}

func (h *pageHandler) Render(w http.ResponseWriter, r *http.Request) {
	reply, err := h.session.View(r.Context())
	if err != nil {
		h.logger.Error(internal.ComponentHTTP, "Error fetching session view: %v", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, pageData{Bank: bankName, Tagline: tagline, View: reply.View}); err != nil {
		h.logger.Error(internal.ComponentHTTP, "Error rendering page: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (h *pageHandler) Login(w http.ResponseWriter, r *http.Request) {
	_, err := h.session.Login(r.Context(), r.PostFormValue("pin"))
	h.done(w, r, err)
}

func (h *pageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	_, err := h.session.Logout(r.Context())
	h.done(w, r, err)
}

func (h *pageHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	screen, err := models.ParseScreen(r.PostFormValue("screen"))
	if err == nil {
		_, err = h.session.Navigate(r.Context(), screen)
	}
	h.done(w, r, err)
}

func (h *pageHandler) Back(w http.ResponseWriter, r *http.Request) {
	_, err := h.session.Back(r.Context())
	h.done(w, r, err)
}

func (h *pageHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.done(w, r, err)
		return
	}

	var inputs []interfaces.Input
	for _, field := range []interfaces.InputField{interfaces.InputPayee, interfaces.InputRecipient, interfaces.InputAmount} {
		if values, ok := r.PostForm[string(field)]; ok && len(values) > 0 {
			inputs = append(inputs, interfaces.Input{Field: field, Value: values[0]})
		}
	}

	_, err := h.session.Confirm(r.Context(), inputs...)
	h.done(w, r, err)
}

func (h *pageHandler) FastCash(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("amount")), 64)
	if err == nil {
		_, err = h.session.FastCash(r.Context(), amount)
	}
	h.done(w, r, err)
}

// done redirects back to the page. Rejected actions leave the session as it
// was, so the page simply shows the unchanged screen.
func (h *pageHandler) done(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.logger.Debug(internal.ComponentHTTP, "%s %s rejected: %v", r.Method, r.URL.Path, err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
