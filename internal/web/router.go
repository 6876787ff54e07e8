package web

import (
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options configures the router
type Options struct {
	CurrencySymbol string
	Logger         *internal.Logger
}

// NewRouter mounts the HTML page, the JSON API and the health check
func NewRouter(session interfaces.SessionService, opts Options) (*chi.Mux, error) {
	if opts.Logger == nil {
		opts.Logger = internal.GetLogger()
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = models.DefaultCurrencySymbol
	}

	page, err := newPageHandler(session, opts.CurrencySymbol, opts.Logger)
	if err != nil {
		return nil, err
	}
	api := newAPIHandler(session, opts.Logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withRequestLog(opts.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", api.Health)

	r.Get("/", page.Render)
	r.Post("/login", page.Login)
	r.Post("/logout", page.Logout)
	r.Post("/navigate", page.Navigate)
	r.Post("/back", page.Back)
	r.Post("/confirm", page.Confirm)
	r.Post("/fastcash", page.FastCash)

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Get("/", api.View)
		r.Post("/login", api.Login)
		r.Post("/logout", api.Logout)
		r.Post("/navigate", api.Navigate)
		r.Post("/back", api.Back)
		r.Post("/input", api.Input)
		r.Post("/confirm", api.Confirm)
		r.Post("/fastcash", api.FastCash)
	})

	return r, nil
}

func withRequestLog(logger *internal.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log := logger.For(internal.ComponentHTTP)
			log.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
