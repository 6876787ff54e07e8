package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/atm-go/internal"
)

const DefaultShutdownTimeout = 5 * time.Second

// Server runs an http.Server until its context is cancelled
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *internal.Logger
	ready           chan net.Addr
}

func NewServer(addr string, handler http.Handler, shutdownTimeout time.Duration, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.GetLogger()
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		ready:           make(chan net.Addr, 1),
	}
}

// Ready yields the bound address once the listener is open
func (s *Server) Ready() <-chan net.Addr {
	return s.ready
}

// Start listens and serves until ctx is done, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	s.logger.Info(internal.ComponentHTTP, "Listening on http://%s", ln.Addr())
	s.ready <- ln.Addr()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(internal.ComponentHTTP, "Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
