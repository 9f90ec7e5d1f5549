package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goliatone/go-company-repository/internal/logger"
)

// Server runs the router until its context is cancelled.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	log             *logger.Logger
}

func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout, shutdownTimeout time.Duration, log *logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		shutdownTimeout: shutdownTimeout,
		log:             log,
	}
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.log.Info("http server shutting down")
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
