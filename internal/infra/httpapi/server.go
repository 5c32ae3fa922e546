// Package httpapi exposes the balance solver over a small JSON HTTP API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/jsonview"
	"github.com/aalvaropc/brixbalance/internal/usecase"
)

const (
	maxBodyBytes    = 1 << 16
	shutdownTimeout = 5 * time.Second
)

// Server serves the JSON API.
type Server struct {
	uc        *usecase.SolveBalance
	precision int
	log       *slog.Logger
	router    *mux.Router
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPrecision sets the decimals used in explanation steps.
func WithPrecision(p int) Option {
	return func(s *Server) { s.precision = p }
}

func New(uc *usecase.SolveBalance, opts ...Option) *Server {
	s := &Server{
		uc:        uc,
		precision: 2,
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.Use(s.requestID, s.logRequests)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	r.HandleFunc("/api/options", s.options).Methods(http.MethodGet)
	r.HandleFunc("/api/solve", s.solve).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusNotFound, jsonview.Error{Error: jsonview.ErrorBody{Kind: domain.KindNotFound, Message: "no such endpoint"}})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusMethodNotAllowed, jsonview.Error{Error: jsonview.ErrorBody{Kind: domain.KindInvalidInput, Message: "method not allowed"}})
	})
	s.router = r

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on l until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()

	s.log.Info("http.listening", "addr", l.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return &domain.OpError{Op: "httpapi.serve", Kind: domain.KindExecution, Err: err}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("http.shutdown")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return &domain.OpError{Op: "httpapi.shutdown", Kind: domain.KindExecution, Err: err}
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve. ready, when non-nil,
// receives the bound address once the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return &domain.OpError{Op: "httpapi.listen", Kind: domain.KindExecution, Err: err}
	}
	if ready != nil {
		ready(l.Addr())
	}
	return s.Serve(ctx, l)
}

// writeJSON encodes v in full before the status line is written. A value that
// cannot be encoded is answered with a 500 error body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.log.Error("http.encode_failed", "status", status, "err", err)

		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(jsonview.Error{Error: jsonview.ErrorBody{
			Kind:    domain.KindExecution,
			Message: "response could not be encoded",
		}})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Debug("http.write_failed", "err", err)
	}
}
