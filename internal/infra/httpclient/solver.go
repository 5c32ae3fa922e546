package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/xid"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/jsonview"
	"github.com/aalvaropc/brixbalance/internal/ports"
)

const solvePath = "/api/solve"

// RemoteSolver solves balances by calling POST /api/solve on a brixbalance server.
type RemoteSolver struct {
	endpoint string
	exec     *Executor
	log      *slog.Logger
}

var _ ports.BalanceSolver = (*RemoteSolver)(nil)

// NewRemoteSolver returns a solver for the server at baseURL (scheme and host,
// optionally a path prefix).
func NewRemoteSolver(baseURL string, log *slog.Logger, opts ...ExecutorOption) (*RemoteSolver, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.new",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("server URL %q must be http(s)://host[:port]: %w", baseURL, domain.ErrInvalidConfig),
		}
	}
	u.Path = strings.TrimRight(u.Path, "/") + solvePath

	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &RemoteSolver{endpoint: u.String(), exec: NewExecutor(opts...), log: log}, nil
}

// Solve posts in to the server. Validation failures come back with the
// server's error kind; the returned balance is checked before use.
func (s *RemoteSolver) Solve(ctx context.Context, in domain.Inputs) (domain.Balance, error) {
	const op = "httpclient.solve"

	payload, err := json.Marshal(jsonview.Inputs{
		InitialMassKg:  in.InitialMass,
		InitialPercent: in.InitialPercent,
		TargetPercent:  in.TargetPercent,
	})
	if err != nil {
		return domain.Balance{}, &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Balance{}, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: s.endpoint, Err: err}
	}
	reqID := xid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	resp, err := s.exec.Do(ctx, req)
	if err != nil {
		s.log.Info("remote.failed", "endpoint", s.endpoint, "request_id", reqID, "err", err)
		return domain.Balance{}, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: s.endpoint, Err: err}
	}
	s.log.Debug("remote.response",
		"endpoint", s.endpoint,
		"request_id", reqID,
		"status", resp.Status,
		"latency_ms", resp.Duration.Milliseconds(),
	)

	if resp.Status != http.StatusOK {
		return domain.Balance{}, remoteError(op, s.endpoint, resp)
	}
	if resp.Truncated {
		return domain.Balance{}, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: s.endpoint, Err: errors.New("response body too large")}
	}

	var out jsonview.Balance
	if err := json.Unmarshal(resp.BodyBytes, &out); err != nil {
		return domain.Balance{}, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: s.endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}

	b := domain.Balance{
		Inputs:       in,
		SugarMass:    out.SugarMassKg,
		FinalMass:    out.FinalMassKg,
		InitialWater: out.InitialWaterFraction,
		FinalWater:   out.FinalWaterFraction,
	}
	if err := b.Check(); err != nil {
		return domain.Balance{}, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: s.endpoint, Err: err}
	}
	return b, nil
}

func remoteError(op, endpoint string, resp ResponseData) error {
	var body jsonview.Error
	if err := json.Unmarshal(resp.BodyBytes, &body); err != nil || body.Error.Kind == "" {
		return &domain.OpError{
			Op:   op,
			Kind: domain.KindExecution,
			Path: endpoint,
			Err:  fmt.Errorf("unexpected status %d", resp.Status),
		}
	}

	kind := body.Error.Kind
	return &domain.OpError{
		Op:   op,
		Kind: kind,
		Path: endpoint,
		Err:  remoteCause(kind, body.Error.Message),
	}
}

// remoteCause rebuilds the error chain so errors.Is matches the sentinel for kind.
func remoteCause(kind domain.ErrorKind, msg string) error {
	var sentinel error
	switch kind {
	case domain.KindInvalidInput:
		sentinel = domain.ErrInvalidInput
	case domain.KindInvalidConcentrationOrder:
		sentinel = domain.ErrInvalidConcentrationOrder
	case domain.KindUnreachableTarget:
		sentinel = domain.ErrUnreachableTarget
	case domain.KindInvalidConfig:
		sentinel = domain.ErrInvalidConfig
	case domain.KindNotFound:
		sentinel = domain.ErrNotFound
	default:
		return errors.New(msg)
	}
	if msg == "" || msg == sentinel.Error() {
		return sentinel
	}
	return remoteErr{msg: msg, sentinel: sentinel}
}

type remoteErr struct {
	msg      string
	sentinel error
}

func (e remoteErr) Error() string { return e.msg }
func (e remoteErr) Unwrap() error { return e.sentinel }
