package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/jsonview"
	"github.com/aalvaropc/brixbalance/internal/infra/numfmt"
)

// solveRequest uses pointers so omitted fields fall back to the configured defaults.
type solveRequest struct {
	InitialMassKg  *float64 `json:"initial_mass_kg"`
	InitialPercent *float64 `json:"initial_percent"`
	TargetPercent  *float64 `json:"target_percent"`
	Explain        bool     `json:"explain"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) options(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, jsonview.FromOptions(s.uc.Options(), s.precision))
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeJSON(w, http.StatusBadRequest, jsonview.Error{Error: jsonview.ErrorBody{
			Kind:    domain.KindInvalidInput,
			Message: fmt.Sprintf("malformed request body: %v", err),
		}})
		return
	}

	in := s.uc.Defaults()
	if req.InitialMassKg != nil {
		in.InitialMass = *req.InitialMassKg
	}
	if req.InitialPercent != nil {
		in.InitialPercent = *req.InitialPercent
	}
	if req.TargetPercent != nil {
		in.TargetPercent = *req.TargetPercent
	}

	b, err := s.uc.Execute(r.Context(), in)
	if err != nil {
		s.writeJSON(w, statusFor(err), jsonview.FromError(err))
		return
	}

	var format domain.NumberFormat
	if req.Explain {
		p := s.precision
		format = func(v float64) string { return numfmt.Fixed(v, p) }
	}
	s.writeJSON(w, http.StatusOK, jsonview.FromBalance(b, format))
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput,
		domain.KindInvalidConcentrationOrder,
		domain.KindUnreachableTarget:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
