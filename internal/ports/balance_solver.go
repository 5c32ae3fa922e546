package ports

import (
	"context"

	"github.com/aalvaropc/brixbalance/internal/domain"
)

// BalanceSolver solves a sugar/pulp balance. domain.SolveInputs is the canonical
// implementation; remote solvers honour ctx.
type BalanceSolver interface {
	Solve(ctx context.Context, in domain.Inputs) (domain.Balance, error)
}

// SolverFunc adapts a pure function to BalanceSolver.
type SolverFunc func(in domain.Inputs) (domain.Balance, error)

func (f SolverFunc) Solve(_ context.Context, in domain.Inputs) (domain.Balance, error) { return f(in) }
