package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/ports"
)

type SolveBalance struct {
	solver  ports.BalanceSolver
	options domain.InputOptions
	log     *slog.Logger
}

type SolveOption func(*SolveBalance)

func WithLogger(l *slog.Logger) SolveOption {
	return func(uc *SolveBalance) {
		if l != nil {
			uc.log = l
		}
	}
}

func WithSolver(s ports.BalanceSolver) SolveOption {
	return func(uc *SolveBalance) {
		if s != nil {
			uc.solver = s
		}
	}
}

func NewSolveBalance(options domain.InputOptions, opts ...SolveOption) *SolveBalance {
	uc := &SolveBalance{
		solver:  ports.SolverFunc(domain.SolveInputs),
		options: options,
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Options returns the input options the use case validates against.
func (uc *SolveBalance) Options() domain.InputOptions {
	return uc.options
}

// Defaults returns the configured default inputs.
func (uc *SolveBalance) Defaults() domain.Inputs {
	return uc.options.Defaults()
}

// Execute checks in against the configured field bounds and solves the balance.
// On failure it returns a zero Balance; callers must not render numbers.
func (uc *SolveBalance) Execute(ctx context.Context, in domain.Inputs) (domain.Balance, error) {
	if err := ctx.Err(); err != nil {
		return domain.Balance{}, err
	}

	if err := uc.options.Validate(in); err != nil {
		uc.log.Info("balance.rejected",
			"stage", "options",
			"initial_mass", in.InitialMass,
			"initial_percent", in.InitialPercent,
			"target_percent", in.TargetPercent,
			"err", err,
		)
		return domain.Balance{}, err
	}

	b, err := uc.solver.Solve(ctx, in)
	if err != nil {
		uc.log.Info("balance.rejected",
			"stage", "solve",
			"kind", string(domain.KindOf(err)),
			"initial_mass", in.InitialMass,
			"initial_percent", in.InitialPercent,
			"target_percent", in.TargetPercent,
			"err", err,
		)
		return domain.Balance{}, err
	}

	uc.log.Debug("balance.solved",
		"initial_mass", in.InitialMass,
		"initial_percent", in.InitialPercent,
		"target_percent", in.TargetPercent,
		"sugar_mass", b.SugarMass,
		"final_mass", b.FinalMass,
	)
	return b, nil
}
