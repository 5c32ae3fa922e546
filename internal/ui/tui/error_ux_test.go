package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aalvaropc/brixbalance/internal/domain"
)

func TestUserMessage(t *testing.T) {
	_, orderErr := domain.Solve(10, 12, 10)
	_, unreachErr := domain.Solve(10, 12, 100)
	_, massErr := domain.Solve(-1, 7, 10)

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"order", orderErr, "Target concentration must be higher than the initial concentration"},
		{"unreachable", unreachErr, "A 100% target cannot be reached by adding sugar"},
		{"negative mass", massErr, "Initial mass is out of range"},
		{"bounds", domain.DefaultInputOptions().Validate(domain.Inputs{InitialMass: 1, InitialPercent: 7, TargetPercent: 120}), "Target concentration is out of range"},
		{"config not found", &domain.OpError{Op: "configfinder.findroot", Kind: domain.KindNotFound, Err: domain.ErrNotFound}, "brix.yaml not found"},
		{"yaml line", &domain.OpError{Op: "config.parse", Kind: domain.KindInvalidConfig, Path: "/x/brix.yaml", Err: errors.New("yaml: line 4: did not find expected key")}, "Invalid YAML at brix.yaml line 4"},
		{"invalid options", &domain.OpError{Op: "config.map", Kind: domain.KindInvalidConfig, Err: fmt.Errorf("inputs.initial_mass: step must be positive: %w", domain.ErrInvalidConfig)}, "Invalid config"},
		{"execution", &domain.OpError{Op: "x", Kind: domain.KindExecution, Err: errors.New("boom")}, "Unexpected error (see logs)"},
		{"plain yaml", errors.New("yaml: line 2: mapping values are not allowed"), "Invalid YAML line 2"},
		{"plain", errors.New("boom"), "Unexpected error (see logs)"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := userMessage(c.err); got != c.want {
				t.Fatalf("userMessage() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestClampString(t *testing.T) {
	if got := clampString("abcdef", 3); got != "abc…" {
		t.Fatalf("got %q", got)
	}
	if got := clampString("ab", 3); got != "ab" {
		t.Fatalf("got %q", got)
	}
	if got := clampString("ab", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}
