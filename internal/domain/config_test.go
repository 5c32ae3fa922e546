package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}

	in := cfg.Inputs.Defaults()
	if in.InitialMass != 50 || in.InitialPercent != 7 || in.TargetPercent != 10 {
		t.Fatalf("unexpected defaults: %+v", in)
	}
	if cfg.Output.Precision != 2 {
		t.Fatalf("expected precision 2, got %d", cfg.Output.Precision)
	}
	if cfg.Inputs.InitialMass.HasMax {
		t.Fatalf("mass should have no upper bound")
	}
}

func TestFieldOptionsValidate(t *testing.T) {
	pct := FieldOptions{Min: 0, Max: 100, HasMax: true, Default: 7, Step: 0.1}

	if err := pct.Validate(0); err != nil {
		t.Fatalf("min should be accepted: %v", err)
	}
	if err := pct.Validate(100); err != nil {
		t.Fatalf("max should be accepted: %v", err)
	}
	if err := pct.Validate(-0.01); err == nil {
		t.Fatalf("expected below-min error")
	}
	if err := pct.Validate(100.01); err == nil {
		t.Fatalf("expected above-max error")
	}
	if err := pct.Validate(math.NaN()); err == nil {
		t.Fatalf("expected NaN to be rejected")
	}

	mass := FieldOptions{Min: 0, Default: 50, Step: 1}
	if err := mass.Validate(1e9); err != nil {
		t.Fatalf("unbounded field should accept large values: %v", err)
	}
}

func TestFieldOptionsStepped(t *testing.T) {
	pct := FieldOptions{Min: 0, Max: 100, HasMax: true, Default: 7, Step: 0.1}

	if got := pct.Stepped(7, 1); got != 7.1 {
		t.Fatalf("expected 7.1, got %v", got)
	}
	if got := pct.Stepped(7, -3); got != 6.7 {
		t.Fatalf("expected 6.7, got %v", got)
	}
	if got := pct.Stepped(99.95, 1); got != 100 {
		t.Fatalf("expected clamp to 100, got %v", got)
	}
	if got := pct.Stepped(0.05, -1); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}

	v := 7.0
	for i := 0; i < 30; i++ {
		v = pct.Stepped(v, 1)
	}
	if v != 10 {
		t.Fatalf("expected repeated steps to land on 10, got %v", v)
	}
}

func TestInputOptionsValidate(t *testing.T) {
	opts := DefaultInputOptions()

	if err := opts.Validate(Inputs{InitialMass: 50, InitialPercent: 7, TargetPercent: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := opts.Validate(Inputs{InitialMass: -5, InitialPercent: 7, TargetPercent: 10})
	if !IsKind(err, KindInvalidInput) || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if !strings.Contains(err.Error(), FieldInitialMass) {
		t.Fatalf("expected field name in error, got %v", err)
	}

	err = opts.Validate(Inputs{InitialMass: 5, InitialPercent: 7, TargetPercent: 120})
	if !strings.Contains(err.Error(), FieldTargetPercent) {
		t.Fatalf("expected target field in error, got %v", err)
	}
}

func TestConfigValidateRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero step", func(c *Config) { c.Inputs.InitialMass.Step = 0 }, "inputs.initial_mass"},
		{"min above max", func(c *Config) { c.Inputs.InitialPercent.Min = 60; c.Inputs.InitialPercent.Max = 50 }, "inputs.initial_percent"},
		{"default out of range", func(c *Config) { c.Inputs.TargetPercent.Default = 120 }, "inputs.target_percent"},
		{"percent max above 100", func(c *Config) { c.Inputs.TargetPercent.Max = 150 }, "inputs.target_percent"},
		{"negative mass min", func(c *Config) { c.Inputs.InitialMass.Min = -1; c.Inputs.InitialMass.Default = 0 }, "inputs.initial_mass"},
		{"precision", func(c *Config) { c.Output.Precision = 11 }, "output.precision"},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"empty log dir", func(c *Config) { c.Log.Dir = "" }, "log.dir"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected %q in error, got %v", c.want, err)
			}
		})
	}
}
