package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// FieldOptions bounds a numeric input field. Max is only enforced when HasMax is set.
type FieldOptions struct {
	Min     float64
	Max     float64
	HasMax  bool
	Default float64
	Step    float64
}

// InputOptions holds the options of the three balance inputs.
type InputOptions struct {
	InitialMass    FieldOptions
	InitialPercent FieldOptions
	TargetPercent  FieldOptions
}

// Config represents the brixbalance configuration loaded from brix.yaml.
type Config struct {
	Inputs InputOptions
	Output OutputConfig
	Server ServerConfig
	Log    LogConfig
}

type OutputConfig struct {
	Precision int
}

type ServerConfig struct {
	Addr string
}

// LogConfig selects the log level and the directory of brix.log. A relative
// Dir is resolved against the config root.
type LogConfig struct {
	Level string
	Dir   string
}

const maxPrecision = 10

var logLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig provides sane defaults if brix.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Inputs: DefaultInputOptions(),
		Output: OutputConfig{Precision: 2},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Log:    LogConfig{Level: "info", Dir: ".brix/logs"},
	}
}

// DefaultInputOptions mirrors the form the calculator has always shipped with:
// 50 kg of pulp at 7 °Brix raised to 10 °Brix.
func DefaultInputOptions() InputOptions {
	return InputOptions{
		InitialMass:    FieldOptions{Min: 0, Default: 50, Step: 1},
		InitialPercent: FieldOptions{Min: 0, Max: 100, HasMax: true, Default: 7, Step: 0.1},
		TargetPercent:  FieldOptions{Min: 0, Max: 100, HasMax: true, Default: 10, Step: 0.1},
	}
}

// Defaults returns the default value of each field as Inputs.
func (o InputOptions) Defaults() Inputs {
	return Inputs{
		InitialMass:    o.InitialMass.Default,
		InitialPercent: o.InitialPercent.Default,
		TargetPercent:  o.TargetPercent.Default,
	}
}

// Validate checks every field of in against its options.
func (o InputOptions) Validate(in Inputs) error {
	const op = "domain.inputs.validate"

	if err := o.InitialMass.Validate(in.InitialMass); err != nil {
		return invalidInput(op, FieldInitialMass, err.Error())
	}
	if err := o.InitialPercent.Validate(in.InitialPercent); err != nil {
		return invalidInput(op, FieldInitialPercent, err.Error())
	}
	if err := o.TargetPercent.Validate(in.TargetPercent); err != nil {
		return invalidInput(op, FieldTargetPercent, err.Error())
	}
	return nil
}

// Validate reports whether v is within the field bounds.
func (f FieldOptions) Validate(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("must be a finite number")
	}
	if v < f.Min {
		return fmt.Errorf("%g is below the minimum %g", v, f.Min)
	}
	if f.HasMax && v > f.Max {
		return fmt.Errorf("%g is above the maximum %g", v, f.Max)
	}
	return nil
}

// Clamp returns v limited to the field bounds.
func (f FieldOptions) Clamp(v float64) float64 {
	if v < f.Min {
		v = f.Min
	}
	if f.HasMax && v > f.Max {
		v = f.Max
	}
	return v
}

// Stepped moves v by n steps and clamps the result. The result is rounded to
// the step's grid so repeated stepping does not accumulate float error.
func (f FieldOptions) Stepped(v float64, n int) float64 {
	if f.Step <= 0 {
		return f.Clamp(v)
	}
	next := v + float64(n)*f.Step
	next = math.Round(next/f.Step) * f.Step
	// Drop the noise left by multiplying back onto the grid (0.1*71 = 7.1000000000000005).
	next = math.Round(next*1e9) / 1e9
	return f.Clamp(next)
}

// Validate rejects inconsistent options.
func (c Config) Validate() error {
	fields := []struct {
		name string
		opts FieldOptions
	}{
		{FieldInitialMass, c.Inputs.InitialMass},
		{FieldInitialPercent, c.Inputs.InitialPercent},
		{FieldTargetPercent, c.Inputs.TargetPercent},
	}

	for _, fld := range fields {
		if err := fld.opts.validateSelf(); err != nil {
			return fmt.Errorf("inputs.%s: %s: %w", fld.name, err.Error(), ErrInvalidConfig)
		}
	}

	for _, fld := range fields[1:] {
		if fld.opts.Min < 0 || (fld.opts.HasMax && fld.opts.Max > 100) {
			return fmt.Errorf("inputs.%s: percentage bounds must lie within [0, 100]: %w", fld.name, ErrInvalidConfig)
		}
	}
	if c.Inputs.InitialMass.Min < 0 {
		return fmt.Errorf("inputs.%s: min must not be negative: %w", FieldInitialMass, ErrInvalidConfig)
	}

	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("output.precision: %d is outside [0, %d]: %w", c.Output.Precision, maxPrecision, ErrInvalidConfig)
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level: %q is not one of %v: %w", c.Log.Level, logLevels, ErrInvalidConfig)
	}
	if c.Log.Dir == "" {
		return fmt.Errorf("log.dir: must not be empty: %w", ErrInvalidConfig)
	}
	return nil
}

func (f FieldOptions) validateSelf() error {
	if f.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", f.Step)
	}
	if f.HasMax && f.Min > f.Max {
		return fmt.Errorf("min %g is greater than max %g", f.Min, f.Max)
	}
	if err := f.Validate(f.Default); err != nil {
		return fmt.Errorf("default: %s", err.Error())
	}
	return nil
}
