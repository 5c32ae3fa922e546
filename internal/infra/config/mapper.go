package config

import (
	"strings"

	"github.com/aalvaropc/brixbalance/internal/domain"
)

// MapConfig applies the parsed file on top of domain.DefaultConfig and validates the result.
func MapConfig(path string, y YAMLFile) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	cfg.Inputs.InitialMass = mapField(cfg.Inputs.InitialMass, y.Brix.Inputs.InitialMass)
	cfg.Inputs.InitialPercent = mapField(cfg.Inputs.InitialPercent, y.Brix.Inputs.InitialPercent)
	cfg.Inputs.TargetPercent = mapField(cfg.Inputs.TargetPercent, y.Brix.Inputs.TargetPercent)

	if y.Brix.Output.Precision != nil {
		cfg.Output.Precision = *y.Brix.Output.Precision
	}
	if addr := strings.TrimSpace(y.Brix.Server.Addr); addr != "" {
		cfg.Server.Addr = addr
	}
	if level := strings.TrimSpace(y.Brix.Log.Level); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	if dir := strings.TrimSpace(y.Brix.Log.Dir); dir != "" {
		cfg.Log.Dir = dir
	}

	if err := cfg.Validate(); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.map",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

func mapField(base domain.FieldOptions, in *YAMLField) domain.FieldOptions {
	if in == nil {
		return base
	}
	out := base
	if in.Min != nil {
		out.Min = *in.Min
	}
	if in.Max != nil {
		out.Max = *in.Max
		out.HasMax = true
	}
	if in.Default != nil {
		out.Default = *in.Default
	}
	if in.Step != nil {
		out.Step = *in.Step
	}
	return out
}

// ToYAML renders cfg in the brix.yaml layout.
func ToYAML(cfg domain.Config) YAMLFile {
	field := func(f domain.FieldOptions) *YAMLField {
		out := &YAMLField{
			Min:     ptr(f.Min),
			Default: ptr(f.Default),
			Step:    ptr(f.Step),
		}
		if f.HasMax {
			out.Max = ptr(f.Max)
		}
		return out
	}

	return YAMLFile{Brix: YAMLConfig{
		Inputs: YAMLInputs{
			InitialMass:    field(cfg.Inputs.InitialMass),
			InitialPercent: field(cfg.Inputs.InitialPercent),
			TargetPercent:  field(cfg.Inputs.TargetPercent),
		},
		Output: YAMLOutput{Precision: ptr(cfg.Output.Precision)},
		Server: YAMLServer{Addr: cfg.Server.Addr},
		Log:    YAMLLog{Level: cfg.Log.Level, Dir: cfg.Log.Dir},
	}}
}

func ptr[T any](v T) *T { return &v }
