// Package jsonview holds the JSON shapes shared by the CLI and the HTTP API.
package jsonview

import (
	"errors"

	"github.com/aalvaropc/brixbalance/internal/domain"
)

type Inputs struct {
	InitialMassKg  float64 `json:"initial_mass_kg"`
	InitialPercent float64 `json:"initial_percent"`
	TargetPercent  float64 `json:"target_percent"`
}

type Step struct {
	Title       string `json:"title"`
	Equation    string `json:"equation"`
	Substituted string `json:"substituted,omitempty"`
	Note        string `json:"note,omitempty"`
}

type Balance struct {
	Inputs               Inputs  `json:"inputs"`
	SugarMassKg          float64 `json:"sugar_mass_kg"`
	FinalMassKg          float64 `json:"final_mass_kg"`
	InitialWaterFraction float64 `json:"initial_water_fraction"`
	FinalWaterFraction   float64 `json:"final_water_fraction"`
	Steps                []Step  `json:"steps,omitempty"`
}

type Field struct {
	Min     float64  `json:"min"`
	Max     *float64 `json:"max,omitempty"`
	Default float64  `json:"default"`
	Step    float64  `json:"step"`
}

type Options struct {
	InitialMass    Field `json:"initial_mass"`
	InitialPercent Field `json:"initial_percent"`
	TargetPercent  Field `json:"target_percent"`
	Precision      int   `json:"precision"`
}

type ErrorBody struct {
	Kind    domain.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

type Error struct {
	Error ErrorBody `json:"error"`
}

// FromBalance maps b. Steps are included only when format is non-nil.
func FromBalance(b domain.Balance, format domain.NumberFormat) Balance {
	out := Balance{
		Inputs: Inputs{
			InitialMassKg:  b.Inputs.InitialMass,
			InitialPercent: b.Inputs.InitialPercent,
			TargetPercent:  b.Inputs.TargetPercent,
		},
		SugarMassKg:          b.SugarMass,
		FinalMassKg:          b.FinalMass,
		InitialWaterFraction: b.InitialWater,
		FinalWaterFraction:   b.FinalWater,
	}
	if format != nil {
		for _, s := range b.Steps(format) {
			out.Steps = append(out.Steps, Step(s))
		}
	}
	return out
}

func FromOptions(o domain.InputOptions, precision int) Options {
	field := func(f domain.FieldOptions) Field {
		out := Field{Min: f.Min, Default: f.Default, Step: f.Step}
		if f.HasMax {
			v := f.Max
			out.Max = &v
		}
		return out
	}
	return Options{
		InitialMass:    field(o.InitialMass),
		InitialPercent: field(o.InitialPercent),
		TargetPercent:  field(o.TargetPercent),
		Precision:      precision,
	}
}

// FromError maps err to its JSON body. The message is the innermost cause so
// operation names do not leak to clients.
func FromError(err error) Error {
	msg := err.Error()
	var oe *domain.OpError
	if errors.As(err, &oe) && oe.Err != nil {
		msg = oe.Err.Error()
	}
	return Error{Error: ErrorBody{Kind: domain.KindOf(err), Message: msg}}
}
