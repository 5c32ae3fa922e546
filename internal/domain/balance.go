package domain

import (
	"fmt"
	"math"
)

// Sugar is treated as anhydrous: all solids, no water.
const (
	SugarSolidsFraction = 1.0 // X2
	SugarWaterFraction  = 0.0 // Y2
)

// Field names used in validation messages and wire formats.
const (
	FieldInitialMass    = "initial_mass"
	FieldInitialPercent = "initial_percent"
	FieldTargetPercent  = "target_percent"
)

// balanceTolerance is the relative tolerance used by Balance.Check.
const balanceTolerance = 1e-9

// Inputs are the three caller-supplied values of a balance.
type Inputs struct {
	InitialMass    float64 // M1, kg
	InitialPercent float64 // X1, % solids (°Brix)
	TargetPercent  float64 // X3, % solids (°Brix)
}

// Balance is the solved two-stream balance: pulp (M1) + sugar (M2) = final pulp (M3).
type Balance struct {
	Inputs Inputs

	SugarMass float64 // M2, kg
	FinalMass float64 // M3, kg

	InitialWater float64 // Y1
	FinalWater   float64 // Y3
}

// InitialSolids returns X1 as a fraction.
func (b Balance) InitialSolids() float64 { return b.Inputs.InitialPercent / 100 }

// TargetSolids returns X3 as a fraction.
func (b Balance) TargetSolids() float64 { return b.Inputs.TargetPercent / 100 }

// Solve computes the sugar mass to add to m1 kg of pulp at x1Percent °Brix so
// that the result reaches x3Percent °Brix.
//
// The solids fraction can only go up by adding sugar, so x3Percent must be
// strictly greater than x1Percent; a target of 100% is unreachable. In both
// cases Solve returns a zero Balance and an *OpError.
func Solve(m1, x1Percent, x3Percent float64) (Balance, error) {
	const op = "domain.solve"

	if err := checkMass(op, FieldInitialMass, m1); err != nil {
		return Balance{}, err
	}
	if err := checkPercent(op, FieldInitialPercent, x1Percent); err != nil {
		return Balance{}, err
	}
	if err := checkPercent(op, FieldTargetPercent, x3Percent); err != nil {
		return Balance{}, err
	}

	if x3Percent <= x1Percent {
		return Balance{}, &OpError{
			Op:   op,
			Kind: KindInvalidConcentrationOrder,
			Err:  fmt.Errorf("initial %g%%, target %g%%: %w", x1Percent, x3Percent, ErrInvalidConcentrationOrder),
		}
	}

	x1 := x1Percent / 100
	x3 := x3Percent / 100
	y1 := 1 - x1
	y3 := 1 - x3

	if y3 <= 0 {
		return Balance{}, &OpError{
			Op:   op,
			Kind: KindUnreachableTarget,
			Err:  ErrUnreachableTarget,
		}
	}

	// Water balance: M1·Y1 + M2·Y2 = M3·Y3, with Y2 = 0.
	m3 := m1 * y1 / y3
	// Total balance: M1 + M2 = M3.
	m2 := m3 - m1

	if math.IsInf(m3, 0) || math.IsNaN(m3) || math.IsInf(m2, 0) || math.IsNaN(m2) {
		return Balance{}, invalidInput(op, FieldInitialMass, "too large for the target concentration")
	}

	return Balance{
		Inputs: Inputs{
			InitialMass:    m1,
			InitialPercent: x1Percent,
			TargetPercent:  x3Percent,
		},
		SugarMass:    m2,
		FinalMass:    m3,
		InitialWater: y1,
		FinalWater:   y3,
	}, nil
}

// SolveInputs is Solve taking an Inputs value.
func SolveInputs(in Inputs) (Balance, error) {
	return Solve(in.InitialMass, in.InitialPercent, in.TargetPercent)
}

// Check verifies the total-mass and water conservation equations.
func (b Balance) Check() error {
	m1 := b.Inputs.InitialMass

	water := m1*b.InitialWater + b.SugarMass*SugarWaterFraction
	if !approxEqual(water, b.FinalMass*b.FinalWater) {
		return fmt.Errorf("water balance violated: %g != %g", water, b.FinalMass*b.FinalWater)
	}

	solids := m1*(1-b.InitialWater) + b.SugarMass*SugarSolidsFraction
	if !approxEqual(solids, b.FinalMass*(1-b.FinalWater)) {
		return fmt.Errorf("solids balance violated: %g != %g", solids, b.FinalMass*(1-b.FinalWater))
	}

	if !approxEqual(m1+b.SugarMass, b.FinalMass) {
		return fmt.Errorf("mass balance violated: %g + %g != %g", m1, b.SugarMass, b.FinalMass)
	}
	return nil
}

func checkMass(op, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidInput(op, field, "must be a finite number")
	}
	if v < 0 {
		return invalidInput(op, field, "must not be negative")
	}
	return nil
}

func checkPercent(op, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidInput(op, field, "must be a finite number")
	}
	if v < 0 || v > 100 {
		return invalidInput(op, field, fmt.Sprintf("%g is outside [0, 100]", v))
	}
	return nil
}

func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= balanceTolerance*scale
}
