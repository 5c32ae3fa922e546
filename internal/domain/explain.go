package domain

import "fmt"

// Step is one line of the worked explanation of a balance.
type Step struct {
	Title       string
	Equation    string
	Substituted string // empty when the step has no numbers
	Note        string
}

// NumberFormat renders a number inside an explanation step.
type NumberFormat func(float64) string

// TwoDecimals is the NumberFormat used when none is given.
func TwoDecimals(v float64) string { return fmt.Sprintf("%.2f", v) }

// Steps returns the worked solution for b, rendering numbers with f
// (TwoDecimals when nil).
func (b Balance) Steps(f NumberFormat) []Step {
	if f == nil {
		f = TwoDecimals
	}

	m1 := b.Inputs.InitialMass

	return []Step{
		{
			Title:    "Total mass balance",
			Equation: "M1 + M2 = M3",
		},
		{
			Title:    "Water balance",
			Equation: "M1·Y1 + M2·Y2 = M3·Y3",
			Note:     fmt.Sprintf("Sugar is 100%% solids, so Y2 = %s and the balance reduces to M1·Y1 = M3·Y3", f(SugarWaterFraction)),
		},
		{
			Title:       "Final pulp mass (M3)",
			Equation:    "M3 = M1·Y1 / Y3",
			Substituted: fmt.Sprintf("M3 = %s kg · %s / %s = %s kg", f(m1), f(b.InitialWater), f(b.FinalWater), f(b.FinalMass)),
		},
		{
			Title:       "Sugar to add (M2)",
			Equation:    "M2 = M3 - M1",
			Substituted: fmt.Sprintf("M2 = %s kg - %s kg = %s kg", f(b.FinalMass), f(m1), f(b.SugarMass)),
		},
	}
}

// Glossary describes the symbols used in Steps.
var Glossary = []struct{ Symbol, Meaning string }{
	{"M1", "initial pulp mass"},
	{"M2", "sugar mass to add"},
	{"M3", "final pulp mass"},
	{"X1, X2, X3", "solids (sugar) fraction of each stream"},
	{"Y1, Y2, Y3", "water fraction of each stream"},
}
