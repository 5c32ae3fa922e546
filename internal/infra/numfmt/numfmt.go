// Package numfmt renders masses and fractions with a fixed number of decimals.
//
// Values are rounded half away from zero on their shortest decimal
// representation, so 1.005 renders as "1.01" instead of the "1.00" that
// strconv produces for the underlying binary value.
package numfmt

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Fixed renders v with exactly places decimals.
func Fixed(v float64, places int) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if places < 0 {
		places = 0
	}
	return decimal.NewFromFloat(v).StringFixed(int32(places))
}

// Kg renders a mass followed by its unit.
func Kg(v float64, places int) string {
	return Fixed(v, places) + " kg"
}

// Percent renders a percentage followed by "%".
func Percent(v float64, places int) string {
	return Fixed(v, places) + "%"
}
