package kpi

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// exactDigits covers every fractional digit a float64 can carry (2^-1074).
const exactDigits = 1100

// Round2 rounds v to two decimals, half to even, judged on the exact binary
// value of v rather than its shortest decimal form. round2(2.675) is 2.67
// because the stored value is 2.67499999...
func Round2(v float64) float64 {
	return RoundPlaces(v, 2)
}

// RoundPlaces is Round2 for an arbitrary number of decimal places.
func RoundPlaces(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	exact := new(big.Float).SetFloat64(v).Text('f', exactDigits)
	return decimal.RequireFromString(exact).RoundBank(places).InexactFloat64()
}
