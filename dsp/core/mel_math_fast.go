//go:build fastmath

package core

import (
	"github.com/meko-christian/algo-approx"
)

// ln10 is the natural logarithm of 10, used for log base conversions.
const ln10 = 2.302585092994045684017991454684

// log10 computes log10(x) as ln(x) / ln(10) using fast approximation.
func log10(x float64) float64 {
	return approx.FastLog(x) / ln10
}

// pow10 computes 10^x as e^(x * ln(10)) using fast approximation.
func pow10(x float64) float64 {
	return approx.FastExp(x * ln10)
}
