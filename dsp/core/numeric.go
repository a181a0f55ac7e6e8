package core

import "math"

const (
	// MinCutoffHz is the lowest cutoff frequency handed to a tangent-based
	// coefficient formula. At 0 Hz the pre-warping term divides by zero.
	MinCutoffHz = 1.0

	// NyquistSafetyRatio bounds cutoff frequencies to this fraction of the
	// sample rate so tan(pi*f/fs) stays finite.
	NyquistSafetyRatio = 0.49
)

// Mel scale constants (O'Shaughnessy / HTK convention).
const (
	melScale  = 2595.0
	melCorner = 700.0
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts values below 1e-30 in magnitude to exact zero.
// Recursive filters apply it to their state so that silence decays to 0
// instead of lingering in the subnormal range.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// FreqToMel converts a frequency in Hz to the mel scale:
// 2595 * log10(1 + f/700).
func FreqToMel(freq float64) float64 {
	return melScale * log10(1+freq/melCorner)
}

// MelToFreq is the inverse of FreqToMel: 700 * (10^(m/2595) - 1).
func MelToFreq(mel float64) float64 {
	return melCorner * (pow10(mel/melScale) - 1)
}

// SafeCutoff limits a cutoff frequency to [MinCutoffHz, NyquistSafetyRatio*sampleRate].
// NaN maps to the lower bound. The sample rate must be positive.
func SafeCutoff(freq, sampleRate float64) float64 {
	upper := sampleRate * NyquistSafetyRatio
	lower := math.Min(MinCutoffHz, upper)

	if math.IsNaN(freq) {
		return lower
	}

	return Clamp(freq, lower, upper)
}
