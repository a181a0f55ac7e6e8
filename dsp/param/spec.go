package param

import (
	"fmt"
	"math"
)

// Names of the stereo enhancer parameters.
const (
	Intensity  = "Intensity"
	HPFilter   = "HPFilter"
	LPFilter   = "LPFilter"
	Width      = "Width"
	Volume     = "Volume"
	ButtonMono = "ButtonMono"
)

// Spec describes one parameter: its plain-value range, step, skew and
// default. A Bool spec stores 0 or 1.
type Spec struct {
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Step    float64 // 0 means continuous
	Skew    float64 // 1 is linear; <1 expands the low end
	Default float64
	Bool    bool
}

// FloatSpec builds a continuous or stepped parameter description.
func FloatSpec(name, unit string, minValue, maxValue, step, skew, def float64) Spec {
	return Spec{
		Name:    name,
		Unit:    unit,
		Min:     minValue,
		Max:     maxValue,
		Step:    step,
		Skew:    skew,
		Default: def,
	}
}

// BoolSpec builds an on/off parameter description.
func BoolSpec(name string, def bool) Spec {
	d := 0.0
	if def {
		d = 1
	}

	return Spec{Name: name, Min: 0, Max: 1, Step: 1, Skew: 1, Default: d, Bool: true}
}

// DefaultSpecs returns the stereo enhancer parameter layout.
func DefaultSpecs() []Spec {
	return []Spec{
		FloatSpec(Intensity, "", 0, 1, 0.01, 1, 0.5),
		FloatSpec(HPFilter, "Hz", 20, 880, 1, 0.3, 20),
		FloatSpec(LPFilter, "Hz", 4000, 20000, 1, 0.3, 20000),
		FloatSpec(Width, "", 0, 1, 0.01, 1, 0.5),
		FloatSpec(Volume, "dB", -12, 12, 0.1, 1, 0),
		BoolSpec(ButtonMono, false),
	}
}

// Validate checks that the spec is self-consistent.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("param: %w", ErrEmptyName)
	}

	for _, v := range []float64{s.Min, s.Max, s.Step, s.Skew, s.Default} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("param %q: range values must be finite", s.Name)
		}
	}

	if s.Max <= s.Min {
		return fmt.Errorf("param %q: max must exceed min: [%g, %g]", s.Name, s.Min, s.Max)
	}

	if s.Step < 0 {
		return fmt.Errorf("param %q: step must be >= 0: %g", s.Name, s.Step)
	}

	if s.Skew <= 0 {
		return fmt.Errorf("param %q: skew must be > 0: %g", s.Name, s.Skew)
	}

	if s.Default < s.Min || s.Default > s.Max {
		return fmt.Errorf("param %q: default %g outside [%g, %g]", s.Name, s.Default, s.Min, s.Max)
	}

	return nil
}

// Clamp limits v to the range. Bool specs collapse to 0 or 1.
func (s Spec) Clamp(v float64) float64 {
	if s.Bool {
		if v >= 0.5 {
			return 1
		}

		return 0
	}

	return math.Max(s.Min, math.Min(v, s.Max))
}

// Snap clamps v and rounds it to the nearest step, counted from Min.
func (s Spec) Snap(v float64) float64 {
	v = s.Clamp(v)
	if s.Step <= 0 || s.Bool {
		return v
	}

	return s.Clamp(s.Min + math.Round((v-s.Min)/s.Step)*s.Step)
}

// Normalize maps a plain value to [0, 1] applying the skew.
func (s Spec) Normalize(v float64) float64 {
	p := (s.Clamp(v) - s.Min) / (s.Max - s.Min)
	if s.Skew == 1 || p == 0 {
		return p
	}

	return math.Pow(p, s.Skew)
}

// Denormalize maps a normalised value in [0, 1] back to the plain range.
func (s Spec) Denormalize(n float64) float64 {
	n = math.Max(0, math.Min(n, 1))
	if s.Skew != 1 && n > 0 {
		n = math.Pow(n, 1/s.Skew)
	}

	return s.Min + n*(s.Max-s.Min)
}
