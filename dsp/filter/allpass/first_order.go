package allpass

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-stereo/dsp/core"
)

// DefaultCoef is the coefficient of a freshly constructed stage. With
// a1 = -1 the stage passes the input with inverted polarity.
const DefaultCoef = -1.0

// FirstOrder is a first-order all-pass filter:
//
//	y[n] = a1*x[n] + d
//	d    = x[n] - a1*y[n]
//
// The zero value has a1 = 0 (a one-sample delay) and no sample rate.
// Use [NewFirstOrder] for the default coefficient. Not thread-safe.
type FirstOrder struct {
	sampleRate float64
	a1         float64
	d          float64
}

// NewFirstOrder returns a stage with [DefaultCoef] and no sample rate.
func NewFirstOrder() *FirstOrder {
	return &FirstOrder{a1: DefaultCoef}
}

// Init sets the sample rate in Hz. Non-positive or non-finite rates leave the
// stage uninitialised, which turns [FirstOrder.SetFrequency] into a no-op.
func (f *FirstOrder) Init(sampleRate float64) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		sampleRate = 0
	}

	f.sampleRate = sampleRate
}

// SetFrequency derives the coefficient from a break frequency in Hz, where
// the stage shifts phase by -90 degrees. The frequency is limited to
// [core.MinCutoffHz, 0.49*fs] so the coefficient stays inside (-1, 1).
func (f *FirstOrder) SetFrequency(freq float64) {
	if f.sampleRate == 0 {
		return
	}

	t := math.Tan(math.Pi * core.SafeCutoff(freq, f.sampleRate) / f.sampleRate)
	f.a1 = (t - 1) / (t + 1)
}

// SetCoef sets a1 directly, bypassing the frequency mapping.
func (f *FirstOrder) SetCoef(coef float64) {
	f.a1 = coef
}

// Coef returns the current coefficient a1.
func (f *FirstOrder) Coef() float64 { return f.a1 }

// SampleRate returns the sample rate in Hz, or 0 when uninitialised.
func (f *FirstOrder) SampleRate() float64 { return f.sampleRate }

// Process filters one sample. State below 1e-30 is flushed to zero.
func (f *FirstOrder) Process(x float64) float64 {
	y := f.a1*x + f.d
	f.d = core.FlushDenormals(x - f.a1*y)

	return y
}

// ProcessBlock filters buf in place.
func (f *FirstOrder) ProcessBlock(buf []float64) {
	a1, d := f.a1, f.d
	for i, x := range buf {
		y := a1*x + d
		d = core.FlushDenormals(x - a1*y)
		buf[i] = y
	}

	f.d = d
}

// Reset clears the delay register. The coefficient is kept.
func (f *FirstOrder) Reset() {
	f.d = 0
}

// Response returns H(e^jw) = (a1 + e^-jw) / (1 + a1*e^-jw) at freqHz.
// An uninitialised stage reports a unity response.
func (f *FirstOrder) Response(freqHz float64) complex128 {
	if f.sampleRate == 0 {
		return 1
	}

	ejw := cmplx.Exp(complex(0, -2*math.Pi*freqHz/f.sampleRate))
	a := complex(f.a1, 0)

	return (a + ejw) / (1 + a*ejw)
}
