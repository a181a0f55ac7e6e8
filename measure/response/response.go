package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by response functions.
var (
	ErrInvalidSize       = errors.New("response: size must be a power of two >= 2")
	ErrInvalidSampleRate = errors.New("response: sample rate must be > 0 and finite")
	ErrNilProcessor      = errors.New("response: processor must not be nil")
)

// Processor filters one sample. Method values such as f.Process satisfy it.
type Processor func(x float64) float64

// Result holds the measured response for bins 0..size/2.
type Result struct {
	sampleRate float64
	size       int
	spectrum   []complex128
	magnitude  []float64
	power      []float64
}

// Measure drives p with a unit impulse of the given size and returns the
// transformed response. p keeps whatever state the impulse leaves behind.
func Measure(p Processor, size int, sampleRate float64) (*Result, error) {
	if p == nil {
		return nil, ErrNilProcessor
	}

	if err := validate(size, sampleRate); err != nil {
		return nil, err
	}

	ir := make([]float64, size)
	for i := range ir {
		x := 0.0
		if i == 0 {
			x = 1
		}

		ir[i] = p(x)
	}

	return FromImpulseResponse(ir, sampleRate)
}

// FromImpulseResponse transforms a captured impulse response. Its length
// must be a power of two.
func FromImpulseResponse(ir []float64, sampleRate float64) (*Result, error) {
	n := len(ir)
	if err := validate(n, sampleRate); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan for size %d: %w", n, err)
	}

	in := make([]complex128, n)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	pow := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	vecmath.Power(pow, re, im)

	return &Result{
		sampleRate: sampleRate,
		size:       n,
		spectrum:   out[:bins:bins],
		magnitude:  mag,
		power:      pow,
	}, nil
}

func validate(size int, sampleRate float64) error {
	if size < 2 || size&(size-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	return nil
}

// SampleRate returns the sample rate in Hz.
func (r *Result) SampleRate() float64 { return r.sampleRate }

// Size returns the FFT size.
func (r *Result) Size() int { return r.size }

// NumBins returns the number of non-negative frequency bins (size/2 + 1).
func (r *Result) NumBins() int { return len(r.magnitude) }

// BinFrequency returns the centre frequency of bin k in Hz.
func (r *Result) BinFrequency(k int) float64 {
	return float64(k) * r.sampleRate / float64(r.size)
}

// Bin returns the bin nearest to freqHz, limited to [0, NumBins()-1].
func (r *Result) Bin(freqHz float64) int {
	k := int(math.Round(freqHz * float64(r.size) / r.sampleRate))

	return max(0, min(k, len(r.magnitude)-1))
}

// At returns the complex response of the bin nearest to freqHz.
func (r *Result) At(freqHz float64) complex128 { return r.spectrum[r.Bin(freqHz)] }

// MagnitudeAt returns |H| of the bin nearest to freqHz.
func (r *Result) MagnitudeAt(freqHz float64) float64 { return r.magnitude[r.Bin(freqHz)] }

// MagnitudeDBAt returns 20*log10|H| of the bin nearest to freqHz.
func (r *Result) MagnitudeDBAt(freqHz float64) float64 {
	return 10 * math.Log10(r.power[r.Bin(freqHz)])
}

// PhaseAt returns the phase in radians of the bin nearest to freqHz.
func (r *Result) PhaseAt(freqHz float64) float64 { return cmplx.Phase(r.At(freqHz)) }

// MaxDeviationDB returns the largest |20*log10|H|| over bins in [loHz, hiHz],
// i.e. how far the response strays from unity gain in that band.
func (r *Result) MaxDeviationDB(loHz, hiHz float64) float64 {
	worst := 0.0
	for k := r.Bin(loHz); k <= r.Bin(hiHz); k++ {
		worst = math.Max(worst, math.Abs(10*math.Log10(r.power[k])))
	}

	return worst
}

// Peak returns the frequency and magnitude of the loudest bin in [loHz, hiHz].
func (r *Result) Peak(loHz, hiHz float64) (freqHz, magnitude float64) {
	best := r.Bin(loHz)
	for k := best + 1; k <= r.Bin(hiHz); k++ {
		if r.magnitude[k] > r.magnitude[best] {
			best = k
		}
	}

	return r.BinFrequency(best), r.magnitude[best]
}
