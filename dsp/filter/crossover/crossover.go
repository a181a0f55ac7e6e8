package crossover

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-stereo/dsp/core"
)

// path is one feed-forward branch with its own transposed direct-form II
// state. s1 and s2 hold the two delayed partial sums.
type path struct {
	a0, a1, a2 float64
	s1, s2     float64
}

// LR2 is a second-order Linkwitz-Riley lowpass/highpass pair sharing one set
// of feedback coefficients.
//
// The zero value has no sample rate and all-zero coefficients, so both
// outputs are silent until [LR2.Init] and [LR2.SetFrequency] are called.
// LR2 is real-time safe and not thread-safe.
type LR2 struct {
	sampleRate float64
	freq       float64

	b1, b2 float64

	lp path
	hp path
}

// NewLR2 creates an initialised pair at the given cutoff.
// Returns an error for invalid parameters.
func NewLR2(sampleRate, freq float64) (*LR2, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("crossover: sample rate must be positive and finite, got %v", sampleRate)
	}

	if !(freq > 0 && freq < sampleRate/2) {
		return nil, fmt.Errorf("crossover: frequency must be in (0, %v), got %v", sampleRate/2, freq)
	}

	c := &LR2{}
	c.Init(sampleRate)
	c.SetFrequency(freq)

	return c, nil
}

// Init sets the sample rate in Hz. Non-positive or non-finite rates leave the
// filter uninitialised, which turns [LR2.SetFrequency] into a no-op.
func (c *LR2) Init(sampleRate float64) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		sampleRate = 0
	}

	c.sampleRate = sampleRate
}

// SetFrequency recomputes all coefficients for a cutoff in Hz. The cutoff is
// limited to [core.MinCutoffHz, 0.49*fs]. Filter state is kept.
//
// With wc = 2*pi*fc and the pre-warped k = wc / tan(pi*fc/fs):
//
//	d  = k^2 + wc^2 + 2*k*wc
//	b1 = (2*wc^2 - 2*k^2) / d
//	b2 = (k^2 + wc^2 - 2*k*wc) / d
//	lp = (wc^2, 2*wc^2, wc^2) / d
//	hp = (k^2, -2*k^2, k^2) / d
func (c *LR2) SetFrequency(freq float64) {
	if c.sampleRate == 0 {
		return
	}

	freq = core.SafeCutoff(freq, c.sampleRate)

	fpi := math.Pi * freq
	wc := 2 * fpi
	wc2 := wc * wc
	k := wc / math.Tan(fpi/c.sampleRate)
	k2 := k * k
	wck2 := 2 * wc * k
	d := k2 + wc2 + wck2

	c.b1 = (2*wc2 - 2*k2) / d
	c.b2 = (k2 + wc2 - wck2) / d

	c.lp.a0 = wc2 / d
	c.lp.a1 = 2 * wc2 / d
	c.lp.a2 = wc2 / d

	c.hp.a0 = k2 / d
	c.hp.a1 = -2 * k2 / d
	c.hp.a2 = k2 / d

	c.freq = freq
}

func (c *LR2) run(p *path, x float64) float64 {
	y := p.a0*x + p.s1
	p.s1 = core.FlushDenormals(p.a1*x - c.b1*y + p.s2)
	p.s2 = core.FlushDenormals(p.a2*x - c.b2*y)

	return y
}

// ProcessLP filters one sample through the lowpass path.
func (c *LR2) ProcessLP(x float64) float64 {
	return c.run(&c.lp, x)
}

// ProcessHP filters one sample through the highpass path and returns it with
// inverted polarity.
func (c *LR2) ProcessHP(x float64) float64 {
	return -c.run(&c.hp, x)
}

// ProcessSample feeds x to both paths and returns the lowpass and
// (inverted) highpass outputs. Their sum is all-pass.
func (c *LR2) ProcessSample(x float64) (lo, hi float64) {
	return c.ProcessLP(x), c.ProcessHP(x)
}

// ProcessBlock filters a block of input samples, writing the lowpass
// output to lo and the highpass output to hi. All three slices must
// have the same length.
func (c *LR2) ProcessBlock(input, lo, hi []float64) {
	n := len(input)
	if n == 0 {
		return
	}

	_ = lo[n-1]
	_ = hi[n-1]

	for i, x := range input {
		lo[i], hi[i] = c.ProcessSample(x)
	}
}

// Reset clears the state of both paths. Coefficients are kept.
func (c *LR2) Reset() {
	c.lp.s1, c.lp.s2 = 0, 0
	c.hp.s1, c.hp.s2 = 0, 0
}

// Freq returns the cutoff in Hz after clamping, or 0 before the first
// successful SetFrequency.
func (c *LR2) Freq() float64 { return c.freq }

// SampleRate returns the sample rate in Hz, or 0 when uninitialised.
func (c *LR2) SampleRate() float64 { return c.sampleRate }

// Response returns the complex lowpass and highpass responses at freqHz.
// The highpass response includes the polarity inversion.
func (c *LR2) Response(freqHz float64) (lp, hp complex128) {
	if c.sampleRate == 0 {
		return 0, 0
	}

	z1 := cmplx.Exp(complex(0, -2*math.Pi*freqHz/c.sampleRate))
	z2 := z1 * z1
	den := 1 + complex(c.b1, 0)*z1 + complex(c.b2, 0)*z2

	lp = (complex(c.lp.a0, 0) + complex(c.lp.a1, 0)*z1 + complex(c.lp.a2, 0)*z2) / den
	hp = -(complex(c.hp.a0, 0) + complex(c.hp.a1, 0)*z1 + complex(c.hp.a2, 0)*z2) / den

	return lp, hp
}
