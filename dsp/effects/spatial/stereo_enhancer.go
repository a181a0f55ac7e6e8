package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-stereo/dsp/core"
	"github.com/cwbudde/algo-stereo/dsp/filter/allpass"
	"github.com/cwbudde/algo-stereo/dsp/filter/crossover"
	"github.com/cwbudde/algo-stereo/dsp/param"
)

// outputScale is applied on top of the volume gain. Mid and side are formed
// without the usual 1/2, so the reconstruction halves them again.
const outputScale = 0.5

// Parameters is the host-owned parameter surface. The enhancer reads each
// value once per block through Get; see package param for the names.
type Parameters interface {
	Get(name string) float64
}

// StereoEnhancerOption mutates stereo enhancer construction parameters.
type StereoEnhancerOption func(*stereoEnhancerConfig) error

type stereoEnhancerConfig struct {
	params    Parameters
	maxStages int
}

func defaultStereoEnhancerConfig() stereoEnhancerConfig {
	return stereoEnhancerConfig{
		maxStages: allpass.MaxStages,
	}
}

// WithParameters injects the parameter source. The enhancer only reads from
// it. Without this option the enhancer creates a [param.Store] with
// [param.DefaultSpecs].
func WithParameters(p Parameters) StereoEnhancerOption {
	return func(cfg *stereoEnhancerConfig) error {
		if p == nil {
			return errors.New("stereo enhancer parameters must not be nil")
		}

		cfg.params = p

		return nil
	}
}

// WithMaxStages sets the all-pass bank capacity in [1, allpass.MaxStages].
func WithMaxStages(n int) StereoEnhancerOption {
	return func(cfg *stereoEnhancerConfig) error {
		if n < 1 || n > allpass.MaxStages {
			return fmt.Errorf("stereo enhancer max stages must be in [1, %d]: %d", allpass.MaxStages, n)
		}

		cfg.maxStages = n

		return nil
	}
}

// blockState is the parameter snapshot taken at a block boundary.
type blockState struct {
	width  float64
	gain   float64
	mono   bool
	stages int
}

// StereoEnhancer widens a stereo image by adding a phase-rotated, band-limited
// copy of the mid signal to the side signal.
//
// Per frame:
//
//	mid  = L + R
//	side = L - R
//	e    = width * HP(LP(allpass(mid)))
//	L'   = gain * (mid + side + e)
//	R'   = gain * (mid - side - e)
//
// where gain = 0.5 * 10^(volume/20). The highpass consumes the lowpass
// output, so the excitation is band-passed between the HPFilter and LPFilter
// cutoffs. With mono fold enabled both outputs become (L' + R') / 2.
//
// Parameters are read once per block; changes take effect at the next block
// boundary without smoothing. Block processing does not allocate, lock or
// log. The enhancer is not thread-safe: only the audio goroutine may call its
// processing methods, while the parameter source may be written concurrently.
type StereoEnhancer struct {
	sampleRate float64
	params     Parameters

	bank     *allpass.Bank
	lowPass  crossover.LR2
	highPass crossover.LR2

	block blockState
}

// NewStereoEnhancer creates a stereo enhancer with practical defaults and
// optional overrides.
func NewStereoEnhancer(sampleRate float64, opts ...StereoEnhancerOption) (*StereoEnhancer, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}

	cfg := defaultStereoEnhancerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	if cfg.params == nil {
		cfg.params = param.NewDefaultStore()
	}

	e := &StereoEnhancer{
		params: cfg.params,
		bank:   allpass.NewBank(cfg.maxStages),
	}

	e.init(sampleRate)
	e.Update()

	return e, nil
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("stereo enhancer sample rate must be > 0 and finite: %f", sampleRate)
	}

	return nil
}

func (e *StereoEnhancer) init(sampleRate float64) {
	e.sampleRate = sampleRate
	e.bank.Init(sampleRate)
	e.lowPass.Init(sampleRate)
	e.highPass.Init(sampleRate)
}

// SetSampleRate re-initialises every filter for a new host sample rate and
// recomputes coefficients from the current parameters. Filter state is kept.
func (e *StereoEnhancer) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	e.init(sampleRate)
	e.Update()

	return nil
}

// Update takes a parameter snapshot and recomputes the crossover cutoffs and
// the all-pass allocation. Block methods call it once on entry; call it
// directly only when driving ProcessStereo frame by frame.
func (e *StereoEnhancer) Update() {
	p := e.params

	intensity := p.Get(param.Intensity)
	hpFreq := p.Get(param.HPFilter)
	lpFreq := p.Get(param.LPFilter)
	width := finiteOr(p.Get(param.Width), 0)
	volumeDB := finiteOr(p.Get(param.Volume), 0)
	mono := p.Get(param.ButtonMono) >= 0.5

	e.highPass.SetFrequency(hpFreq)
	e.lowPass.SetFrequency(lpFreq)

	e.block = blockState{
		width:  width,
		gain:   outputScale * core.DBToLinear(volumeDB),
		mono:   mono,
		stages: e.bank.Configure(intensity, hpFreq, lpFreq),
	}
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}

	return v
}

// ProcessStereo processes one stereo frame with the current snapshot and
// returns the left and right outputs.
func (e *StereoEnhancer) ProcessStereo(left, right float64) (float64, float64) {
	mid := left + right
	side := left - right

	x := e.bank.Process(mid)
	x = e.lowPass.ProcessLP(x)
	x = e.highPass.ProcessHP(x)
	x *= e.block.width

	outL := e.block.gain * (mid + side + x)
	outR := e.block.gain * (mid - side - x)

	if e.block.mono {
		m := 0.5 * (outL + outR)
		return m, m
	}

	return outL, outR
}

// ProcessBlock processes a planar buffer in place. Channel 0 is left and
// channel 1 is right; further channels are left untouched. With fewer than
// two channels the block passes through unmodified. If the two channels
// differ in length only the common prefix is processed.
func (e *StereoEnhancer) ProcessBlock(channels [][]float64) {
	if len(channels) < 2 {
		return
	}

	e.Update()

	left, right := channels[0], channels[1]
	n := min(len(left), len(right))
	left, right = left[:n], right[:n]

	for i := range left {
		left[i], right[i] = e.ProcessStereo(left[i], right[i])
	}
}

// ProcessStereoInPlace processes paired left/right buffers in place as one
// block. Both buffers must have the same length.
func (e *StereoEnhancer) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("stereo enhancer: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}

	e.Update()

	for i := range left {
		left[i], right[i] = e.ProcessStereo(left[i], right[i])
	}

	return nil
}

// ProcessInterleavedInPlace processes an interleaved stereo buffer
// (L, R, L, R, ...) in place as one block. The buffer length must be even.
func (e *StereoEnhancer) ProcessInterleavedInPlace(buf []float64) error {
	if len(buf)%2 != 0 {
		return fmt.Errorf("stereo enhancer: interleaved buffer length must be even: %d", len(buf))
	}

	e.Update()

	for i := 0; i < len(buf); i += 2 {
		buf[i], buf[i+1] = e.ProcessStereo(buf[i], buf[i+1])
	}

	return nil
}

// Reset clears the delay state of every filter.
func (e *StereoEnhancer) Reset() {
	e.bank.Reset()
	e.lowPass.Reset()
	e.highPass.Reset()
}

// SampleRate returns the sample rate in Hz.
func (e *StereoEnhancer) SampleRate() float64 { return e.sampleRate }

// Parameters returns the parameter source the enhancer reads from.
func (e *StereoEnhancer) Parameters() Parameters { return e.params }

// TailLength returns the processing tail in seconds. The all-pass and
// crossover responses decay within a few milliseconds, so hosts need none.
func (e *StereoEnhancer) TailLength() float64 { return 0 }

// ActiveStages returns the all-pass stage count of the current snapshot.
func (e *StereoEnhancer) ActiveStages() int { return e.block.stages }

// Gain returns the output gain of the current snapshot, 0.5 * 10^(volume/20).
func (e *StereoEnhancer) Gain() float64 { return e.block.gain }

// Width returns the enhancement width of the current snapshot.
func (e *StereoEnhancer) Width() float64 { return e.block.width }

// Mono reports whether the current snapshot folds the output to mono.
func (e *StereoEnhancer) Mono() bool { return e.block.mono }

// Bank returns the all-pass bank for inspection.
func (e *StereoEnhancer) Bank() *allpass.Bank { return e.bank }

// Crossovers returns the lowpass and highpass filters for inspection. Only
// the lowpass path of the first and the highpass path of the second are used.
func (e *StereoEnhancer) Crossovers() (lowPass, highPass *crossover.LR2) {
	return &e.lowPass, &e.highPass
}
