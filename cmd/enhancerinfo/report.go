package main

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"text/tabwriter"

	"github.com/cwbudde/algo-stereo/dsp/core"
	"github.com/cwbudde/algo-stereo/dsp/effects/spatial"
	"github.com/cwbudde/algo-stereo/dsp/param"
	"github.com/cwbudde/algo-stereo/measure/response"
	"github.com/cwbudde/algo-vecmath"
)

type config struct {
	sampleRate float64
	intensity  float64
	hpFreq     float64
	lpFreq     float64
	width      float64
	volumeDB   float64
	mono       bool
	size       int
	stages     bool
	taper      bool
	wavPath    string
}

// newEnhancer builds a parameter store from cfg. Out-of-range values are
// clamped to the parameter ranges by the store.
func (cfg config) newEnhancer() (*spatial.StereoEnhancer, error) {
	store := param.NewDefaultStore()

	values := []struct {
		name  string
		value float64
	}{
		{param.Intensity, cfg.intensity},
		{param.HPFilter, cfg.hpFreq},
		{param.LPFilter, cfg.lpFreq},
		{param.Width, cfg.width},
		{param.Volume, cfg.volumeDB},
	}

	for _, v := range values {
		if err := store.Set(v.name, v.value); err != nil {
			return nil, err
		}
	}

	if err := store.SetBool(param.ButtonMono, cfg.mono); err != nil {
		return nil, err
	}

	return spatial.NewStereoEnhancer(cfg.sampleRate, spatial.WithParameters(store))
}

var octaveCentres = []float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// octaveFrequencies returns the octave band centres below 0.49*fs.
func octaveFrequencies(sampleRate float64) []float64 {
	var out []float64
	for _, f := range octaveCentres {
		if f < core.NyquistSafetyRatio*sampleRate {
			out = append(out, f)
		}
	}

	return out
}

func printSummary(w io.Writer, e *spatial.StereoEnhancer) {
	lp, hp := e.Crossovers()
	bank := e.Bank()

	fmt.Fprintf(w, "Sample rate:   %.0f Hz\n", e.SampleRate())
	fmt.Fprintf(w, "Band:          %.1f .. %.1f Hz\n", hp.Freq(), lp.Freq())
	fmt.Fprintf(w, "All-pass:      %d of %d stages, mel step %.2f\n",
		e.ActiveStages(), bank.Capacity(), bank.MelStep())
	fmt.Fprintf(w, "Width:         %.2f\n", e.Width())
	fmt.Fprintf(w, "Output gain:   %.4f (%.2f dB)\n", e.Gain(), core.LinearToDB(e.Gain()))
	fmt.Fprintf(w, "Mono fold:     %t\n", e.Mono())
}

func printStages(w io.Writer, e *spatial.StereoEnhancer) {
	bank := e.Bank()
	cutoffs := bank.Cutoffs()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Stage\tCutoff Hz\tMel\tCoef\t\n")
	for i, fc := range cutoffs {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.6f\t\n", i, fc, core.FreqToMel(fc), bank.Stage(i).Coef())
	}
	tw.Flush()
}

func printCrossover(w io.Writer, e *spatial.StereoEnhancer) {
	lowPass, highPass := e.Crossovers()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Freq Hz\tLP dB\tHP dB\tBand dB\tAllpass deg\t\n")
	for _, f := range octaveFrequencies(e.SampleRate()) {
		lp, _ := lowPass.Response(f)
		_, hp := highPass.Response(f)
		ap := e.Bank().Response(f)

		fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t%.2f\t%.1f\t\n", f,
			dB(cmplx.Abs(lp)), dB(cmplx.Abs(hp)), dB(cmplx.Abs(lp*hp)),
			cmplx.Phase(ap)*180/math.Pi)
	}
	tw.Flush()
}

func printExcitation(w io.Writer, e *spatial.StereoEnhancer, res *response.Result) {
	peakHz, peak := res.Peak(20, core.NyquistSafetyRatio*e.SampleRate())
	fmt.Fprintf(w, "Excitation peak: %.1f Hz (%.2f dB)\n", peakHz, dB(peak))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Freq Hz\tSide from mid dB\tPhase deg\t\n")
	for _, f := range octaveFrequencies(e.SampleRate()) {
		fmt.Fprintf(tw, "%.1f\t%.2f\t%.1f\t\n", f, res.MagnitudeDBAt(f), res.PhaseAt(f)*180/math.Pi)
	}
	tw.Flush()
}

func dB(mag float64) float64 {
	if mag <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(mag)
}

// measureExcitation feeds a mono impulse and measures the side signal it
// produces, normalised to the mid input. The enhancer must not fold to mono.
// With taper set, the last quarter of
// the impulse response is faded out with a half cosine.
func measureExcitation(e *spatial.StereoEnhancer, size int, taper bool) (*response.Result, error) {
	if size < 2 {
		return nil, fmt.Errorf("enhancerinfo: impulse response size must be >= 2: %d", size)
	}

	e.Reset()
	defer e.Reset()

	if e.Mono() {
		return nil, fmt.Errorf("enhancerinfo: side signal is not measurable with mono fold enabled")
	}

	gain := e.Gain()

	ir := make([]float64, size)
	for i := range ir {
		var x float64
		if i == 0 {
			x = 1
		}

		l, r := e.ProcessStereo(x, x)
		ir[i] = (l - r) / (4 * gain)
	}

	if taper {
		vecmath.MulBlockInPlace(ir, fadeOut(size))
	}

	return response.FromImpulseResponse(ir, e.SampleRate())
}

func fadeOut(size int) []float64 {
	coeffs := make([]float64, size)
	start := size - size/4

	for i := range coeffs {
		if i < start {
			coeffs[i] = 1
			continue
		}

		t := float64(i-start) / float64(size-start)
		coeffs[i] = 0.5 * (1 + math.Cos(math.Pi*t))
	}

	return coeffs
}
