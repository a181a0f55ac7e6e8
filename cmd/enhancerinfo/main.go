// Command enhancerinfo prints the filter layout and frequency response of
// the stereo enhancer for a given parameter set.
//
// Usage:
//
//	enhancerinfo [flags]
//
// Examples:
//
//	enhancerinfo
//	enhancerinfo -intensity 1 -hp 120 -lp 8000
//	enhancerinfo -rate 96000 -stages
//	enhancerinfo -width 1 -wav ir.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("enhancerinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	fs.Float64Var(&cfg.sampleRate, "rate", 48000, "sample rate in Hz")
	fs.Float64Var(&cfg.intensity, "intensity", 0.5, "all-pass intensity in [0, 1]")
	fs.Float64Var(&cfg.hpFreq, "hp", 20, "excitation highpass cutoff in Hz")
	fs.Float64Var(&cfg.lpFreq, "lp", 20000, "excitation lowpass cutoff in Hz")
	fs.Float64Var(&cfg.width, "width", 0.5, "enhancement width in [0, 1]")
	fs.Float64Var(&cfg.volumeDB, "volume", 0, "output volume in dB")
	fs.BoolVar(&cfg.mono, "mono", false, "fold the output to mono")
	fs.IntVar(&cfg.size, "size", 1<<15, "impulse response length in samples")
	fs.BoolVar(&cfg.stages, "stages", false, "print the all-pass stage table")
	fs.BoolVar(&cfg.taper, "taper", false, "fade out the impulse response tail before the FFT")
	fs.StringVar(&cfg.wavPath, "wav", "", "write the stereo impulse response of a left-channel impulse to this WAV file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: enhancerinfo [flags]\n\n")
		fmt.Fprintf(stderr, "Prints the all-pass layout, crossover response and excitation\n")
		fmt.Fprintf(stderr, "response of the stereo enhancer.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  enhancerinfo -intensity 1 -hp 120 -lp 8000\n")
		fmt.Fprintf(stderr, "  enhancerinfo -rate 96000 -stages\n")
		fmt.Fprintf(stderr, "  enhancerinfo -width 1 -wav ir.wav\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if cfg.size < 2 {
		fmt.Fprintf(stderr, "error: impulse response size must be >= 2: %d\n", cfg.size)
		return 1
	}

	e, err := cfg.newEnhancer()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	printSummary(stdout, e)

	if cfg.stages {
		fmt.Fprintln(stdout)
		printStages(stdout, e)
	}

	fmt.Fprintln(stdout)
	printCrossover(stdout, e)

	fmt.Fprintln(stdout)
	if e.Mono() {
		fmt.Fprintln(stdout, "Excitation: not measured, mono fold removes the side signal")
	} else {
		res, err := measureExcitation(e, cfg.size, cfg.taper)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}

		printExcitation(stdout, e, res)
	}

	if cfg.wavPath != "" {
		if err := writeImpulseWAV(cfg.wavPath, e, cfg.size); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "\nwrote %s (%d frames, 24-bit stereo)\n", cfg.wavPath, cfg.size)
	}

	return 0
}
