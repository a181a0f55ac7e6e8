package main

import (
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-stereo/dsp/effects/spatial"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavBitDepth = 24

// writeImpulseWAV renders the stereo response to a left-channel impulse and
// writes it as 24-bit PCM. The enhancer state is reset before and after.
func writeImpulseWAV(path string, e *spatial.StereoEnhancer, frames int) error {
	if frames < 1 {
		return fmt.Errorf("enhancerinfo: wav length must be >= 1: %d", frames)
	}

	e.Reset()
	defer e.Reset()

	data := make([]int, 2*frames)
	for i := range frames {
		var x float64
		if i == 0 {
			x = 1
		}

		l, r := e.ProcessStereo(x, 0)
		data[2*i] = quantize(l)
		data[2*i+1] = quantize(r)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("enhancerinfo: create wav: %w", err)
	}

	sampleRate := int(math.Round(e.SampleRate()))
	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, 2, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("enhancerinfo: write wav: %w", err)
	}

	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("enhancerinfo: finalize wav: %w", err)
	}

	return f.Close()
}

// quantize maps [-1, 1] to signed 24-bit PCM with clipping.
func quantize(x float64) int {
	const full = 1<<(wavBitDepth-1) - 1

	if math.IsNaN(x) {
		return 0
	}

	v := math.Round(x * full)
	switch {
	case v > full:
		return full
	case v < -full-1:
		return -full - 1
	default:
		return int(v)
	}
}
