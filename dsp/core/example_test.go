package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-stereo/dsp/core"
)

func ExampleFreqToMel() {
	mel := core.FreqToMel(1000)

	fmt.Printf("mel=%.1f freq=%.1f\n", mel, core.MelToFreq(mel))

	// Output:
	// mel=1000.0 freq=1000.0
}

func ExampleSafeCutoff() {
	fmt.Printf("%.0f %.0f\n", core.SafeCutoff(30000, 48000), core.SafeCutoff(0, 48000))

	// Output:
	// 23520 1
}
