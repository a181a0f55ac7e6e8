package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-stereo/measure/response"
)

func ExampleMeasure() {
	// One-sample delay: unity magnitude, linear phase.
	var z float64
	delay := func(x float64) float64 {
		y := z
		z = x
		return y
	}

	res, err := response.Measure(delay, 1024, 48000)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("bins=%d |H(1k)|=%.3f dev=%.3f dB\n",
		res.NumBins(), res.MagnitudeAt(1000), res.MaxDeviationDB(20, 20000))
	// Output:
	// bins=513 |H(1k)|=1.000 dev=0.000 dB
}
