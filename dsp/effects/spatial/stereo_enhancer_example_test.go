package spatial_test

import (
	"fmt"

	"github.com/cwbudde/algo-stereo/dsp/effects/spatial"
	"github.com/cwbudde/algo-stereo/dsp/param"
)

func ExampleStereoEnhancer_ProcessStereo() {
	store := param.NewDefaultStore()
	_ = store.Set(param.Width, 0)

	e, err := spatial.NewStereoEnhancer(48000, spatial.WithParameters(store))
	if err != nil {
		panic(err)
	}

	left, right := e.ProcessStereo(1.0, 0.5)
	fmt.Printf("%.2f %.2f\n", left, right)
	// Output: 1.00 0.50
}

func ExampleStereoEnhancer_ActiveStages() {
	store := param.NewDefaultStore()

	e, err := spatial.NewStereoEnhancer(48000, spatial.WithParameters(store))
	if err != nil {
		panic(err)
	}

	for _, intensity := range []float64{0, 0.5, 1} {
		_ = store.Set(param.Intensity, intensity)
		e.Update()
		fmt.Println(e.ActiveStages())
	}
	// Output:
	// 10
	// 55
	// 100
}

func ExampleStereoEnhancer_ProcessBlock() {
	store := param.NewDefaultStore()
	_ = store.Set(param.Width, 1)
	_ = store.SetBool(param.ButtonMono, true)

	e, err := spatial.NewStereoEnhancer(48000, spatial.WithParameters(store))
	if err != nil {
		panic(err)
	}

	left := []float64{1, 0, 0}
	right := []float64{0, 0, 0}
	e.ProcessBlock([][]float64{left, right})

	fmt.Printf("%.4f %.4f\n", left[0], right[0])
	fmt.Println(left[1] == right[1], left[2] == right[2])
	// Output:
	// 0.5000 0.5000
	// true true
}
