// Package response measures the frequency response of mono sample
// processors from their impulse response.
//
// A processor is driven with a unit impulse followed by zeros, the captured
// impulse response is transformed with an FFT, and the non-negative bins are
// exposed as complex response, magnitude and power.
//
// # Usage
//
//	f := allpass.NewFirstOrder()
//	f.Init(48000)
//	f.SetFrequency(1000)
//	res, _ := response.Measure(f.Process, 8192, 48000)
//	fmt.Println(res.MagnitudeDBAt(1000)) // ~0 dB
//
// The impulse response must decay within the chosen size, otherwise the
// truncation shows up as ripple in the measured magnitude.
package response
