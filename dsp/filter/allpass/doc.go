// Package allpass provides first-order all-pass filters and a mel-spaced
// all-pass bank for frequency-dependent phase rotation.
//
// [FirstOrder] is a single one-pole all-pass stage with unity magnitude at
// every frequency. Its coefficient is either set directly or derived from a
// break frequency via a1 = (tan(pi*f/fs) - 1) / (tan(pi*f/fs) + 1).
//
// [Bank] is a fixed-capacity array of stages. Each block it is configured
// from an intensity in [0, 1] and a frequency band: the intensity selects the
// active stage count and the active stages get break frequencies spaced
// evenly on the mel scale between the band edges. Stages beyond the active
// count keep their coefficient and delay state untouched.
//
// Example:
//
//	bank := allpass.NewBank(allpass.MaxStages)
//	bank.Init(48000)
//	bank.Configure(0.5, 20, 20000) // 55 stages
//	y := bank.Process(x)
package allpass
