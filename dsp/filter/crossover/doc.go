// Package crossover provides a second-order Linkwitz-Riley (LR2) filter pair
// for splitting an audio signal into complementary bands.
//
// [LR2] derives shared feedback coefficients and separate lowpass and
// highpass feed-forward coefficients from a single cutoff using the bilinear
// transform with pre-warping. Both outputs run their own two-sample state, so
// they may be driven from different inputs or at different rates.
//
// The highpass output is polarity-inverted. For an LR2 pair the raw lowpass
// and highpass outputs are 180 degrees apart at the cutoff; after inversion
// they are in phase there and their sum is a first-order all-pass with flat
// magnitude response.
//
// Example:
//
//	xo, _ := crossover.NewLR2(48000, 1000)
//	lo, hi := xo.ProcessSample(inputSample)
//	sum := lo + hi // all-pass filtered input
package crossover
