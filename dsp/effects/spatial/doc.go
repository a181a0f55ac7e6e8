// Package spatial provides reusable non-I/O stereo image processors.
//
// Included processors:
//   - StereoEnhancer: Mid/side widening that folds a phase-rotated,
//     band-limited copy of the mid signal into the side signal.
//
// Processors read their parameters through the [Parameters] interface,
// normally backed by a [github.com/cwbudde/algo-stereo/dsp/param.Store].
package spatial
