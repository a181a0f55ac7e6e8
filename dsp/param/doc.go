// Package param provides the lock-free parameter surface shared between a
// control thread and the real-time audio thread.
//
// A [Store] holds a fixed set of named parameters described by [Spec]. Values
// live in atomic 64-bit slots, and the name index is built once at
// construction and never mutated, so [Store.Get] and [Store.Set] neither lock
// nor allocate. The audio thread reads each value once per block; the control
// thread writes whenever the user moves a control.
//
// [DefaultSpecs] describes the stereo enhancer controls: Intensity, HPFilter,
// LPFilter, Width, Volume and ButtonMono. Ranges may carry a skew so that
// normalised host automation maps onto frequency ranges perceptually.
//
// [State] is the persisted form of a store: a plain name to value map that
// encodes to JSON.
package param
