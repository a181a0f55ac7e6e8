package allpass

import (
	"math"

	"github.com/cwbudde/algo-stereo/dsp/core"
)

// MaxStages is the capacity of a [Bank].
const MaxStages = 100

const (
	minStageFraction = 0.1
	stageFractionMax = 1.0 - minStageFraction
)

// StageCount returns the number of active stages for an intensity in [0, 1]:
// floor((0.1 + 0.9*intensity) * capacity), never less than 1.
// Intensity is clamped to [0, 1]; NaN counts as 0.
func StageCount(intensity float64, capacity int) int {
	if capacity <= 0 {
		return 0
	}

	if math.IsNaN(intensity) {
		intensity = 0
	}

	intensity = core.Clamp(intensity, 0, 1)

	count := int((minStageFraction + stageFractionMax*intensity) * float64(capacity))

	return max(1, min(count, capacity))
}

// Bank is a fixed-capacity chain of first-order all-pass stages with a
// runtime-selected active count. Stage storage is allocated once; Configure
// and Process never allocate. Not thread-safe.
type Bank struct {
	stages   [MaxStages]FirstOrder
	cutoffs  [MaxStages]float64
	capacity int
	active   int
	melStep  float64
}

// NewBank creates a bank holding capacity stages, clamped to [1, MaxStages].
// Every stage starts with [DefaultCoef] and one active stage.
func NewBank(capacity int) *Bank {
	b := &Bank{
		capacity: max(1, min(capacity, MaxStages)),
		active:   1,
	}

	for i := range b.stages {
		b.stages[i].a1 = DefaultCoef
	}

	return b
}

// Init sets the sample rate of every stage.
func (b *Bank) Init(sampleRate float64) {
	for i := range b.stages[:b.capacity] {
		b.stages[i].Init(sampleRate)
	}
}

// Configure selects the active stage count from intensity and assigns each
// active stage a break frequency spaced evenly on the mel scale, starting at
// lowHz:
//
//	cutoff[i] = MelToFreq(FreqToMel(lowHz) + i*step)
//	step      = (FreqToMel(highHz) - FreqToMel(lowHz)) / count
//
// When highHz does not lie above lowHz the band is degenerate: a single stage
// at lowHz is used and the step is 0. Stages beyond the active count keep
// their previous coefficient and state. Configure returns the active count.
func (b *Bank) Configure(intensity, lowHz, highHz float64) int {
	count := StageCount(intensity, b.capacity)

	melLow := core.FreqToMel(lowHz)
	melHigh := core.FreqToMel(highHz)

	step := (melHigh - melLow) / float64(count)
	if !(step > 0) {
		count = 1
		step = 0
	}

	for i := range count {
		fc := core.MelToFreq(melLow + float64(i)*step)
		b.cutoffs[i] = fc
		b.stages[i].SetFrequency(fc)
	}

	b.active = count
	b.melStep = step

	return count
}

// Process runs x through the active stages in index order.
func (b *Bank) Process(x float64) float64 {
	stages := b.stages[:b.active]
	for i := range stages {
		x = stages[i].Process(x)
	}

	return x
}

// Reset clears the delay state of all stages, active or not.
func (b *Bank) Reset() {
	for i := range b.stages {
		b.stages[i].Reset()
	}
}

// Capacity returns the number of stages the bank holds.
func (b *Bank) Capacity() int { return b.capacity }

// Active returns the active stage count chosen by the last Configure.
func (b *Bank) Active() int { return b.active }

// MelStep returns the mel spacing chosen by the last Configure.
func (b *Bank) MelStep() float64 { return b.melStep }

// Stage returns stage i for inspection, or nil when i is out of range.
func (b *Bank) Stage(i int) *FirstOrder {
	if i < 0 || i >= b.capacity {
		return nil
	}

	return &b.stages[i]
}

// Cutoffs returns a copy of the break frequencies of the active stages.
func (b *Bank) Cutoffs() []float64 {
	out := make([]float64, b.active)
	copy(out, b.cutoffs[:b.active])

	return out
}

// Response returns the combined complex response of the active stages.
func (b *Bank) Response(freqHz float64) complex128 {
	h := complex(1, 0)
	for i := range b.stages[:b.active] {
		h *= b.stages[i].Response(freqHz)
	}

	return h
}
