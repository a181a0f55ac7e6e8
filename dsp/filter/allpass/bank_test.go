package allpass

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-stereo/dsp/core"
	"github.com/cwbudde/algo-stereo/internal/testutil"
	"github.com/cwbudde/algo-stereo/measure/response"
)

func TestStageCountEndpoints(t *testing.T) {
	tests := []struct {
		intensity float64
		capacity  int
		want      int
	}{
		{0, 100, 10},
		{1, 100, 100},
		{0.5, 100, 55},
		{-1, 100, 10},
		{2, 100, 100},
		{math.NaN(), 100, 10},
		{0, 5, 1},
		{1, 5, 5},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := StageCount(tt.intensity, tt.capacity); got != tt.want {
			t.Errorf("StageCount(%g, %d) = %d, want %d", tt.intensity, tt.capacity, got, tt.want)
		}
	}
}

func TestStageCountMonotonic(t *testing.T) {
	prev := StageCount(0, MaxStages)
	for i := 1; i <= 1000; i++ {
		c := StageCount(float64(i)/1000, MaxStages)
		if c < prev {
			t.Fatalf("count decreased at intensity %g: %d < %d", float64(i)/1000, c, prev)
		}
		prev = c
	}
}

func TestBankConfigureMelSpacing(t *testing.T) {
	b := NewBank(MaxStages)
	b.Init(48000)

	count := b.Configure(0.5, 20, 20000)
	if count != 55 || b.Active() != 55 {
		t.Fatalf("Configure() = %d, Active() = %d, want 55", count, b.Active())
	}

	melLow := core.FreqToMel(20)
	wantStep := (core.FreqToMel(20000) - melLow) / 55

	if math.Abs(b.MelStep()-wantStep) > 1e-12 {
		t.Fatalf("MelStep() = %g, want %g", b.MelStep(), wantStep)
	}

	cutoffs := b.Cutoffs()
	if len(cutoffs) != count {
		t.Fatalf("len(Cutoffs()) = %d, want %d", len(cutoffs), count)
	}

	if math.Abs(cutoffs[0]-20) > 1e-9 {
		t.Fatalf("first cutoff = %g, want 20", cutoffs[0])
	}

	for i := 1; i < len(cutoffs); i++ {
		step := core.FreqToMel(cutoffs[i]) - core.FreqToMel(cutoffs[i-1])
		if math.Abs(step-wantStep) > 1e-6 {
			t.Fatalf("mel step between %d and %d = %g, want %g", i-1, i, step, wantStep)
		}
	}

	// The last stage sits one step below the upper edge.
	if last := cutoffs[len(cutoffs)-1]; last >= 20000 {
		t.Fatalf("last cutoff %g reaches the upper band edge", last)
	}

	for i := range count {
		want := NewFirstOrder()
		want.Init(48000)
		want.SetFrequency(cutoffs[i])

		if b.Stage(i).Coef() != want.Coef() {
			t.Fatalf("stage %d coef = %g, want %g", i, b.Stage(i).Coef(), want.Coef())
		}
	}
}

func TestBankInactiveStagesKeepState(t *testing.T) {
	b := NewBank(MaxStages)
	b.Init(48000)
	b.Configure(1, 20, 20000)

	for _, x := range testutil.DeterministicNoise(11, 1, 64) {
		b.Process(x)
	}

	stage := b.Stage(80)
	coef := stage.Coef()
	delay := stage.d

	b.Configure(0, 20, 20000)
	for _, x := range testutil.DeterministicNoise(12, 1, 64) {
		b.Process(x)
	}

	if stage.Coef() != coef || stage.d != delay {
		t.Fatalf("inactive stage changed: coef %g->%g, d %g->%g", coef, stage.Coef(), delay, stage.d)
	}
}

func TestBankDegenerateBand(t *testing.T) {
	tests := []struct {
		name     string
		low      float64
		high     float64
		wantStep float64
	}{
		{name: "inverted", low: 5000, high: 200},
		{name: "equal", low: 1000, high: 1000},
		{name: "nan", low: math.NaN(), high: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBank(MaxStages)
			b.Init(48000)

			if got := b.Configure(1, tt.low, tt.high); got != 1 {
				t.Fatalf("Configure() = %d, want 1", got)
			}

			if b.MelStep() != 0 {
				t.Fatalf("MelStep() = %g, want 0", b.MelStep())
			}

			out := testutil.DeterministicNoise(5, 1, 1024)
			for i, x := range out {
				out[i] = b.Process(x)
			}

			testutil.RequireFinite(t, out)
		})
	}
}

func TestBankProcessMatchesChainedStages(t *testing.T) {
	b := NewBank(MaxStages)
	b.Init(44100)
	count := b.Configure(0.3, 100, 8000)

	ref := make([]*FirstOrder, count)
	for i, fc := range b.Cutoffs() {
		ref[i] = NewFirstOrder()
		ref[i].Init(44100)
		ref[i].SetFrequency(fc)
	}

	for n, x := range testutil.DeterministicNoise(9, 1, 256) {
		want := x
		for _, s := range ref {
			want = s.Process(want)
		}

		if got := b.Process(x); math.Abs(got-want) > 1e-12 {
			t.Fatalf("sample %d: got %g, want %g", n, got, want)
		}
	}
}

func TestBankUnityMagnitude(t *testing.T) {
	b := NewBank(MaxStages)
	b.Init(48000)
	b.Configure(1, 20, 20000)

	res, err := response.Measure(b.Process, 1<<16, 48000)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	if dev := res.MaxDeviationDB(20, 20000); dev > 1e-3 {
		t.Fatalf("bank magnitude deviates %g dB from unity", dev)
	}
}

func TestNewBankClampsCapacity(t *testing.T) {
	if got := NewBank(0).Capacity(); got != 1 {
		t.Fatalf("NewBank(0).Capacity() = %d, want 1", got)
	}

	if got := NewBank(1000).Capacity(); got != MaxStages {
		t.Fatalf("NewBank(1000).Capacity() = %d, want %d", got, MaxStages)
	}

	if NewBank(10).Stage(10) != nil {
		t.Fatal("Stage beyond capacity should be nil")
	}
}
