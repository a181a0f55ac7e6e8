package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1 (quarter period)", s[12])
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	c := DeterministicNoise(43, 1.0, 64)

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}

	for _, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatal("out-of-range impulse position should yield zeros")
		}
	}
}

func TestStereoSinePhase(t *testing.T) {
	l, r := StereoSine(1000, 48000, 1, math.Pi, 96)
	for i := range l {
		if math.Abs(l[i]+r[i]) > 1e-12 {
			t.Fatalf("index %d: anti-phase pair does not cancel: %v %v", i, l[i], r[i])
		}
	}
}

func TestInterleave(t *testing.T) {
	got := Interleave([]float64{1, 3, 5}, []float64{2, 4})
	want := []float64{1, 2, 3, 4}
	RequireSliceNearlyEqual(t, got, want, 0)
}

func TestRMS(t *testing.T) {
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) should be 0")
	}
	s := DeterministicSine(1000, 48000, 1, 4800)
	if math.Abs(RMS(s)-1/math.Sqrt2) > 1e-12 {
		t.Fatalf("RMS = %v, want 1/sqrt(2)", RMS(s))
	}
}
