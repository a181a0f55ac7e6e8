package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireNear fails t if got differs from want by more than eps.
func RequireNear(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > eps {
		t.Fatalf("%s: got %v, want %v (eps %v)", name, got, want, eps)
	}
}

// smallestNormal is the smallest positive normal float64.
const smallestNormal = 2.2250738585072014e-308

// IsSubnormal reports whether v is a non-zero value below the normal range.
func IsSubnormal(v float64) bool {
	return v != 0 && math.Abs(v) < smallestNormal
}

// RequireNoSubnormal fails t if any element of data is subnormal.
func RequireNoSubnormal(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if IsSubnormal(v) {
			t.Fatalf("index %d: subnormal value %v", i, v)
		}
	}
}
