package testutil

import (
	"math"
	"testing"
)

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireAtLeast fails t if got and floor differ in length or if any element of
// got is below the matching element of floor.
func RequireAtLeast(t *testing.T, got, floor []float64) {
	t.Helper()
	if len(got) != len(floor) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(floor))
	}
	for i := range got {
		if got[i] < floor[i] {
			t.Fatalf("index %d: got %v, below %v", i, got[i], floor[i])
		}
	}
}

// ChangedIndices returns the indices at which a and b differ by more than eps.
// Slices of different length are compared over their common prefix.
func ChangedIndices(a, b []float64, eps float64) []int {
	var changed []int
	for i := range min(len(a), len(b)) {
		if math.Abs(a[i]-b[i]) > eps {
			changed = append(changed, i)
		}
	}
	return changed
}
