package anomaly

import (
	"math"
	"sort"
)

// IndexRange is a half-open range [Start, End) of sample indices, always
// clipped to the bounds of the axis it was derived from.
type IndexRange struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r IndexRange) Len() int {
	return max(0, r.End-r.Start)
}

// IsEmpty reports whether the range contains no indices.
func (r IndexRange) IsEmpty() bool {
	return r.Len() == 0
}

// Contains reports whether i lies within the range.
func (r IndexRange) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Indices returns every index in the range in ascending order.
func (r IndexRange) Indices() []int {
	idx := make([]int, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		idx = append(idx, i)
	}
	return idx
}

// AxisStep returns the spacing between the first two samples of a uniformly
// spaced axis.
func AxisStep(axis []float64) (float64, error) {
	if len(axis) < 2 {
		return 0, configErrorf("axis needs at least 2 samples to define a step, got %d", len(axis))
	}
	step := axis[1] - axis[0]
	if !(step > 0) || math.IsInf(step, 0) {
		return 0, configErrorf("axis step must be positive and finite: %f", step)
	}
	return step, nil
}

// ToIndexOffset converts an offset in axis units (a window size or delay) into
// a number of samples, rounded to the nearest integer.
func ToIndexOffset(axis []float64, value float64) (int, error) {
	if err := validateFinite("axis offset", value); err != nil {
		return 0, err
	}
	step, err := AxisStep(axis)
	if err != nil {
		return 0, err
	}

	// Any offset beyond the axis length clips to the same range boundaries.
	limit := float64(len(axis))
	offset := math.Max(-limit, math.Min(limit, math.Round(value/step)))
	return int(offset), nil
}

// NearestIndex returns the index of the axis sample closest to value. Ties
// resolve to the lower index, and values outside the axis clamp to its ends.
func NearestIndex(axis []float64, value float64) (int, error) {
	if len(axis) == 0 {
		return 0, configErrorf("axis must not be empty")
	}
	if err := validateFinite("axis value", value); err != nil {
		return 0, err
	}

	i := sort.SearchFloat64s(axis, value) // first index with axis[i] >= value
	switch {
	case i == 0:
		return 0, nil
	case i == len(axis):
		return len(axis) - 1, nil
	case value-axis[i-1] <= axis[i]-value:
		return i - 1, nil
	default:
		return i, nil
	}
}

// ClampBoundary clamps a range boundary to [0, n].
func ClampBoundary(i, n int) int {
	return min(max(i, 0), n)
}

// ClampPoint clamps a sample index to [0, n-1].
func ClampPoint(i, n int) int {
	return min(max(i, 0), n-1)
}
