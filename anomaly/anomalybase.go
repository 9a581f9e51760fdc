package anomaly

import (
	"fmt"
	"slices"
)

// AnomalyBase is the base struct for all transform types.
type AnomalyBase struct {
	typeName string    // the type of transform
	axis     []float64 // the axis the transform is bound to, nil for axis-free transforms
}

// Returns the type of transform as a string.
func (a *AnomalyBase) TypeAsString() string {
	return a.typeName
}

// Returns a copy of the axis the transform was built for, or nil if it is axis-free.
func (a *AnomalyBase) GetAxis() []float64 {
	return slices.Clone(a.axis)
}

// Copies the axis into the transform so later changes by the caller cannot leak in.
func (a *AnomalyBase) bindAxis(axis []float64) error {
	if len(axis) == 0 {
		return configErrorf("axis must not be empty")
	}
	for i, v := range axis {
		if err := validateFinite(fmt.Sprintf("axis[%d]", i), v); err != nil {
			return err
		}
		if i > 0 && !(v > axis[i-1]) {
			return configErrorf("axis must be strictly increasing at index %d", i)
		}
	}
	a.axis = slices.Clone(axis)
	return nil
}

// Returns ErrShapeMismatch if signal does not line up with the bound axis.
// Axis-free transforms accept any length.
func (a *AnomalyBase) checkShape(signal []float64) error {
	if a.axis == nil || len(signal) == len(a.axis) {
		return nil
	}
	return fmt.Errorf("%w: signal has %d samples, axis has %d", ErrShapeMismatch, len(signal), len(a.axis))
}
