package anomaly

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfiguration is returned for invalid construction parameters:
	// non-positive window size, negative noise level or a degenerate axis.
	ErrConfiguration = errors.New("invalid anomaly configuration")

	// ErrShapeMismatch is returned when a signal is not the same length as the
	// axis the transform was built for.
	ErrShapeMismatch = errors.New("signal and axis length mismatch")
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...)
}

func validateFinite(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return configErrorf("%s must be finite: %f", name, value)
	}
	return nil
}

func validateWindow(center, size float64) error {
	if err := validateFinite("window center", center); err != nil {
		return err
	}
	if err := validateFinite("window size", size); err != nil {
		return err
	}
	if size <= 0 {
		return configErrorf("window size must be > 0: %f", size)
	}
	return nil
}
