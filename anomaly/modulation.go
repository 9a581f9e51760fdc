package anomaly

import (
	"math"

	"github.com/synaptecltd/virtualanomaly/mathfuncs"
)

// ConstructModulation evaluates the named window kernel at every axis sample,
// centred on center and reaching zero at a distance of size from it. The result
// has the same length as axis and every weight lies in [0, 1]. A center outside
// the axis is allowed and gives a window that is zero (or nearly so) everywhere.
func ConstructModulation(axis []float64, center, size float64, kernelName string) ([]float64, error) {
	if err := validateWindow(center, size); err != nil {
		return nil, err
	}
	kernel, err := mathfuncs.GetKernelFunctionFromName(kernelName)
	if err != nil {
		return nil, configErrorf("%s: %q", err, kernelName)
	}

	modulation := make([]float64, len(axis))
	for i, x := range axis {
		w := kernel((x - center) / size)
		modulation[i] = math.Min(math.Max(w, 0), 1)
	}
	return modulation, nil
}
