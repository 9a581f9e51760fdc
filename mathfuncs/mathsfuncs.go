package mathfuncs

import (
	"errors"
	"math"
	"sort"
)

// A window kernel w=f(x). Takes the normalised distance from the window centre,
// x = (axis - centre) / size, and returns a weight. Every kernel returns 1 at
// x=0, decays monotonically with |x| and is 0 for |x| >= 1.
type KernelFunction func(x float64) float64

// DefaultKernel is used when no kernel name is given.
const DefaultKernel = "raised_cosine"

// A map between string name and KernelFunction pairs
var kernelFunctions = map[string]KernelFunction{
	"raised_cosine": raisedCosine,
	"gaussian":      truncatedGaussian,
	"triangular":    triangular,
	"parabolic":     parabolic,
	"tukey":         tukey,
}

// Returns the names of all registered kernels in sorted order.
func GetKernelFunctionNames() []string {
	names := make([]string, 0, len(kernelFunctions))
	for name := range kernelFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Returns the named kernel function. Defaults to raised_cosine if name is empty.
func GetKernelFunctionFromName(name string) (KernelFunction, error) {
	if name == "" {
		name = DefaultKernel
	}
	kernel, ok := kernelFunctions[name]
	if !ok {
		return nil, errors.New("kernel function not found")
	}

	return kernel, nil
}

// Returns a raised cosine (Hann) bump y=0.5*(1+cos(pi*x)) for |x| < 1.
func raisedCosine(x float64) float64 {
	x = math.Abs(x)
	if x >= 1 {
		return 0
	}
	return 0.5 * (1 + math.Cos(math.Pi*x))
}

// gaussianSigma is the width of the truncated Gaussian relative to the window size.
const gaussianSigma = 0.4

// Returns a Gaussian exp(-x^2/(2*sigma^2)), shifted and rescaled so that it is
// exactly 1 at x=0 and reaches 0 at |x|=1 instead of having an infinite tail.
func truncatedGaussian(x float64) float64 {
	x = math.Abs(x)
	if x >= 1 {
		return 0
	}
	floor := math.Exp(-1 / (2 * gaussianSigma * gaussianSigma))
	g := math.Exp(-x * x / (2 * gaussianSigma * gaussianSigma))
	return (g - floor) / (1 - floor)
}

// Returns a triangle y=1-|x|.
func triangular(x float64) float64 {
	x = math.Abs(x)
	if x >= 1 {
		return 0
	}
	return 1 - x
}

// Returns a parabola y=1-x^2 (Welch window shape).
func parabolic(x float64) float64 {
	x = math.Abs(x)
	if x >= 1 {
		return 0
	}
	return 1 - x*x // faster than math.Pow(x, 2)
}

// Returns a Tukey window with a flat top for |x| <= 0.5 and a cosine taper to 0 at |x|=1.
func tukey(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x >= 1:
		return 0
	case x <= 0.5:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(x-0.5)/0.5))
	}
}
