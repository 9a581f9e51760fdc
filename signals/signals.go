// Package signals synthesises axes and test waveforms for exercising anomaly
// transforms.
package signals

import (
	"math"
	"math/rand/v2"

	"github.com/teknico/sigourney/fast"
)

// Arange returns start, start+step, ... for every value below stop.
func Arange(start, stop, step float64) []float64 {
	if !(step > 0) || !(stop > start) {
		return nil
	}
	// tolerate representation error in (stop-start)/step, e.g. 100/0.04
	n := int(math.Ceil((stop-start)/step - 1e-9))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Component is one sinusoid of a multi-tone signal.
type Component struct {
	Amplitude float64
	Frequency float64 // cycles per axis unit
	Phase     float64 // radians
}

// SineSum returns sum_k A_k*sin(2*pi*f_k*t + phi_k) evaluated at every axis value t.
func SineSum(axis []float64, components ...Component) []float64 {
	out := make([]float64, len(axis))
	for _, c := range components {
		for i, t := range axis {
			out[i] += c.Amplitude * fast.Sin(wrapPhase(2*math.Pi*c.Frequency*t+c.Phase))
		}
	}
	return out
}

// Returns phase wrapped into [0, 2*pi) so the table lookup stays accurate for
// long axes and negative phases.
func wrapPhase(phase float64) float64 {
	phase = math.Mod(phase, 2*math.Pi)
	if phase < 0 {
		phase += 2 * math.Pi
	}
	return phase
}

// Chainsaw returns a linear ramp from start to stop over n samples with a
// triangular spike of the given width and height added at each offset. Spikes
// that run past the end of the signal are truncated.
func Chainsaw(n int, start, stop float64, spikeOffsets []int, spikeWidth int, spikeHeight float64) []float64 {
	out := Linspace(start, stop, n)
	spike := triangle(spikeWidth, spikeHeight)
	for _, offset := range spikeOffsets {
		for j, v := range spike {
			if k := offset + j; k >= 0 && k < n {
				out[k] += v
			}
		}
	}
	return out
}

// Returns a rising then falling ramp, each half linearly spaced from 0 to height.
func triangle(width int, height float64) []float64 {
	half := width / 2
	rising := Linspace(0, height, half)
	falling := Linspace(height, 0, width-half)
	return append(rising, falling...)
}

// AddGaussianNoise returns signal plus independent N(0, sigma^2) noise drawn from r.
func AddGaussianNoise(signal []float64, r *rand.Rand, sigma float64) []float64 {
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = v + r.NormFloat64()*sigma
	}
	return out
}
