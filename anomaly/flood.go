package anomaly

import (
	"fmt"
	"math"
	"sync"

	"github.com/synaptecltd/virtualanomaly/noise"
)

// How FloodSignal combines a sample with its noise.
const (
	FloodModeMax = "max" // out = max(signal, noise), the default
	FloodModeAdd = "add" // out = signal + |noise|
)

// FloodSignal raises the noise floor of a signal. Every output sample is
// greater than or equal to the corresponding input sample.
type FloodSignal struct {
	AnomalyBase

	noiseLevel   float64 // scale of the noise, >= 0
	distribution string  // name of the noise distribution
	mode         string  // FloodModeMax or FloodModeAdd

	mu      sync.Mutex // guards sampler, whose random state advances on every call
	sampler noise.Sampler
}

// Parameters used to request a flood. These map onto the fields of FloodSignal.
type FloodParams struct {
	NoiseLevel   float64 `yaml:"NoiseLevel" mapstructure:"NoiseLevel"`     // scale of the noise, must be >= 0
	Distribution string  `yaml:"Distribution" mapstructure:"Distribution"` // gaussian (default), uniform or exponential
	Mode         string  `yaml:"Mode" mapstructure:"Mode"`                 // max (default) or add
	Seed         uint64  `yaml:"Seed" mapstructure:"Seed"`                 // seed of the default sampler
}

// FloodOption configures a FloodSignal.
type FloodOption func(*FloodSignal)

// WithSampler replaces the seeded default sampler. Negative samples are folded
// onto their absolute value.
func WithSampler(sampler noise.Sampler) FloodOption {
	return func(f *FloodSignal) {
		f.sampler = sampler
	}
}

// Returns a FloodSignal with the requested parameters, checking for invalid values.
func NewFloodSignal(params FloodParams, opts ...FloodOption) (*FloodSignal, error) {
	flood := &FloodSignal{}
	flood.typeName = "flood"

	if err := flood.setNoiseLevel(params.NoiseLevel); err != nil {
		return nil, err
	}
	if err := flood.setMode(params.Mode); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(flood)
	}

	if flood.sampler == nil {
		sampler, err := noise.NewSampler(params.Distribution, flood.noiseLevel, params.Seed)
		if err != nil {
			return nil, configErrorf("%s", err)
		}
		flood.distribution = sampler.GetDistributionName()
		flood.sampler = sampler
	}

	return flood, nil
}

// Transform returns a new slice with the noise floor raised. Any signal length
// is accepted.
func (f *FloodSignal) Transform(signal []float64) ([]float64, error) {
	f.mu.Lock()
	floor := f.sampler.Sample(len(signal))
	f.mu.Unlock()

	if len(floor) != len(signal) {
		return nil, fmt.Errorf("%w: sampler returned %d samples for a signal of %d", ErrShapeMismatch, len(floor), len(signal))
	}

	out := make([]float64, len(signal))
	for i, v := range signal {
		n := math.Abs(floor[i])
		if f.mode == FloodModeAdd {
			out[i] = v + n
		} else {
			out[i] = math.Max(v, n)
		}
	}
	return out, nil
}

// Setters, only called during construction

// Sets the noise level if noiseLevel >= 0.
func (f *FloodSignal) setNoiseLevel(noiseLevel float64) error {
	if err := validateFinite("noise level", noiseLevel); err != nil {
		return err
	}
	if noiseLevel < 0 {
		return configErrorf("noise level must be greater than or equal to 0: %f", noiseLevel)
	}
	f.noiseLevel = noiseLevel
	return nil
}

// Sets how noise is combined with the signal. Empty defaults to FloodModeMax.
func (f *FloodSignal) setMode(mode string) error {
	switch mode {
	case "":
		f.mode = FloodModeMax
	case FloodModeMax, FloodModeAdd:
		f.mode = mode
	default:
		return configErrorf("unknown flood mode: %q", mode)
	}
	return nil
}

// Getters

func (f *FloodSignal) GetNoiseLevel() float64 {
	return f.noiseLevel
}

// Returns the distribution name, empty when a custom sampler was injected.
func (f *FloodSignal) GetDistribution() string {
	return f.distribution
}

func (f *FloodSignal) GetMode() string {
	return f.mode
}

func (p FloodParams) TypeAsString() string {
	return "flood"
}

// Build returns the FloodSignal described by p. The axis is not used.
func (p FloodParams) Build(_ []float64) (Transform, error) {
	f, err := NewFloodSignal(p)
	if err != nil {
		return nil, err
	}
	return f, nil
}
