package anomaly

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// AddSpike adds a localised bump to a signal, shaped by a modulation window.
// A negative amplitude produces a dip instead of a spike.
type AddSpike struct {
	AnomalyBase

	center     float64   // centre of the spike in axis units
	size       float64   // distance from the centre at which the spike reaches zero, in axis units
	amplitude  float64   // peak change in signal, may be negative
	kernelName string    // name of the window kernel, empty defaults to raised_cosine
	modulation []float64 // weights in [0,1], one per axis sample; built once at construction
}

// Parameters used to request a spike. These map onto the fields of AddSpike.
type SpikeParams struct {
	Center    float64 `yaml:"Center" mapstructure:"Center"`       // centre of the spike in axis units
	Size      float64 `yaml:"Size" mapstructure:"Size"`           // half-width of the spike in axis units, must be > 0
	Amplitude float64 `yaml:"Amplitude" mapstructure:"Amplitude"` // peak change in signal, negative for a dip
	Kernel    string  `yaml:"Kernel" mapstructure:"Kernel"`       // window kernel name, empty defaults to raised_cosine
}

// Returns an AddSpike bound to dataAxis, checking for invalid values and
// building the modulation window eagerly.
func NewAddSpike(dataAxis []float64, params SpikeParams) (*AddSpike, error) {
	spike := &AddSpike{}
	spike.typeName = "spike"

	if err := validateFinite("amplitude", params.Amplitude); err != nil {
		return nil, err
	}
	if err := spike.bindAxis(dataAxis); err != nil {
		return nil, err
	}

	modulation, err := ConstructModulation(spike.axis, params.Center, params.Size, params.Kernel)
	if err != nil {
		return nil, err
	}

	spike.center = params.Center
	spike.size = params.Size
	spike.amplitude = params.Amplitude
	spike.kernelName = params.Kernel
	spike.modulation = modulation

	return spike, nil
}

// Transform returns signal + amplitude*modulation as a new slice.
func (s *AddSpike) Transform(signal []float64) ([]float64, error) {
	if err := s.checkShape(signal); err != nil {
		return nil, err
	}
	out := make([]float64, len(signal))
	floats.AddScaledTo(out, signal, s.amplitude, s.modulation)
	return out, nil
}

// Getters

// Returns a copy of the cached modulation window.
func (s *AddSpike) Modulation() []float64 {
	return slices.Clone(s.modulation)
}

func (s *AddSpike) GetCenter() float64 {
	return s.center
}

func (s *AddSpike) GetSize() float64 {
	return s.size
}

func (s *AddSpike) GetAmplitude() float64 {
	return s.amplitude
}

func (s *AddSpike) GetKernelName() string {
	return s.kernelName
}

func (p SpikeParams) TypeAsString() string {
	return "spike"
}

// Build returns the AddSpike described by p.
func (p SpikeParams) Build(dataAxis []float64) (Transform, error) {
	s, err := NewAddSpike(dataAxis, p)
	if err != nil {
		return nil, err
	}
	return s, nil
}
