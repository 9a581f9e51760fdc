// Package noise provides seedable, non-negative noise samplers used to raise
// the noise floor of a signal.
package noise

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws n noise samples.
type Sampler interface {
	Sample(n int) []float64
}

// DefaultDistribution is used when no distribution name is given.
const DefaultDistribution = "gaussian"

// A constructor for a distribution with the given scale, drawing from src.
type distributionFunction func(scale float64, src rand.Source) distuv.Rander

// A map between string name and distribution constructors. All distributions
// are folded or supported on [0, inf) so every sample is non-negative.
var distributionFunctions = map[string]distributionFunction{
	// half-normal: |N(0, scale^2)|
	"gaussian": func(scale float64, src rand.Source) distuv.Rander {
		return folded{distuv.Normal{Mu: 0, Sigma: scale, Src: src}}
	},
	"uniform": func(scale float64, src rand.Source) distuv.Rander {
		return distuv.Uniform{Min: 0, Max: scale, Src: src}
	},
	// mean of scale
	"exponential": func(scale float64, src rand.Source) distuv.Rander {
		return distuv.Exponential{Rate: 1 / scale, Src: src}
	},
}

// Returns the names of all registered distributions in sorted order.
func GetDistributionNames() []string {
	names := make([]string, 0, len(distributionFunctions))
	for name := range distributionFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// folded reflects a distribution onto [0, inf).
type folded struct {
	distuv.Rander
}

func (f folded) Rand() float64 {
	return math.Abs(f.Rander.Rand())
}

// DistributionSampler draws independent samples from a named distribution.
// It is not safe for concurrent use.
type DistributionSampler struct {
	name  string
	scale float64
	dist  distuv.Rander // nil when scale is 0
}

// NewSampler returns a sampler for the named distribution with the given scale
// (the standard deviation of the underlying Gaussian, the upper bound of the
// uniform, or the mean of the exponential), seeded for reproducible output.
// An empty name selects the Gaussian.
func NewSampler(distribution string, scale float64, seed uint64) (*DistributionSampler, error) {
	return NewSamplerFromSource(distribution, scale, rand.NewPCG(seed, 0))
}

// NewSamplerFromSource is like NewSampler but draws from an existing source.
func NewSamplerFromSource(distribution string, scale float64, src rand.Source) (*DistributionSampler, error) {
	if distribution == "" {
		distribution = DefaultDistribution
	}
	newDist, ok := distributionFunctions[distribution]
	if !ok {
		return nil, fmt.Errorf("noise distribution not found: %q", distribution)
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale < 0 {
		return nil, errors.New("noise scale must be finite and greater than or equal to 0")
	}
	if src == nil {
		return nil, errors.New("noise source must not be nil")
	}

	s := &DistributionSampler{name: distribution, scale: scale}
	if scale > 0 {
		s.dist = newDist(scale, src)
	}
	return s, nil
}

// Sample returns n non-negative samples. A zero-scale sampler returns zeros.
func (s *DistributionSampler) Sample(n int) []float64 {
	out := make([]float64, max(n, 0))
	if s.dist == nil {
		return out
	}
	for i := range out {
		out[i] = s.dist.Rand()
	}
	return out
}

func (s *DistributionSampler) GetDistributionName() string {
	return s.name
}

func (s *DistributionSampler) GetScale() float64 {
	return s.scale
}
