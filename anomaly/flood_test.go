package anomaly_test

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptecltd/virtualanomaly/anomaly"
	"github.com/synaptecltd/virtualanomaly/internal/testutil"
	"github.com/synaptecltd/virtualanomaly/noise"
	"github.com/synaptecltd/virtualanomaly/signals"
	"github.com/synaptecltd/virtualanomaly/spectral"
)

func TestFloodingEffect(t *testing.T) {
	signal := signals.Linspace(0, 10, 500)
	original := slices.Clone(signal)

	flood, err := anomaly.NewFloodSignal(anomaly.FloodParams{NoiseLevel: 0.1, Seed: 42})
	require.NoError(t, err)

	out, err := flood.Transform(signal)
	require.NoError(t, err)

	assert.Len(t, out, len(signal))
	assert.NotEqual(t, signal, out, "the signal should be modified after applying flooding")
	assert.Equal(t, original, signal, "the input signal must not be modified")
	testutil.RequireAtLeast(t, out, signal)
}

func TestFloodNoiseAboveSignal(t *testing.T) {
	zeros := make([]float64, 500)

	flood, err := anomaly.NewFloodSignal(anomaly.FloodParams{NoiseLevel: 0.1, Seed: 42})
	require.NoError(t, err)

	out, err := flood.Transform(zeros)
	require.NoError(t, err)
	assert.Len(t, out, len(zeros))
	testutil.RequireAtLeast(t, out, zeros)
}

func TestFloodNeverLowersSignal(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	signal := signals.AddGaussianNoise(make([]float64, 2000), rng, 1)

	for _, distribution := range noise.GetDistributionNames() {
		for _, mode := range []string{"", anomaly.FloodModeMax, anomaly.FloodModeAdd} {
			for _, level := range []float64{0, 0.1, 3} {
				t.Run(fmt.Sprintf("%s-%s-%v", distribution, mode, level), func(t *testing.T) {
					flood, err := anomaly.NewFloodSignal(anomaly.FloodParams{
						NoiseLevel:   level,
						Distribution: distribution,
						Mode:         mode,
						Seed:         7,
					})
					require.NoError(t, err)

					out, err := flood.Transform(signal)
					require.NoError(t, err)
					assert.Len(t, out, len(signal))
					testutil.RequireAtLeast(t, out, signal)
				})
			}
		}
	}
}

func TestFloodZeroNoiseLevel(t *testing.T) {
	signal := signals.Linspace(0, 10, 100)

	for _, mode := range []string{anomaly.FloodModeMax, anomaly.FloodModeAdd} {
		flood, err := anomaly.NewFloodSignal(anomaly.FloodParams{Mode: mode})
		require.NoError(t, err)
		out, err := flood.Transform(signal)
		require.NoError(t, err)
		assert.Equal(t, signal, out)
	}
}

func TestFloodModes(t *testing.T) {
	signal := []float64{-1, 0, 0.05, 2}
	constant := constantSampler(0.1)

	maxFlood, err := anomaly.NewFloodSignal(anomaly.FloodParams{NoiseLevel: 0.1}, anomaly.WithSampler(constant))
	require.NoError(t, err)
	out, err := maxFlood.Transform(signal)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.1, 0.1, 2}, out)
	assert.Equal(t, anomaly.FloodModeMax, maxFlood.GetMode())
	assert.Empty(t, maxFlood.GetDistribution())

	addFlood, err := anomaly.NewFloodSignal(anomaly.FloodParams{NoiseLevel: 0.1, Mode: anomaly.FloodModeAdd}, anomaly.WithSampler(constant))
	require.NoError(t, err)
	out, err = addFlood.Transform(signal)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.9, 0.1, 0.15, 2.1}, out, 1e-12)
}

func TestFloodIsReproducible(t *testing.T) {
	signal := make([]float64, 100)
	params := anomaly.FloodParams{NoiseLevel: 0.5, Distribution: "uniform", Seed: 99}

	a, err := anomaly.NewFloodSignal(params)
	require.NoError(t, err)
	b, err := anomaly.NewFloodSignal(params)
	require.NoError(t, err)
	assert.Equal(t, "uniform", a.GetDistribution())

	outA, err := a.Transform(signal)
	require.NoError(t, err)
	outB, err := b.Transform(signal)
	require.NoError(t, err)
	assert.Equal(t, outA, outB)

	// the sampler advances, so a second call floods differently
	again, err := a.Transform(signal)
	require.NoError(t, err)
	assert.NotEqual(t, outA, again)
}

func TestFloodInjectedSampler(t *testing.T) {
	signal := make([]float64, 4)

	negative, err := anomaly.NewFloodSignal(anomaly.FloodParams{}, anomaly.WithSampler(constantSampler(-2)))
	require.NoError(t, err)
	out, err := negative.Transform(signal)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2, 2}, out) // folded onto |noise|

	short, err := anomaly.NewFloodSignal(anomaly.FloodParams{}, anomaly.WithSampler(shortSampler{}))
	require.NoError(t, err)
	out, err = short.Transform(signal)
	assert.ErrorIs(t, err, anomaly.ErrShapeMismatch)
	assert.Nil(t, out)
}

func TestFloodInvalid(t *testing.T) {
	testCases := map[string]anomaly.FloodParams{
		"negative noise level": {NoiseLevel: -0.1},
		"unknown mode":         {NoiseLevel: 0.1, Mode: "multiply"},
		"unknown distribution": {NoiseLevel: 0.1, Distribution: "cauchy"},
	}
	for name, params := range testCases {
		t.Run(name, func(t *testing.T) {
			flood, err := anomaly.NewFloodSignal(params)
			assert.ErrorIs(t, err, anomaly.ErrConfiguration)
			assert.Nil(t, flood)
		})
	}
}

// A shared FloodSignal may be used from several goroutines.
func TestFloodConcurrentUse(t *testing.T) {
	signal := signals.Linspace(-1, 1, 1000)
	flood, err := anomaly.NewFloodSignal(anomaly.FloodParams{NoiseLevel: 0.2, Seed: 1})
	require.NoError(t, err)

	var wg sync.WaitGroup
	outputs := make([][]float64, 8)
	for i := range outputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outputs[i], _ = flood.Transform(signal)
		}()
	}
	wg.Wait()

	for _, out := range outputs {
		testutil.RequireAtLeast(t, out, signal)
	}
}

// Flooding a power spectral density raises its floor without lowering any bin.
func TestFloodPSD(t *testing.T) {
	axis := signals.Linspace(0, 30, 500)
	wave := signals.SineSum(axis,
		signals.Component{Amplitude: 10, Frequency: 3},
		signals.Component{Amplitude: 1, Frequency: 20},
		signals.Component{Amplitude: 3, Frequency: 30},
	)
	noisy := signals.AddGaussianNoise(wave, rand.New(rand.NewPCG(42, 0)), 0.1)

	_, pxx, err := spectral.Welch(noisy, 500, spectral.WithSegmentLength(256))
	require.NoError(t, err)

	flood, err := anomaly.NewFloodSignal(anomaly.FloodParams{NoiseLevel: 0.1, Seed: 3})
	require.NoError(t, err)
	flooded, err := flood.Transform(pxx)
	require.NoError(t, err)

	assert.Len(t, flooded, len(pxx))
	testutil.RequireAtLeast(t, flooded, pxx)
	assert.NotEmpty(t, testutil.ChangedIndices(pxx, flooded, 0))
}

type constantSampler float64

func (c constantSampler) Sample(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(c)
	}
	return out
}

type shortSampler struct{}

func (shortSampler) Sample(n int) []float64 {
	return make([]float64, max(n-1, 0))
}
