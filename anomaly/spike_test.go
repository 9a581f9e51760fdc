package anomaly_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptecltd/virtualanomaly/anomaly"
	"github.com/synaptecltd/virtualanomaly/internal/testutil"
	"github.com/synaptecltd/virtualanomaly/signals"
	"github.com/synaptecltd/virtualanomaly/spectral"
	"gonum.org/v1/gonum/floats"
)

// Returns a 2500 sample axis (0 to 100 in steps of 0.04) and a noisy three-tone signal on it.
func spikeFixture() ([]float64, []float64) {
	axis := signals.Arange(0, 100, 1.0/25)
	signal := signals.SineSum(axis,
		signals.Component{Amplitude: 1, Frequency: 1},
		signals.Component{Amplitude: 0.5, Frequency: 2},
		signals.Component{Amplitude: 0.9, Frequency: 3},
	)
	rng := rand.New(rand.NewPCG(42, 0))
	return axis, signals.AddGaussianNoise(signal, rng, 0.1)
}

func TestAddSpikeModulation(t *testing.T) {
	axis, _ := spikeFixture()
	spike, err := anomaly.NewAddSpike(axis, anomaly.SpikeParams{Center: 0.5, Size: 0.1, Amplitude: 0.5})
	require.NoError(t, err)

	modulation := spike.Modulation()
	assert.Len(t, modulation, len(axis))
	for i, w := range modulation {
		assert.GreaterOrEqual(t, w, 0.0, "modulation window should not have negative values at %d", i)
		assert.LessOrEqual(t, w, 1.0, "modulation window should not exceed 1 at %d", i)
	}
	assert.Greater(t, floats.Max(modulation), 0.0)

	// the accessor hands out a copy
	modulation[12] = 42
	assert.NotEqual(t, 42.0, spike.Modulation()[12])

	assert.Equal(t, "spike", spike.TypeAsString())
	assert.Equal(t, 0.5, spike.GetCenter())
	assert.Equal(t, 0.1, spike.GetSize())
	assert.Equal(t, 0.5, spike.GetAmplitude())
	assert.Equal(t, axis, spike.GetAxis())
}

func TestAddSpikeTransform(t *testing.T) {
	axis, signal := spikeFixture()
	original := slices.Clone(signal)

	spike, err := anomaly.NewAddSpike(axis, anomaly.SpikeParams{Center: 0.5, Size: 0.1, Amplitude: 0.5})
	require.NoError(t, err)

	out, err := spike.Transform(signal)
	require.NoError(t, err)

	assert.Len(t, out, len(signal))
	assert.NotEqual(t, signal, out, "the output signal should differ from the input signal")
	assert.Equal(t, original, signal, "the input signal must not be modified")

	modulation := spike.Modulation()
	for i := range out {
		assert.InDelta(t, signal[i]+0.5*modulation[i], out[i], 1e-12)
	}

	// only samples within one window size of the centre change
	for _, i := range testutil.ChangedIndices(signal, out, 0) {
		assert.InDelta(t, 0.5, axis[i], 0.1)
	}
}

func TestAddSpikeNegativeAmplitudeDips(t *testing.T) {
	axis, signal := spikeFixture()
	spike, err := anomaly.NewAddSpike(axis, anomaly.SpikeParams{Center: 0.5, Size: 0.1, Amplitude: -0.3})
	require.NoError(t, err)

	out, err := spike.Transform(signal)
	require.NoError(t, err)

	peak := floats.MaxIdx(spike.Modulation())
	assert.Less(t, out[peak], signal[peak])
	for i := range out {
		assert.LessOrEqual(t, out[i], signal[i])
	}
}

func TestAddSpikeZeroAmplitudeIsIdentity(t *testing.T) {
	axis, signal := spikeFixture()
	spike, err := anomaly.NewAddSpike(axis, anomaly.SpikeParams{Center: 0.5, Size: 0.1})
	require.NoError(t, err)

	out, err := spike.Transform(signal)
	require.NoError(t, err)
	assert.Equal(t, signal, out)
}

func TestAddSpikeInvalid(t *testing.T) {
	axis, signal := spikeFixture()

	for _, size := range []float64{0, -0.1} {
		spike, err := anomaly.NewAddSpike(axis, anomaly.SpikeParams{Center: 0.5, Size: size, Amplitude: 1})
		assert.ErrorIs(t, err, anomaly.ErrConfiguration)
		assert.Nil(t, spike)
	}

	_, err := anomaly.NewAddSpike(nil, anomaly.SpikeParams{Center: 0.5, Size: 0.1})
	assert.ErrorIs(t, err, anomaly.ErrConfiguration)

	_, err = anomaly.NewAddSpike([]float64{0, 2, 1}, anomaly.SpikeParams{Center: 0.5, Size: 0.1})
	assert.ErrorIs(t, err, anomaly.ErrConfiguration)

	spike, err := anomaly.NewAddSpike(axis, anomaly.SpikeParams{Center: 0.5, Size: 0.1, Amplitude: 1})
	require.NoError(t, err)
	out, err := spike.Transform(signal[:100])
	assert.ErrorIs(t, err, anomaly.ErrShapeMismatch)
	assert.Nil(t, out)
}

// The axis is copied at construction, so later edits by the caller have no effect.
func TestAddSpikeOwnsAxis(t *testing.T) {
	axis, signal := spikeFixture()
	spike, err := anomaly.NewAddSpike(axis, anomaly.SpikeParams{Center: 0.5, Size: 0.1, Amplitude: 1})
	require.NoError(t, err)
	before, err := spike.Transform(signal)
	require.NoError(t, err)

	axis[0] = 1000
	after, err := spike.Transform(signal)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 0.0, spike.GetAxis()[0])
}

// Spikes and dips can be placed on a power spectral density using its frequencies as the axis.
func TestAddSpikeOnPSD(t *testing.T) {
	_, signal := spikeFixture()
	f, pxx, err := spectral.Welch(signal, 25)
	require.NoError(t, err)

	spike, err := anomaly.NewAddSpike(f, anomaly.SpikeParams{Center: f[50], Size: f[2], Amplitude: 0.5})
	require.NoError(t, err)
	dip, err := anomaly.NewAddSpike(f, anomaly.SpikeParams{Center: f[60], Size: f[2], Amplitude: -0.3})
	require.NoError(t, err)

	spiked, err := spike.Transform(pxx)
	require.NoError(t, err)
	dipped, err := dip.Transform(pxx)
	require.NoError(t, err)

	assert.InDelta(t, pxx[50]+0.5, spiked[50], 1e-9)
	assert.InDelta(t, pxx[60]-0.3, dipped[60], 1e-9)
	for i := range pxx {
		if i <= 48 || i >= 52 {
			assert.InDelta(t, pxx[i], spiked[i], 1e-9, "bin %d", i)
		}
		if i <= 58 || i >= 62 {
			assert.InDelta(t, pxx[i], dipped[i], 1e-9, "bin %d", i)
		}
	}
}
