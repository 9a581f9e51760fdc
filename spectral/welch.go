// Package spectral estimates power spectral densities so anomalies can be
// injected into spectra as well as time series.
package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultSegmentLength is the Welch segment length used when none is given.
const DefaultSegmentLength = 256

// A 2-point Hann window is all zeros.
const minSegmentLength = 3

// WelchOption configures Welch.
type WelchOption func(*welchConfig)

type welchConfig struct {
	segmentLength int
	overlap       int // -1 selects half the segment length
}

// WithSegmentLength sets the number of samples per segment.
func WithSegmentLength(n int) WelchOption {
	return func(c *welchConfig) {
		c.segmentLength = n
	}
}

// WithOverlap sets the number of samples shared by consecutive segments.
func WithOverlap(n int) WelchOption {
	return func(c *welchConfig) {
		c.overlap = n
	}
}

// Welch estimates the one-sided power spectral density of signal sampled at
// sampleRate, averaging Hann-windowed, mean-removed periodograms of
// overlapping segments. Power is in units^2/Hz. A signal shorter than the
// segment length is analysed as a single segment.
func Welch(signal []float64, sampleRate float64, opts ...WelchOption) (freqs, power []float64, err error) {
	cfg := welchConfig{segmentLength: DefaultSegmentLength, overlap: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !(sampleRate > 0) {
		return nil, nil, fmt.Errorf("welch sampleRate must be > 0: %f", sampleRate)
	}
	if cfg.segmentLength < minSegmentLength {
		return nil, nil, fmt.Errorf("welch segment length must be >= %d: %d", minSegmentLength, cfg.segmentLength)
	}
	nperseg := min(cfg.segmentLength, len(signal))
	if nperseg < minSegmentLength {
		return nil, nil, fmt.Errorf("welch requires at least %d samples: %d", minSegmentLength, len(signal))
	}
	noverlap := cfg.overlap
	if noverlap < 0 {
		noverlap = nperseg / 2
	}
	if noverlap >= nperseg {
		return nil, nil, fmt.Errorf("welch overlap must be < segment length: %d >= %d", noverlap, nperseg)
	}

	win := window.Hann(nperseg)
	scale := 1 / (sampleRate * floats.Dot(win, win))

	hop := nperseg - noverlap
	segments := 1 + (len(signal)-nperseg)/hop
	nfreq := nperseg/2 + 1

	power = make([]float64, nfreq)
	re := make([]float64, nfreq)
	im := make([]float64, nfreq)
	periodogram := make([]float64, nfreq)
	segment := make([]float64, nperseg)

	for s := range segments {
		start := s * hop
		copy(segment, signal[start:start+nperseg])
		floats.AddConst(-stat.Mean(segment, nil), segment)
		floats.Mul(segment, win)

		spectrum := fft.FFTReal(segment)
		for k := range nfreq {
			re[k] = real(spectrum[k])
			im[k] = imag(spectrum[k])
		}
		vecmath.Power(periodogram, re, im)
		floats.Add(power, periodogram)
	}

	floats.Scale(scale/float64(segments), power)
	// fold negative frequencies onto positive ones; DC and Nyquist have no mirror
	last := nfreq
	if nperseg%2 == 0 {
		last = nfreq - 1
	}
	for k := 1; k < last; k++ {
		power[k] *= 2
	}

	freqs = make([]float64, nfreq)
	for k := range freqs {
		freqs[k] = float64(k) * sampleRate / float64(nperseg)
	}
	return freqs, power, nil
}
