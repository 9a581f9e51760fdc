package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/synaptecltd/virtualanomaly/signals"
)

// readSeries reads axis,value rows. A first row that does not parse as
// numbers is treated as a header.
func readSeries(r io.Reader) ([]float64, []float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var axis, values []float64
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		x, errX := strconv.ParseFloat(record[0], 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		if errX != nil || errY != nil {
			if line == 1 {
				continue
			}
			return nil, nil, fmt.Errorf("line %d: %w", line, errors.Join(errX, errY))
		}
		axis = append(axis, x)
		values = append(values, y)
	}
	if len(axis) == 0 {
		return nil, nil, errors.New("input has no samples")
	}
	return axis, values, nil
}

func writeSeries(w io.Writer, axis, original, anomalous []float64) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"axis", "original", "anomalous"}); err != nil {
		return err
	}
	for i := range axis {
		record := []string{
			strconv.FormatFloat(axis[i], 'g', -1, 64),
			strconv.FormatFloat(original[i], 'g', -1, 64),
			strconv.FormatFloat(anomalous[i], 'g', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// syntheticSignal returns one of the built-in test signals:
//
//	sine:     100 s at 25 Hz, tones at 1, 2 and 3 Hz plus gaussian noise
//	chainsaw: 500 samples on [0,1], a falling ramp with three triangular spikes
func syntheticSignal(name string) ([]float64, []float64, error) {
	switch name {
	case "sine":
		axis := signals.Arange(0, 100, 1.0/25)
		signal := signals.SineSum(axis,
			signals.Component{Amplitude: 1, Frequency: 1},
			signals.Component{Amplitude: 0.5, Frequency: 2},
			signals.Component{Amplitude: 0.9, Frequency: 3},
		)
		rng := rand.New(rand.NewPCG(42, 0))
		return axis, signals.AddGaussianNoise(signal, rng, 0.1), nil
	case "chainsaw":
		axis := signals.Linspace(0, 1, 500)
		return axis, signals.Chainsaw(500, 0, -5, []int{20, 100, 200}, 20, 1), nil
	default:
		return nil, nil, fmt.Errorf("unknown synthetic signal: %s", name)
	}
}
