// Command anomalyinject injects configured anomalies into a one-dimensional
// signal read from CSV, or into a synthetic test signal.
//
// Usage:
//
//	anomalyinject apply --config transforms.yaml --input signal.csv --output out.csv
//	anomalyinject apply --config transforms.yaml --synthetic sine --psd
//	anomalyinject kernels
//
// The config file holds a "transforms" list; each entry is selected by its
// "type" field (spike, delay or flood).
package main

import "log"

func main() {
	log.SetFlags(0)
	log.SetPrefix("anomalyinject: ")

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
