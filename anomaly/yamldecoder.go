package anomaly

import (
	"fmt"
)

// Config is a list of transform parameters, in application order. It is
// decoded from YAML (or through GetDecodeHook) and never written back.
type Config []TransformParams

// Unmarshals a yaml list of transform entries into the config. Each entry is
// selected by its "type" field.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	// Temporary structure to unmarshal the yaml file
	var unmarshaledYaml []map[string]interface{}
	if err := unmarshal(&unmarshaledYaml); err != nil {
		return err
	}

	for i, yamlEntry := range unmarshaledYaml {
		params, err := createParamsFromYamlEntry(yamlEntry)
		if err != nil {
			return fmt.Errorf("transform entry %d: %w", i, err)
		}
		*c = append(*c, params)
	}

	return nil
}

// Build creates every transform for dataAxis and returns them as a chain.
func (c Config) Build(dataAxis []float64) (*Chain, error) {
	chain := NewChain()
	for i, params := range c {
		transform, err := params.Build(dataAxis)
		if err != nil {
			return nil, fmt.Errorf("%s transform %d: %w", params.TypeAsString(), i, err)
		}
		chain.AddTransform(transform)
	}
	return chain, nil
}
