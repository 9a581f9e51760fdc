package anomaly

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Returns a decodeHook function that can be used to unmarshal transform parameters from a yaml file using mapstructure.
// This supports configuration solutions like spf13/viper that use mapstructure to unmarshal yaml files.
func GetDecodeHook() (mapstructure.DecodeHookFunc, error) {
	paramsType := reflect.TypeOf((*TransformParams)(nil)).Elem()
	decodeHook := func(f reflect.Type, t reflect.Type, yamlEntry interface{}) (interface{}, error) {
		if t == paramsType {
			// If the target type is TransformParams, create the correct parameter type from the yaml entry
			return createParamsFromYamlEntry(yamlEntry)
		}
		// Otherwise, return the yaml entry as is (default behaviour)
		return yamlEntry, nil
	}

	return decodeHook, nil
}

// Creates transform parameters from a yaml entry based on the "type" (or "Type") field.
func createParamsFromYamlEntry(yamlEntry interface{}) (TransformParams, error) {
	// yaml entries should always be a string key with some sort of value
	m, err := toStringMap(yamlEntry)
	if err != nil {
		return nil, err
	}

	// must check both m["type"] and m["Type"] because some yaml parsers convert to lower case and some don't
	typeStr, ok := m["type"].(string)
	if !ok {
		typeStr, ok = m["Type"].(string)
		if !ok {
			return nil, errors.New("transform type field is missing or not a string")
		}
	}

	switch typeStr {
	case "spike":
		return decodeParams[SpikeParams](m)
	case "delay":
		return decodeParams[DelayParams](m)
	case "flood":
		return decodeParams[FloodParams](m)
	default:
		return nil, fmt.Errorf("unknown transform type: %s", typeStr)
	}
}

// Use mapstructure to decode an entry into a parameter struct. Unknown keys,
// including "type", are ignored.
func decodeParams[T TransformParams](m map[string]interface{}) (TransformParams, error) {
	var params T
	decoderConfig := &mapstructure.DecoderConfig{
		Result: &params,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(m); err != nil {
		return nil, err
	}
	return params, nil
}

// yaml.v2 decodes nested maps with interface{} keys, viper with string keys.
func toStringMap(entry interface{}) (map[string]interface{}, error) {
	switch m := entry.(type) {
	case map[string]interface{}:
		return m, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("yaml entry has non-string key: %v", k)
			}
			out[key] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("yaml entry cannot be parsed to map[string]interface{}: %v", entry)
	}
}
