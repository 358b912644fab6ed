package overlay

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DecodeGrid converts a raw configuration value (as produced by a YAML or
// JSON decoder) into a GridValue:
//
//	nil, false    -> GridOff
//	true          -> GridOn
//	"#hex"        -> GridColor
//	number        -> GridSize
//	map           -> GridOptions
func DecodeGrid(raw any) (GridValue, error) {
	switch v := raw.(type) {
	case nil:
		return GridOff{}, nil
	case GridValue:
		return v, nil
	case bool:
		if v {
			return GridOn{}, nil
		}
		return GridOff{}, nil
	case string:
		if v == "" {
			return GridOff{}, nil
		}
		return GridColor(v), nil
	case map[string]any:
		var opts GridOptions
		if err := decodeMap(v, &opts); err != nil {
			return nil, fmt.Errorf("grid: %w", err)
		}
		return opts, nil
	}
	if n, ok := number(raw); ok {
		return GridSize(n), nil
	}
	return nil, fmt.Errorf("grid: unsupported value %T: %w", raw, domain.ErrInvalidOption)
}

// DecodeEnvironment converts a raw configuration value into an
// EnvironmentValue:
//
//	nil, false       -> EnvOff
//	true             -> EnvOn
//	"top-right" etc. -> Location
//	other string     -> EnvColor
//	{x, y}           -> Point
//	map              -> EnvironmentOptions
func DecodeEnvironment(raw any) (EnvironmentValue, error) {
	switch v := raw.(type) {
	case nil:
		return EnvOff{}, nil
	case EnvironmentValue:
		return v, nil
	case bool:
		if v {
			return EnvOn{}, nil
		}
		return EnvOff{}, nil
	case string:
		if v == "" {
			return EnvOff{}, nil
		}
		if loc, ok := ParseLocation(v); ok {
			return loc, nil
		}
		return EnvColor(v), nil
	case map[string]any:
		if isPoint(v) {
			var p Point
			if err := decodeMap(v, &p); err != nil {
				return nil, fmt.Errorf("environment: %w", err)
			}
			return p, nil
		}
		var opts EnvironmentOptions
		if err := decodeMap(v, &opts); err != nil {
			return nil, fmt.Errorf("environment: %w", err)
		}
		if opts.Location != "" {
			if _, ok := ParseLocation(string(opts.Location)); !ok {
				return nil, fmt.Errorf("environment: unknown location %q: %w", opts.Location, domain.ErrInvalidOption)
			}
		}
		return opts, nil
	}
	return nil, fmt.Errorf("environment: unsupported value %T: %w", raw, domain.ErrInvalidOption)
}

func decodeMap(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrInvalidOption)
	}
	return nil
}

func isPoint(m map[string]any) bool {
	if len(m) != 2 {
		return false
	}
	_, hasX := m["x"]
	_, hasY := m["y"]
	return hasX && hasY
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
