package engine

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/chartkit/query"
)

// ============================================================================
// CONFIG COMPATIBILITY — Legacy y-axis migration
// ============================================================================
// Older configs stored y_axis as a bare list of measures. A y-axis read from
// storage is one of two variants; AdaptYAxis maps either to the current shape.
// ============================================================================

// YAxisInput is a stored y-axis: LegacySeriesList or YAxisConfig.
type YAxisInput interface {
	yAxisInput()
}

// LegacySeriesList is the old y_axis shape: measures only, no overrides.
type LegacySeriesList []query.Measure

func (LegacySeriesList) yAxisInput() {}
func (YAxisConfig) yAxisInput()      {}

// AdaptYAxis returns the current y-axis shape for any stored variant.
// Legacy measures become series with no overrides; a current config is
// returned unchanged.
func AdaptYAxis(in YAxisInput) YAxisConfig {
	switch v := in.(type) {
	case LegacySeriesList:
		series := make([]Series, len(v))
		for i, m := range v {
			series[i] = Series{Measure: m}
		}
		return YAxisConfig{Series: series}
	case YAxisConfig:
		return v
	default:
		return YAxisConfig{}
	}
}

// yAxisFields has YAxisConfig's layout without its decode methods.
type yAxisFields YAxisConfig

// DecodeYAxisJSON reads either stored y-axis variant from JSON.
func DecodeYAxisJSON(data []byte) (YAxisInput, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var legacy LegacySeriesList
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, err
		}
		return legacy, nil
	}
	var current yAxisFields
	if err := json.Unmarshal(trimmed, &current); err != nil {
		return nil, err
	}
	return YAxisConfig(current), nil
}

// DecodeYAxisYAML reads either stored y-axis variant from a YAML node.
func DecodeYAxisYAML(node *yaml.Node) (YAxisInput, error) {
	if node.Kind == yaml.SequenceNode {
		var legacy LegacySeriesList
		if err := node.Decode(&legacy); err != nil {
			return nil, err
		}
		return legacy, nil
	}
	var current yAxisFields
	if err := node.Decode(&current); err != nil {
		return nil, err
	}
	return YAxisConfig(current), nil
}

// UnmarshalJSON migrates legacy configs on read.
func (y *YAxisConfig) UnmarshalJSON(data []byte) error {
	in, err := DecodeYAxisJSON(data)
	if err != nil {
		return err
	}
	*y = AdaptYAxis(in)
	return nil
}

// UnmarshalYAML migrates legacy configs on read.
func (y *YAxisConfig) UnmarshalYAML(node *yaml.Node) error {
	in, err := DecodeYAxisYAML(node)
	if err != nil {
		return err
	}
	*y = AdaptYAxis(in)
	return nil
}
