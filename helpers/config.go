package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/query"
	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// CONFIG FILES — Chart configs, queries and results stored as YAML or JSON
// ============================================================================
// Format follows the file extension; anything other than .json is YAML.
// Chart configs decode the y-axis through engine's legacy adapter, so old
// list-shaped y_axis entries load as current configs.
// ============================================================================

// Format is a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from a file name.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode reads data in format f into v.
func Decode(data []byte, f Format, v any) error {
	if f == FormatJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		return dec.Decode(v)
	}
	return yaml.Unmarshal(data, v)
}

// LoadChartConfig reads a chart config file.
func LoadChartConfig(path string) (engine.ChartConfig, error) {
	var cfg engine.ChartConfig
	if err := loadFile(path, &cfg); err != nil {
		return engine.ChartConfig{}, err
	}
	return cfg, nil
}

// LoadQuery reads a query file. A query without a name gets a unique one.
func LoadQuery(path string) (*query.Query, error) {
	q := &query.Query{AutoExecute: true}
	if err := loadFile(path, q); err != nil {
		return nil, err
	}
	if q.Name == "" {
		q.Name = query.UniqueName()
	}
	return q, nil
}

// LoadResult reads a result from .csv, .xlsx, .json or .yaml.
func LoadResult(path string) (*schema.Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseCSV(data, CSVOptions{})
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, "")
	}

	var res schema.Result
	if err := loadFile(path, &res); err != nil {
		return nil, err
	}
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &res, nil
}

func loadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := Decode(data, FormatFor(path), v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
