package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/chartkit/engine"
)

func TestWriteSpecCSVAxis(t *testing.T) {
	spec := &engine.ChartSpec{
		Type: engine.ChartBar,
		Series: []engine.SeriesSpec{
			{Name: "revenue", Data: []engine.Point{{"EU", 120.0}, {"US", 90.5}}},
			{Name: "cost", Data: []engine.Point{{"US", 30.0}, {"APAC", 7.0}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSpecCSV(&buf, spec))

	assert.Equal(t, "Label,revenue,cost\nEU,120,\nUS,90.50,30\nAPAC,,7\n", buf.String())
}

func TestWriteSpecCSVDonut(t *testing.T) {
	spec := &engine.ChartSpec{
		Type:    engine.ChartDonut,
		Dataset: &engine.Dataset{Source: []engine.Slice{{Label: "B", Value: 20}, {Label: "A", Value: 15}}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSpecCSV(&buf, spec))

	assert.Equal(t, "Label,Value\nB,20\nA,15\n", buf.String())
}

func TestFmtNum(t *testing.T) {
	assert.Equal(t, "42", fmtNum(42))
	assert.Equal(t, "-3", fmtNum(-3))
	assert.Equal(t, "0.33", fmtNum(1.0/3))
}

func TestSQLDriver(t *testing.T) {
	assert.Equal(t, "postgres", sqlDriver("PostgreSQL"))
	assert.Equal(t, "sqlite", sqlDriver("sqlite3"))
	assert.Equal(t, "mysql", sqlDriver("mysql"))
}

func TestSplitOrigins(t *testing.T) {
	assert.Nil(t, splitOrigins(""))
	assert.Equal(t, []string{"http://a", "http://b"}, splitOrigins(" http://a, ,http://b"))
}
