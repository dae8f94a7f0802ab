package chunking

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		strategy string
		want     Params
	}{
		{StrategyFixed, Params{ParamChunkSize: 100, ParamOverlap: 0}},
		{StrategySentence, Params{ParamMaxChunkSize: 500, ParamOverlap: 0}},
		{StrategyParagraph, Params{ParamMaxChunkSize: nil, ParamOverlap: 0}},
		{StrategyRecursive, Params{ParamChunkSize: 500, ParamOverlap: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			got, err := Resolve(tt.strategy, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOverridesAndPassesThrough(t *testing.T) {
	supplied := Params{ParamOverlap: 10, "note": "kept"}
	got, err := Resolve(StrategyFixed, supplied)
	require.NoError(t, err)

	assert.Equal(t, Params{ParamChunkSize: 100, ParamOverlap: 10, "note": "kept"}, got)
	assert.Equal(t, Params{ParamOverlap: 10, "note": "kept"}, supplied, "input must not be mutated")

	again, err := Resolve(StrategyFixed, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, again[ParamOverlap], "defaults must not be mutated")
}

func TestResolveUnknownStrategy(t *testing.T) {
	_, err := Resolve("unknown", Params{})
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestParamsInt(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantOK  bool
		wantErr bool
	}{
		{"int", 7, 7, true, false},
		{"int64", int64(8), 8, true, false},
		{"float64", float64(9), 9, true, false},
		{"json number", json.Number("10"), 10, true, false},
		{"null", nil, 0, false, false},
		{"fractional", 1.5, 0, false, true},
		{"string", "12", 0, false, true},
		{"bad json number", json.Number("1e3"), 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Params{"k": tt.value}.Int("k")
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidParameter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}

	_, ok, err := Params{}.Int("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
