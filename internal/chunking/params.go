package chunking

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Strategy names.
const (
	StrategyFixed     = "fixed"
	StrategySentence  = "sentence"
	StrategyParagraph = "paragraph"
	StrategyRecursive = "recursive"
)

// Parameter keys understood by the built-in strategies.
const (
	ParamChunkSize    = "chunk_size"
	ParamMaxChunkSize = "max_chunk_size"
	ParamOverlap      = "overlap"
)

// Params maps option names to values. Values may be Go integers or numbers
// as produced by encoding/json.
type Params map[string]any

var defaults = map[string]Params{
	StrategyFixed:     {ParamChunkSize: 100, ParamOverlap: 0},
	StrategySentence:  {ParamMaxChunkSize: 500, ParamOverlap: 0},
	StrategyParagraph: {ParamMaxChunkSize: nil, ParamOverlap: 0},
	StrategyRecursive: {ParamChunkSize: 500, ParamOverlap: 50},
}

// Resolve returns the defaults for strategy overridden key by key with
// supplied. Keys the strategy does not use are passed through.
func Resolve(strategy string, supplied Params) (Params, error) {
	base, ok := defaults[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
	merged := make(Params, len(base)+len(supplied))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range supplied {
		merged[k] = v
	}
	return merged, nil
}

// Int returns the integer stored under key. A missing or null value yields
// (0, false, nil).
func (p Params) Int(key string) (int, bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int32:
		return int(n), true, nil
	case int64:
		return int(n), true, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidParameter, key, n)
		}
		return int(n), true, nil
	case json.Number:
		i, err := strconv.Atoi(n.String())
		if err != nil {
			return 0, false, fmt.Errorf("%w: %s must be an integer, got %s", ErrInvalidParameter, key, n)
		}
		return i, true, nil
	default:
		return 0, false, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidParameter, key, v)
	}
}

// IntOr is Int with a fallback for missing or null values.
func (p Params) IntOr(key string, fallback int) (int, error) {
	n, ok, err := p.Int(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	return n, nil
}
