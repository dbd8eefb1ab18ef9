package processing

import (
	"fmt"
	"strings"
)

// Params holds the inline YAML keys of one command entry. Lookups fall back to the
// given default when a key is missing or has an unusable type.
type Params map[string]any

func (p Params) String(key, fallback string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return fallback
}

// Int accepts the integer shapes YAML and JSON decoders produce.
func (p Params) Int(key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

// Bool accepts native bools and the strings "true"/"false" in any case.
func (p Params) Bool(key string, fallback bool) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return fallback
}

// Require reports the first key that is absent.
func (p Params) Require(keys ...string) error {
	for _, key := range keys {
		if _, ok := p[key]; !ok {
			return fmt.Errorf("missing required parameter: %s", key)
		}
	}
	return nil
}

// PositiveInt returns a required integer parameter that must be greater than zero.
func (p Params) PositiveInt(key string) (int, error) {
	if err := p.Require(key); err != nil {
		return 0, err
	}
	v := p.Int(key, 0)
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, v)
	}
	return v, nil
}
