package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Errors.
var (
	ErrNotFound  = errors.New("config: key not found")
	ErrWrongType = errors.New("config: value has wrong type")
)

// Config is a nested configuration map read via dotted-path lookup.
// It is built once at boot and treated as read-only afterwards.
type Config struct {
	values map[string]any
}

// New creates a Config from a nested map.
// A nil map yields an empty config where every lookup falls back to defaults.
func New(values map[string]any) *Config {
	if values == nil {
		values = map[string]any{}
	}
	return &Config{values: values}
}

// Load reads YAML configuration from r.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	return New(values), nil
}

// LoadFile reads YAML configuration from the file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Get returns the raw value at the dotted path.
// Returns ErrNotFound if any path segment is missing.
func (c *Config) Get(path string) (any, error) {
	cur := any(c.values)
	for _, seg := range strings.Split(path, ".") {
		m, ok := toStringMap(cur)
		if !ok {
			return nil, ErrNotFound
		}
		cur, ok = m[seg]
		if !ok {
			return nil, ErrNotFound
		}
	}
	return cur, nil
}

// Bool returns the boolean at the dotted path.
// String values "true"/"false" are accepted for env-sourced maps.
func (c *Config) Bool(path string) (bool, error) {
	v, err := c.Get(path)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, ErrWrongType
		}
		return parsed, nil
	default:
		return false, ErrWrongType
	}
}

// BoolOr returns the boolean at the dotted path, or def when the key is
// missing or not a boolean.
func (c *Config) BoolOr(path string, def bool) bool {
	v, err := c.Bool(path)
	if err != nil {
		return def
	}
	return v
}

// String returns the string at the dotted path.
func (c *Config) String(path string) (string, error) {
	v, err := c.Get(path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrWrongType
	}
	return s, nil
}

// StringOr returns the string at the dotted path, or def when the key is
// missing or not a string.
func (c *Config) StringOr(path string, def string) string {
	v, err := c.String(path)
	if err != nil {
		return def
	}
	return v
}

// Int returns the integer at the dotted path.
func (c *Config) Int(path string) (int, error) {
	v, err := c.Get(path)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, ErrWrongType
	}
}

// IntOr returns the integer at the dotted path, or def when the key is
// missing or not numeric.
func (c *Config) IntOr(path string, def int) int {
	v, err := c.Int(path)
	if err != nil {
		return def
	}
	return v
}

// Has reports whether the dotted path exists.
func (c *Config) Has(path string) bool {
	_, err := c.Get(path)
	return err == nil
}

// toStringMap normalizes the map types YAML decoding can produce.
func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
