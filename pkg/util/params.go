package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Helpers for reading loosely typed tool arguments decoded from JSON, where
// numbers arrive as float64 and clients sometimes send them as strings.

// GetAsString converts various types to string
func GetAsString(s any) (string, error) {
	if s == nil {
		return "", fmt.Errorf("cannot convert nil to string")
	}
	switch v := s.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// GetAsFloat converts numbers and numeric strings to a finite float64
func GetAsFloat(s any) (float64, error) {
	if s == nil {
		return 0, fmt.Errorf("cannot convert nil to number")
	}
	var f float64
	switch v := s.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string '%s' to number: %w", v, err)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("cannot convert type %T to number", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("number %v is not finite", f)
	}
	return f, nil
}

// GetAsInteger converts whole numbers and integer strings to int
func GetAsInteger(s any) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("cannot convert nil to integer")
	}
	switch v := s.(type) {
	case int:
		return v, nil
	case int64:
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("int64 value %d is out of int range", v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("float64 value %f is not a whole number", v)
		}
		return int(v), nil
	case string:
		result, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("cannot convert string '%s' to integer: %w", v, err)
		}
		return result, nil
	default:
		return 0, fmt.Errorf("cannot convert type %T to integer", s)
	}
}

// GetAsBool accepts bools and the strings understood by strconv.ParseBool
func GetAsBool(s any) (bool, error) {
	switch v := s.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("cannot convert string '%s' to bool: %w", v, err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot convert type %T to bool", s)
	}
}

// Params wraps a decoded JSON object with typed accessors
type Params map[string]any

// String returns the named argument, or def when it is absent
func (p Params) String(name, def string) (string, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	s, err := GetAsString(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// Float returns a required numeric argument
func (p Params) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("%s parameter is required", name)
	}
	f, err := GetAsFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// FloatOr returns a numeric argument, or def when it is absent
func (p Params) FloatOr(name string, def float64) (float64, error) {
	if v, ok := p[name]; !ok || v == nil {
		return def, nil
	}
	return p.Float(name)
}

// Floats reads several required numeric arguments in order
func (p Params) Floats(names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		f, err := p.Float(name)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// Int returns an integer argument, or def when it is absent
func (p Params) Int(name string, def int) (int, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	i, err := GetAsInteger(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return i, nil
}

// Bool returns a boolean argument, or def when it is absent
func (p Params) Bool(name string, def bool) (bool, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	b, err := GetAsBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}
