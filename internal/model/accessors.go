package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// GetString reads path as a string. Fails (ok=false) if absent or not
// a string.
func (d *Document) GetString(path string) (string, bool) {
	v, ok := d.Get(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SetString writes a string value at path.
func (d *Document) SetString(path, value string) error {
	return d.Set(path, value)
}

// GetInt32 reads path as a signed 32-bit integer. Accepts json.Number,
// float64 and native int32 representations.
func (d *Document) GetInt32(path string) (int32, bool) {
	v, ok := d.Get(path)
	if !ok {
		return 0, false
	}
	return toInt32(v)
}

func toInt32(v any) (int32, bool) {
	switch t := v.(type) {
	case int32:
		return t, true
	case int:
		return int32(t), true
	case int64:
		return int32(t), true
	case float64:
		return int32(t), true
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return int32(i), true
		}
		if f, err := t.Float64(); err == nil {
			return int32(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// SetInt32 writes a signed 32-bit integer at path.
func (d *Document) SetInt32(path string, value int32) error {
	return d.Set(path, value)
}

// GetArray reads path as an array of decoded values.
func (d *Document) GetArray(path string) ([]any, bool) {
	v, ok := d.Get(path)
	if !ok {
		return nil, false
	}
	a, ok := v.([]any)
	return a, ok
}

// SetArray writes an array value at path.
func (d *Document) SetArray(path string, value []any) error {
	return d.Set(path, value)
}

// Stringify renders a decoded JSON value the way string.concat does:
// strings verbatim, numbers via their canonical decimal form, and
// objects/arrays via their serialized JSON form. Booleans and null are
// also supported for completeness. ok is false for unsupported types.
func Stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	case nil:
		return "null", true
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	default:
		return fmt.Sprintf("%v", t), false
	}
}
