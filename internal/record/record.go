// Package record provides the open property-bag type shared by extraction,
// validation and CRM mapping. Extracted data arrives from an unreliable text
// generator, so every accessor tolerates missing or wrong-typed values and
// degrades to an "absent" result instead of panicking.
package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a flat mapping of field name to scalar value (string, number,
// bool or nil). Field names are open-ended; consumers only look at the
// fields they know about.
type Record map[string]any

// Get returns the raw value and whether the field exists with a non-nil value.
func (r Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the value as a string if it is one.
func (r Record) String(key string) (string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Text returns the string form of the value, or "" when absent. Floats are
// rendered in plain decimal notation; JSON decoding delivers every number as
// a float64, and fmt.Sprint would put large amounts into scientific form.
func (r Record) Text(key string) string {
	v, ok := r.Get(key)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

// Filled reports whether the field is present with a non-blank string form.
func (r Record) Filled(key string) bool {
	return strings.TrimSpace(r.Text(key)) != ""
}

// Truthy reports whether the value is the boolean true or the string "true".
// Everything else, including absence, is false.
func (r Record) Truthy(key string) bool {
	v, ok := r.Get(key)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}

// IntOr parses the value as an integer, returning def when the field is
// absent or unparseable. Float values are truncated.
func (r Record) IntOr(key string, def int) int {
	v, ok := r.Get(key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return int(f)
		}
	}
	return def
}

// Float returns the value as a float64 where possible.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Clone returns a shallow copy. Mutating the copy never affects the original.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
