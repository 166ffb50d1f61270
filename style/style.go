// Package style holds style mappings, the selector keyed stylesheet and the
// inherited style context carried down the component tree.
package style

import (
	"maps"
	"strconv"
	"strings"
)

// Style maps a camel cased property name ("fontSize", "borderTopColor") to
// its value. Values are strings, float64 numbers or nested structures
// (slices, maps) taken verbatim from the description.
type Style map[string]any

// Clone returns a shallow copy of the style. Nil stays nil.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// Merge returns a new style with all sources folded left to right, later
// sources override earlier ones on key collision. Nil sources contribute
// nothing. Result is never nil.
func Merge(sources ...Style) Style {
	n := 0
	for _, s := range sources {
		n += len(s)
	}
	out := make(Style, n)
	for _, s := range sources {
		maps.Copy(out, s)
	}
	return out
}

// Pick returns a new style with only the listed keys present in s.
func (s Style) Pick(keys []string) Style {
	out := make(Style, len(keys))
	for _, k := range keys {
		if v, ok := s[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Omit returns a new style without the listed keys.
func (s Style) Omit(keys ...string) Style {
	out := s.Clone()
	if out == nil {
		return Style{}
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// HasAny reports whether at least one of keys is defined (present and not nil).
func (s Style) HasAny(keys []string) bool {
	for _, k := range keys {
		if v, ok := s[k]; ok && v != nil {
			return true
		}
	}
	return false
}

// String returns the value of key as a string. Numbers are formatted.
func (s Style) String(key string) (string, bool) {
	switch v := s[key].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// Number returns the value of key as a number. Strings carrying a plain
// number or a pixel length ("12", "12px") are accepted, anything else
// (percentages, keywords) is not a number.
func (s Style) Number(key string) (float64, bool) {
	return ToNumber(s[key])
}

// ToNumber converts a style value to a number, see Style.Number.
func ToNumber(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		raw := strings.TrimSpace(v)
		raw = strings.TrimSuffix(raw, "px")
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
