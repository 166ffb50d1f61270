package css

import (
	"strconv"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "px", "%", "em", "pt"
	Keyword string  // Keyword if applicable: "bold", "center", "#ff0000"
}

// IsNumeric returns true if the value has a numeric component, explicit
// zeros ("0", "0px") included.
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		first := rune(v.Raw[0])
		if unicode.IsDigit(first) || first == '.' || first == '-' || first == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// pxPerEm is the root font size em and rem lengths are resolved against.
const pxPerEm = 16.0

// StyleValue converts v to a style mapping value: absolute lengths and
// plain numbers become float64, percentages stay strings ("50%") so the
// layout engine resolves them, everything else is kept as text.
func (v Value) StyleValue() any {
	if !v.IsNumeric() {
		if v.Keyword != "" {
			return v.Keyword
		}
		return v.Raw
	}
	switch v.Unit {
	case "", "px":
		return v.Value
	case "em", "rem":
		return v.Value * pxPerEm
	case "pt":
		return v.Value * 96 / 72
	case "%":
		return strconv.FormatFloat(v.Value, 'f', -1, 64) + "%"
	default:
		return v.Raw
	}
}

// Selector represents a parsed CSS selector.
type Selector struct {
	Raw   string   // Original selector string
	Parts []string // Simple selectors from outermost to innermost
}

// Key returns the stylesheet key for the selector: every part with its
// class dot removed, joined with a space ("Card hr" for ".Card hr"). Type
// selectors are lower cased like element names, classes keep their case.
func (s Selector) Key() string {
	keys := make([]string, 0, len(s.Parts))
	for _, p := range s.Parts {
		if _, class, found := strings.Cut(p, "."); found {
			p = class
		} else {
			p = strings.ToLower(p)
		}
		keys = append(keys, p)
	}
	return strings.Join(keys, " ")
}

// IsDescendant returns true if this is a descendant selector.
func (s Selector) IsDescendant() bool {
	return len(s.Parts) > 1
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector         // Parsed selector
	Properties map[string]Value // Property name -> value
	Order      []string         // Property names in declaration order
}

// GetProperty returns the value for a property.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule   // Rules in source order
	Warnings []string // Unsupported constructs which were skipped
}

// RulesBySelector returns all rules with the given raw selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Selector.Raw == selector {
			matches = append(matches, r)
		}
	}
	return matches
}
