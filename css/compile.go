package css

import (
	"strings"

	"sketchgen/style"
)

var sides = [...]string{"Top", "Right", "Bottom", "Left"}

// Compile folds the stylesheet rules into a selector keyed style sheet.
// Declarations of later rules override earlier ones for the same key.
func (s *Stylesheet) Compile() style.Stylesheet {
	out := make(style.Stylesheet, len(s.Rules))
	for _, r := range s.Rules {
		key := r.Selector.Key()
		out[key] = style.Merge(out[key], declarations(r.Properties, r.Order))
	}
	return out
}

// Inline parses a style attribute into a style mapping.
func (p *Parser) Inline(decl string) style.Style {
	if strings.TrimSpace(decl) == "" {
		return nil
	}
	props, order := p.ParseInline(decl)
	return declarations(props, order)
}

func declarations(props map[string]Value, order []string) style.Style {
	out := make(style.Style, len(order))
	for _, name := range order {
		expand(out, name, props[name])
	}
	return out
}

// expand stores a declaration under its camel cased name, splitting box
// shorthands into per side properties.
func expand(out style.Style, name string, v Value) {
	switch name {
	case "margin", "padding", "border-width", "border-color", "border-style":
		fields := strings.Fields(v.Raw)
		if len(fields) <= 1 {
			out[camelCase(name)] = v.StyleValue()
			return
		}
		prefix, suffix := camelCase(name), ""
		if kind, ok := strings.CutPrefix(name, "border-"); ok {
			// border-width -> borderTopWidth
			prefix, suffix = "border", strings.ToUpper(kind[:1])+kind[1:]
		}
		for i, f := range boxValues(fields) {
			out[prefix+sides[i]+suffix] = single(f)
		}
	case "border":
		border(out, "border", v)
	case "border-top", "border-right", "border-bottom", "border-left":
		border(out, camelCase(name), v)
	default:
		out[camelCase(name)] = v.StyleValue()
	}
}

// border splits "1px solid red" into width, style and color properties.
func border(out style.Style, prefix string, v Value) {
	for f := range strings.FieldsSeq(v.Raw) {
		val := single(f)
		switch {
		case isNumber(val):
			out[prefix+"Width"] = val
		case isBorderStyle(f):
			out[prefix+"Style"] = strings.ToLower(f)
		default:
			out[prefix+"Color"] = f
		}
	}
}

// boxValues expands 1 to 4 CSS box values to top, right, bottom, left.
func boxValues(f []string) [4]string {
	switch len(f) {
	case 1:
		return [4]string{f[0], f[0], f[0], f[0]}
	case 2:
		return [4]string{f[0], f[1], f[0], f[1]}
	case 3:
		return [4]string{f[0], f[1], f[2], f[1]}
	default:
		return [4]string{f[0], f[1], f[2], f[3]}
	}
}

// single converts one whitespace free token to a style value.
func single(tok string) any {
	if tok == "" || !strings.ContainsAny(tok[:1], "0123456789.-+") {
		return tok
	}
	num, unit := parseDimension(tok)
	switch unit {
	case "", "px", "em", "rem", "pt", "%":
		return Value{Raw: tok, Value: num, Unit: unit}.StyleValue()
	}
	return tok
}

func isNumber(v any) bool {
	_, ok := v.(float64)
	return ok
}

func isBorderStyle(s string) bool {
	switch strings.ToLower(s) {
	case "none", "hidden", "solid", "dashed", "dotted", "double", "groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

// camelCase converts kebab-case CSS property names to camelCase.
func camelCase(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	var sb strings.Builder
	upper := false
	for i, r := range strings.TrimLeft(name, "-") {
		switch {
		case r == '-':
			upper = i > 0
		case upper:
			sb.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
