package sketch

import (
	"strings"

	"sketchgen/style"
	"sketchgen/tree"
)

// Side of a box.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

var sideNames = [...]string{"top", "right", "bottom", "left"}

func (s Side) String() string { return sideNames[s] }

func (s Side) key(suffix string) string {
	name := sideNames[s]
	return "border" + strings.ToUpper(name[:1]) + name[1:] + suffix
}

const (
	defaultBorderColor = "transparent"
	defaultBorderStyle = "solid"
)

// BorderSide is the resolved border of one side.
type BorderSide struct {
	Width float64
	Color string
	Style string
}

// BorderSpec holds the borders of all sides indexed by Side.
type BorderSpec [4]BorderSide

// ResolveBorders reads per side border width, color and style, each
// defaulting to the borderWidth, borderColor and borderStyle shorthands and
// then to 0, transparent and solid. A side with a negative or non numeric
// width or an unknown style gets width 0.
func ResolveBorders(s style.Style) BorderSpec {
	width, ok := s.Number("borderWidth")
	if !ok {
		width = 0
	}
	color := stringOr(s, "borderColor", defaultBorderColor)
	kind := stringOr(s, "borderStyle", defaultBorderStyle)

	var spec BorderSpec
	for side := Top; side <= Left; side++ {
		b := BorderSide{Width: width, Color: stringOr(s, side.key("Color"), color), Style: stringOr(s, side.key("Style"), kind)}
		if v, present := s[side.key("Width")]; present {
			b.Width, ok = style.ToNumber(v)
			if !ok {
				b.Width = 0
			}
		}
		b.Style = strings.ToLower(strings.TrimSpace(b.Style))
		if b.Width < 0 || !knownBorderStyle(b.Style) {
			b.Width = 0
		}
		spec[side] = b
	}
	return spec
}

// Uniform reports whether all sides share width, color and style.
func (b BorderSpec) Uniform() bool {
	for _, side := range b[1:] {
		if side != b[Top] {
			return false
		}
	}
	return true
}

func knownBorderStyle(s string) bool {
	switch s {
	case "solid", "dashed", "dotted":
		return true
	}
	return false
}

// NewBorderOptions returns dash options for a border style, nil for solid.
func NewBorderOptions(kind string, width float64) *BorderOptions {
	switch kind {
	case "dashed":
		return &BorderOptions{Class: "borderOptions", IsEnabled: true, DashPattern: []float64{width * 3, width * 3}, LineCapStyle: LineCapButt}
	case "dotted":
		return &BorderOptions{Class: "borderOptions", IsEnabled: true, DashPattern: []float64{width, width}, LineCapStyle: LineCapRound}
	}
	return nil
}

// Decompose applies the borders of s to base. Uniform borders become a
// single inside stroke on base and the result is always [base]. Otherwise
// base clips its children and every side with a width gets its own shape
// appended in top, right, bottom, left order; left and right segments
// span the box height between the top and bottom segments.
func Decompose(base *Layer, box tree.LayoutBox, s style.Style) []*Layer {
	if base == nil {
		return nil
	}
	if s == nil {
		return []*Layer{base}
	}
	if base.Style == nil {
		base.Style = NewStyle()
	}

	spec := ResolveBorders(s)
	if spec.Uniform() {
		b := spec[Top]
		if b.Width > 0 {
			base.Style.BorderOptions = NewBorderOptions(b.Style, b.Width)
			base.Style.Borders = []Border{{
				Class:     "border",
				IsEnabled: true,
				Color:     MustColor(b.Color),
				FillType:  FillTypeSolid,
				Position:  BorderPositionInside,
				Thickness: b.Width,
			}}
		}
		return []*Layer{base}
	}

	base.HasClippingMask = true
	layers := []*Layer{base}
	top, bottom := spec[Top].Width, spec[Bottom].Width
	inner := max(0, box.Height-top-bottom)
	for side := Top; side <= Left; side++ {
		b := spec[side]
		if b.Width <= 0 {
			continue
		}
		var frame Rect
		switch side {
		case Top:
			frame = NewRect(0, 0, box.Width, b.Width)
		case Right:
			frame = NewRect(box.Width-b.Width, top, b.Width, inner)
		case Bottom:
			frame = NewRect(0, box.Height-b.Width, box.Width, b.Width)
		case Left:
			frame = NewRect(0, top, b.Width, inner)
		}
		l := ShapeGroup("Border ("+side.String()+")", frame, MustColor(b.Color), 0)
		l.Style.BorderOptions = NewBorderOptions(b.Style, b.Width)
		layers = append(layers, l)
	}
	return layers
}

func stringOr(s style.Style, key, def string) string {
	if v, ok := s.String(key); ok && v != "" {
		return v
	}
	return def
}
