package flex

import (
	"strconv"
	"strings"

	"sketchgen/style"
)

// Unit specifies how a Value is interpreted.
type Unit uint8

const (
	UnitAuto Unit = iota
	UnitPoint
	UnitPercent
)

// Value is a dimension: auto, a fixed number of points or a percentage of
// the containing size.
type Value struct {
	Amount float64
	Unit   Unit
}

func Auto() Value { return Value{} }
func Point(v float64) Value { return Value{Amount: v, Unit: UnitPoint} }
func Percent(p float64) Value { return Value{Amount: p, Unit: UnitPercent} }
func (v Value) IsDefinite() bool { return v.Unit != UnitAuto }

// Resolve converts the value against the containing size. Auto resolves to
// fallback.
func (v Value) Resolve(containing, fallback float64) float64 {
	switch v.Unit {
	case UnitPoint:
		return v.Amount
	case UnitPercent:
		return containing * v.Amount / 100
	default:
		return fallback
	}
}

func parseValue(v any) Value {
	if n, ok := style.ToNumber(v); ok {
		return Point(n)
	}
	s, ok := v.(string)
	if !ok {
		return Auto()
	}
	s = strings.TrimSpace(s)
	if p, found := strings.CutSuffix(s, "%"); found {
		if f, err := strconv.ParseFloat(p, 64); err == nil {
			return Percent(f)
		}
	}
	return Auto()
}

// Direction specifies the main axis.
type Direction uint8

const (
	Column Direction = iota
	Row
	ColumnReverse
	RowReverse
)

func (d Direction) isRow() bool { return d == Row || d == RowReverse }
func (d Direction) reversed() bool { return d == RowReverse || d == ColumnReverse }

// Justify distributes children along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Align positions children on the cross axis.
type Align uint8

const (
	AlignStretch Align = iota
	AlignStart
	AlignEnd
	AlignCenter
)

// Edges holds per side spacing.
type Edges struct {
	Top, Right, Bottom, Left float64
}

func (e Edges) Horizontal() float64 { return e.Left + e.Right }
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// Style is the subset of a resolved style the engine understands.
type Style struct {
	Width, Height       Value
	MinWidth, MinHeight Value
	MaxWidth, MaxHeight Value

	Direction      Direction
	JustifyContent Justify
	AlignItems     Align
	AlignSelf      *Align

	FlexGrow   float64
	FlexShrink float64
	FlexBasis  Value

	Padding Edges
	Margin  Edges
	Border  Edges

	Absolute                 bool
	Top, Right, Bottom, Left Value
}

// styleFrom extracts engine properties from a resolved style. Defaults
// follow the flexbox conventions of native UI toolkits: column direction,
// stretch alignment, no shrinking.
func styleFrom(s style.Style) Style {
	st := Style{
		Width:     parseValue(s["width"]),
		Height:    parseValue(s["height"]),
		MinWidth:  parseValue(s["minWidth"]),
		MinHeight: parseValue(s["minHeight"]),
		MaxWidth:  parseValue(s["maxWidth"]),
		MaxHeight: parseValue(s["maxHeight"]),
		FlexBasis: parseValue(s["flexBasis"]),
		Top:       parseValue(s["top"]),
		Right:     parseValue(s["right"]),
		Bottom:    parseValue(s["bottom"]),
		Left:      parseValue(s["left"]),
	}

	switch str(s, "flexDirection") {
	case "row":
		st.Direction = Row
	case "row-reverse":
		st.Direction = RowReverse
	case "column-reverse":
		st.Direction = ColumnReverse
	}

	switch str(s, "justifyContent") {
	case "flex-end", "end":
		st.JustifyContent = JustifyEnd
	case "center":
		st.JustifyContent = JustifyCenter
	case "space-between":
		st.JustifyContent = JustifySpaceBetween
	case "space-around":
		st.JustifyContent = JustifySpaceAround
	case "space-evenly":
		st.JustifyContent = JustifySpaceEvenly
	}

	st.AlignItems = parseAlign(str(s, "alignItems"))
	if v := str(s, "alignSelf"); v != "" && v != "auto" {
		a := parseAlign(v)
		st.AlignSelf = &a
	}

	if f, ok := s.Number("flex"); ok && f > 0 {
		st.FlexGrow, st.FlexShrink, st.FlexBasis = f, 1, Point(0)
	}
	if f, ok := s.Number("flexGrow"); ok {
		st.FlexGrow = f
	}
	if f, ok := s.Number("flexShrink"); ok {
		st.FlexShrink = f
	}

	st.Padding = parseEdges(s, "padding", func(side string) string { return "padding" + side })
	st.Margin = parseEdges(s, "margin", func(side string) string { return "margin" + side })
	st.Border = parseEdges(s, "border", func(side string) string { return "border" + side + "Width" })
	st.Absolute = str(s, "position") == "absolute"
	return st
}

func parseAlign(v string) Align {
	switch v {
	case "flex-start", "start":
		return AlignStart
	case "flex-end", "end":
		return AlignEnd
	case "center":
		return AlignCenter
	default:
		return AlignStretch
	}
}

// parseEdges reads the shorthand ("padding", "borderWidth"), the axis
// shorthands ("paddingHorizontal") and the per side properties, most
// specific wins.
func parseEdges(s style.Style, prefix string, side func(string) string) Edges {
	all := prefix
	if prefix == "border" {
		all = "borderWidth"
	}
	var e Edges
	if v, ok := s.Number(all); ok {
		e = Edges{v, v, v, v}
	}
	if v, ok := s.Number(prefix + "Horizontal"); ok {
		e.Left, e.Right = v, v
	}
	if v, ok := s.Number(prefix + "Vertical"); ok {
		e.Top, e.Bottom = v, v
	}
	for name, dst := range map[string]*float64{"Top": &e.Top, "Right": &e.Right, "Bottom": &e.Bottom, "Left": &e.Left} {
		if v, ok := s.Number(side(name)); ok {
			*dst = v
		}
	}
	return e
}

func str(s style.Style, key string) string {
	v, _ := s.String(key)
	return strings.ToLower(strings.TrimSpace(v))
}
