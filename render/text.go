package render

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"

	"sketchgen/sketch"
	"sketchgen/style"
	"sketchgen/tree"
)

const (
	defaultFontFamily = "Helvetica"
	defaultFontSize   = 14.0
	defaultTextColor  = "#000000"
)

// Text renders text nodes: a view backing plus a text layer holding the
// attributed string of all runs.
type Text struct{}

func (Text) RenderGroupLayer(box tree.LayoutBox, st, _ style.Style, props map[string]any) *sketch.Layer {
	return group(box, st, layerName(props, "Text"))
}

func (Text) RenderBackingLayers(box tree.LayoutBox, st, textStyle style.Style, props map[string]any, children Children) ([]*sketch.Layer, error) {
	layers := backing(box, st)
	l := sketch.NewLayer(sketch.ClassText, layerName(props, "Text"), innerFrame(box))
	l.AttributedString = AttributedString(children.Text, style.Merge(textStyle, st.Pick([]string{"textAlign"})))
	return append(layers, l), nil
}

// AttributedString joins runs into a string with one attribute per run.
// Run content is NFC normalized, locations and lengths count UTF-16 code
// units. Paragraph level properties are taken from block.
func AttributedString(runs []tree.TextRun, block style.Style) *sketch.AttributedString {
	as := &sketch.AttributedString{Class: "attributedString", Attributes: []sketch.StringAttribute{}}

	var sb strings.Builder
	location := 0
	for _, run := range runs {
		content := norm.NFC.String(run.Content)
		if content == "" {
			continue
		}
		length := len(utf16.Encode([]rune(content)))
		sb.WriteString(content)

		rs := style.Merge(block, run.Style)
		attr := sketch.StringAttribute{
			Location: location,
			Length:   length,
			Font:     font(rs),
			Color:    textColor(rs),
		}
		attr.LineHeight, _ = rs.Number("lineHeight")
		attr.Kerning, _ = rs.Number("letterSpacing")
		attr.Alignment, _ = rs.String("textAlign")
		attr.TextTransform, _ = rs.String("textTransform")
		as.Attributes = append(as.Attributes, attr)
		location += length
	}
	as.String = sb.String()
	return as
}

func font(s style.Style) sketch.FontDescriptor {
	family, ok := s.String("fontFamily")
	if !ok || family == "" {
		family = defaultFontFamily
	}
	// first family of a CSS list
	family, _, _ = strings.Cut(family, ",")
	family = strings.Trim(strings.TrimSpace(family), `"'`)

	size, ok := s.Number("fontSize")
	if !ok || size <= 0 {
		size = defaultFontSize
	}

	var suffix string
	if bold(s) {
		suffix = "Bold"
	}
	if st, _ := s.String("fontStyle"); st == "italic" || st == "oblique" {
		suffix += "Italic"
	}
	if suffix != "" {
		family += "-" + suffix
	}
	return sketch.FontDescriptor{Name: family, Size: size}
}

func bold(s style.Style) bool {
	if w, ok := s.Number("fontWeight"); ok {
		return w >= 600
	}
	w, _ := s.String("fontWeight")
	return w == "bold" || w == "bolder"
}

func textColor(s style.Style) sketch.Color {
	c, ok := s.String("color")
	if !ok {
		c = defaultTextColor
	}
	if parsed, ok := sketch.ParseColor(c); ok {
		return parsed
	}
	return sketch.MustColor(defaultTextColor)
}
