package render

import (
	"strconv"
	"strings"

	"sketchgen/sketch"
	"sketchgen/style"
	"sketchgen/tree"
)

// properties which make a view draw a backing shape
var visualKeys = []string{
	"backgroundColor",
	"borderWidth", "borderTopWidth", "borderRightWidth", "borderBottomWidth", "borderLeftWidth",
	"boxShadow", "shadowColor",
}

// View renders generic containers: a group holding a backing shape with
// background, radius, shadows and borders.
type View struct{}

func (View) RenderGroupLayer(box tree.LayoutBox, st, _ style.Style, props map[string]any) *sketch.Layer {
	return group(box, st, layerName(props, "View"))
}

func (View) RenderBackingLayers(box tree.LayoutBox, st, _ style.Style, _ map[string]any, _ Children) ([]*sketch.Layer, error) {
	return backing(box, st), nil
}

// group returns a group layer carrying the node opacity.
func group(box tree.LayoutBox, st style.Style, name string) *sketch.Layer {
	l := sketch.NewContainer(sketch.ClassGroup, name, frameOf(box))
	if o, ok := st.Number("opacity"); ok && o >= 0 && o < 1 {
		l.Style.Opacity = &o
	}
	return l
}

// backing returns the decomposed background shape or nothing when the
// style does not draw anything.
func backing(box tree.LayoutBox, st style.Style) []*sketch.Layer {
	if !st.HasAny(visualKeys) {
		return nil
	}
	radius, _ := st.Number("borderRadius")
	shape := sketch.NewContainer(sketch.ClassShapeGroup, "Background", innerFrame(box))
	shape.Layers = append(shape.Layers, sketch.Rectangle("Path", innerFrame(box), radius))
	if fill, ok := backgroundFill(st); ok {
		shape.Style.Fills = []sketch.Fill{fill}
	}
	if shadow, ok := parseShadow(st); ok {
		shape.Style.Shadows = []sketch.Shadow{shadow}
	}
	return sketch.Decompose(shape, box, st)
}

func backgroundFill(st style.Style) (sketch.Fill, bool) {
	bg, ok := st.String("backgroundColor")
	if !ok {
		return sketch.Fill{}, false
	}
	c, ok := sketch.ParseColor(bg)
	if !ok {
		return sketch.Fill{}, false
	}
	return sketch.SolidFill(c), true
}

// parseShadow reads either a CSS boxShadow ("2px 4px 6px 0 rgba(0,0,0,.5)")
// or the shadowColor, shadowOffset, shadowRadius, shadowOpacity set.
func parseShadow(st style.Style) (sketch.Shadow, bool) {
	shadow := sketch.Shadow{Class: "shadow", IsEnabled: true}

	if css, ok := st.String("boxShadow"); ok && css != "none" {
		var lengths []float64
		for _, tok := range shadowTokens(css) {
			if n, err := strconv.ParseFloat(strings.TrimSuffix(tok, "px"), 64); err == nil {
				lengths = append(lengths, n)
				continue
			}
			if tok == "inset" {
				return shadow, false
			}
			if c, ok := sketch.ParseColor(tok); ok {
				shadow.Color = c
			}
		}
		if len(lengths) < 2 {
			return shadow, false
		}
		shadow.OffsetX, shadow.OffsetY = lengths[0], lengths[1]
		if len(lengths) > 2 {
			shadow.BlurRadius = lengths[2]
		}
		if len(lengths) > 3 {
			shadow.Spread = lengths[3]
		}
		if shadow.Color == (sketch.Color{}) {
			shadow.Color = sketch.RGBA(0, 0, 0, 1)
		}
		return shadow, true
	}

	css, ok := st.String("shadowColor")
	if !ok {
		return shadow, false
	}
	c, ok := sketch.ParseColor(css)
	if !ok {
		return shadow, false
	}
	if opacity, ok := st.Number("shadowOpacity"); ok {
		c.Alpha *= opacity
	}
	shadow.Color = c
	if offset, ok := st["shadowOffset"].(map[string]any); ok {
		shadow.OffsetX, _ = style.ToNumber(offset["width"])
		shadow.OffsetY, _ = style.ToNumber(offset["height"])
	}
	shadow.BlurRadius, _ = st.Number("shadowRadius")
	return shadow, true
}

// shadowTokens splits on spaces outside parentheses.
func shadowTokens(s string) []string {
	var (
		tokens []string
		depth  int
		start  = -1
	)
	for i, r := range s + " " {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ' ' && depth == 0:
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return tokens
}
