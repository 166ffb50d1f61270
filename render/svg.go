package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/maruel/natural"

	"sketchgen/sketch"
	"sketchgen/style"
	"sketchgen/tree"
)

const svgNS = "http://www.w3.org/2000/svg"

// Svg renders vector graphics subtrees. The whole subtree is serialized to
// SVG markup, children are never emitted separately.
type Svg struct{}

func (Svg) RenderGroupLayer(box tree.LayoutBox, st, _ style.Style, props map[string]any) *sketch.Layer {
	return group(box, st, layerName(props, "Svg"))
}

func (Svg) RenderBackingLayers(box tree.LayoutBox, _, _ style.Style, props map[string]any, children Children) ([]*sketch.Layer, error) {
	markup, err := SvgMarkup(box, props, children.Raw)
	if err != nil {
		return nil, err
	}
	l := sketch.NewLayer(sketch.ClassSvg, layerName(props, "Svg"), innerFrame(box))
	l.SvgMarkup = markup
	return []*sketch.Layer{l}, nil
}

// SvgMarkup serializes a vector graphics subtree. The root element gets
// the box size unless width or height are given explicitly.
func SvgMarkup(box tree.LayoutBox, props map[string]any, children []tree.Child) (string, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNS)
	root.CreateAttr("width", formatNumber(box.Width))
	root.CreateAttr("height", formatNumber(box.Height))
	setAttrs(root, props)
	for _, c := range children {
		appendSvg(root, c)
	}

	doc.WriteSettings = etree.WriteSettings{CanonicalText: true, CanonicalAttrVal: true}
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("unable to serialize svg: %w", err)
	}
	return out, nil
}

func appendSvg(parent *etree.Element, c tree.Child) {
	switch c := c.(type) {
	case tree.Text:
		parent.CreateText(string(c))
	case *tree.Node:
		if c == nil {
			return
		}
		el := parent.CreateElement(svgElementName(c.OriginalTag()))
		if c.ClassName != "" {
			el.CreateAttr("class", c.ClassName)
		}
		setAttrs(el, c.Props)
		if len(c.Style) > 0 {
			el.CreateAttr("style", inlineCSS(c.Style))
		}
		for _, cc := range c.Children {
			appendSvg(el, cc)
		}
	}
}

// svgElementName turns component tags ("Svg.LinearGradient") into SVG
// element names ("linearGradient").
func svgElementName(tag string) string {
	if i := strings.LastIndexByte(tag, '.'); i >= 0 {
		tag = tag[i+1:]
	}
	if tag == "" {
		return "g"
	}
	return strings.ToLower(tag[:1]) + tag[1:]
}

// setAttrs writes scalar props in natural key order.
func setAttrs(el *etree.Element, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		if k == "name" || k == "children" {
			continue
		}
		v, ok := scalar(props[k])
		if !ok {
			continue
		}
		el.CreateAttr(svgAttrName(k), v)
	}
}

// presentation attributes are kebab-case in SVG, the rest keeps its case
var kebabPrefixes = []string{"fill", "stroke", "font", "text", "clip", "stop", "marker", "letter", "word", "dominant", "alignment", "baseline", "color"}

func svgAttrName(name string) string {
	for _, p := range kebabPrefixes {
		if strings.HasPrefix(name, p) && len(name) > len(p) {
			return kebab(name)
		}
	}
	return name
}

func kebab(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func inlineCSS(s style.Style) string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := scalar(s[k]); ok {
			parts = append(parts, kebab(k)+":"+v)
		}
	}
	return strings.Join(parts, ";")
}

func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case float64:
		return formatNumber(v), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
