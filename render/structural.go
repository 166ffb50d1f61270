package render

import (
	"sketchgen/sketch"
	"sketchgen/style"
	"sketchgen/tree"
)

// Document renders the document root.
type Document struct{}

func (Document) RenderGroupLayer(box tree.LayoutBox, _, _ style.Style, props map[string]any) *sketch.Layer {
	return sketch.NewContainer(sketch.ClassDocument, layerName(props, "Document"), frameOf(box))
}

func (Document) RenderBackingLayers(tree.LayoutBox, style.Style, style.Style, map[string]any, Children) ([]*sketch.Layer, error) {
	return nil, nil
}

// Page renders a page of the document.
type Page struct{}

func (Page) RenderGroupLayer(box tree.LayoutBox, _, _ style.Style, props map[string]any) *sketch.Layer {
	return sketch.NewContainer(sketch.ClassPage, layerName(props, "Page"), frameOf(box))
}

func (Page) RenderBackingLayers(tree.LayoutBox, style.Style, style.Style, map[string]any, Children) ([]*sketch.Layer, error) {
	return nil, nil
}

// Artboard renders an artboard, its background color becomes a fill.
type Artboard struct{}

func (Artboard) RenderGroupLayer(box tree.LayoutBox, st, _ style.Style, props map[string]any) *sketch.Layer {
	l := sketch.NewContainer(sketch.ClassArtboard, layerName(props, "Artboard"), frameOf(box))
	if fill, ok := backgroundFill(st); ok {
		l.Style.Fills = []sketch.Fill{fill}
	}
	return l
}

func (Artboard) RenderBackingLayers(tree.LayoutBox, style.Style, style.Style, map[string]any, Children) ([]*sketch.Layer, error) {
	return nil, nil
}
