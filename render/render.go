// Package render holds the per component type layer renderers and the
// closed registry the document emitter dispatches through.
package render

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"go.uber.org/zap"

	"sketchgen/config"
	"sketchgen/mapping"
	"sketchgen/sketch"
	"sketchgen/style"
	"sketchgen/tree"
)

// Children is what a renderer may need of the merged node children: the
// merged child nodes, the text runs of a text node or the untouched
// subtree below a vector graphics stop point.
type Children struct {
	Nodes []*tree.MergedNode
	Text  []tree.TextRun
	Raw   []tree.Child
}

// Renderer produces layers for one target component type.
type Renderer interface {
	// RenderGroupLayer returns the layer wrapping everything the node
	// draws. Its Layers are assigned by the emitter.
	RenderGroupLayer(box tree.LayoutBox, st, textStyle style.Style, props map[string]any) *sketch.Layer
	// RenderBackingLayers returns primitive layers drawn below the child
	// layers of the node.
	RenderBackingLayers(box tree.LayoutBox, st, textStyle style.Style, props map[string]any, children Children) ([]*sketch.Layer, error)
}

// Registry maps target component types to renderers. The key set is
// closed over mapping.Targets.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry validates renderers and returns a registry.
func NewRegistry(renderers map[string]Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for key, rr := range renderers {
		if !slices.Contains(mapping.Targets, key) {
			return nil, fmt.Errorf("renderer registered for unknown component type %q", key)
		}
		if rr == nil {
			return nil, fmt.Errorf("nil renderer registered for component type %q", key)
		}
		r.renderers[key] = rr
	}
	return r, nil
}

// Default returns the registry of built-in renderers.
func Default(cfg *config.ImagesConfig, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r, err := NewRegistry(map[string]Renderer{
		mapping.Document: Document{},
		mapping.Page:     Page{},
		mapping.Artboard: Artboard{},
		mapping.View:     View{},
		mapping.Text:     Text{},
		mapping.Image:    NewImage(cfg, log),
		mapping.Svg:      Svg{},
	})
	if err != nil {
		// this should never happen
		panic(err)
	}
	return r
}

// Lookup returns the renderer registered under key.
func (r *Registry) Lookup(key string) (Renderer, bool) {
	rr, ok := r.renderers[key]
	return rr, ok
}

// Keys returns registered component types in sorted order.
func (r *Registry) Keys() []string {
	keys := slices.Collect(maps.Keys(r.renderers))
	sort.Strings(keys)
	return keys
}

func frameOf(box tree.LayoutBox) sketch.Rect {
	return sketch.NewRect(box.Left, box.Top, box.Width, box.Height)
}

// innerFrame covers the node box in its own coordinate space.
func innerFrame(box tree.LayoutBox) sketch.Rect {
	return sketch.NewRect(0, 0, box.Width, box.Height)
}

func layerName(props map[string]any, def string) string {
	if name, ok := props["name"].(string); ok && name != "" {
		return name
	}
	return def
}
