package convert

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"sketchgen/config"
	"sketchgen/mapping"
	"sketchgen/render"
	"sketchgen/sketch"
	"sketchgen/tree"
)

// Emitter turns a merged tree into output layers through a renderer
// registry.
type Emitter struct {
	registry *render.Registry
	table    *mapping.Table
	policy   config.BlacklistPolicy
	log      *zap.Logger
}

// NewEmitter returns a document emitter.
func NewEmitter(registry *render.Registry, table *mapping.Table, policy config.BlacklistPolicy, log *zap.Logger) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{registry: registry, table: table, policy: policy, log: log.Named("emit")}
}

// Emit renders root. Every node is rendered by the renderer registered for
// its resolved type; the result is the group layer of the node holding its
// backing layers followed by the layers of its children. A type without a
// renderer fails the whole emission with *UnresolvedTypeError.
func (e *Emitter) Emit(root *tree.MergedNode) (*sketch.Layer, error) {
	if root == nil {
		return nil, nil
	}
	return e.emit(root, "", nodePath{root.Type})
}

func (e *Emitter) emit(n *tree.MergedNode, parent string, path nodePath) (*sketch.Layer, error) {
	key := e.table.RendererKey(n.Type)
	if e.table.Classify(n.Type).Blacklisted() {
		if e.policy == config.BlacklistPolicyDrop {
			e.log.Debug("Dropping blacklisted node", zap.String("type", n.Type), zap.Stringer("path", path))
			return nil, nil
		}
		key = mapping.View
	}

	r, ok := e.registry.Lookup(key)
	if !ok {
		return nil, &UnresolvedTypeError{Type: n.Type, Path: path.String(), Hint: hint(n.Type, parent)}
	}

	group := r.RenderGroupLayer(n.Layout, n.Style, n.TextStyle, n.Props)
	if group == nil {
		return nil, nil
	}
	backing, err := r.RenderBackingLayers(n.Layout, n.Style, n.TextStyle, n.Props,
		render.Children{Nodes: n.Children, Text: n.TextRuns, Raw: n.Raw})
	if err != nil {
		return nil, err
	}

	layers := make([]*sketch.Layer, 0, len(backing)+len(n.Children))
	layers = append(layers, backing...)
	if key != mapping.Svg {
		for i, c := range n.Children {
			l, err := e.emit(c, n.Type, path.child(c.Type, i))
			if err != nil {
				return nil, err
			}
			layers = append(layers, l)
		}
	}
	group.Layers = slices.DeleteFunc(layers, func(l *sketch.Layer) bool { return l == nil })
	return group, nil
}

func hint(typ, parent string) string {
	switch {
	case strings.HasPrefix(strings.ToLower(typ), mapping.Svg):
		return HintSvgChildren
	case typ == mapping.Document || parent == mapping.Document:
		return HintDocumentChildren
	}
	return ""
}
