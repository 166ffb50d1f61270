package convert

import (
	"maps"

	"go.uber.org/zap"

	"sketchgen/layout"
	"sketchgen/mapping"
	"sketchgen/style"
	"sketchgen/tree"
)

// Merger walks a styled component tree and its computed layout tree in
// lockstep.
type Merger struct {
	log *zap.Logger
}

// NewMerger returns a layout tree merger.
func NewMerger(log *zap.Logger) *Merger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Merger{log: log.Named("merge")}
}

// Merge produces the merged tree. Children are paired with layout children
// by index after paint order sequencing, the same order the layout engine
// was built in. A child count mismatch is reported as *MismatchError. Vector
// graphics nodes stop the walk and keep their children in Raw, text nodes
// carry text runs instead of children.
func (m *Merger) Merge(n *tree.Node, ln layout.Node, ctx style.Context) (*tree.MergedNode, error) {
	return m.merge(n, ln, ctx.Enter(n.Tag), nodePath{})
}

func (m *Merger) merge(n *tree.Node, ln layout.Node, ctx style.Context, path nodePath) (*tree.MergedNode, error) {
	ctx.AddInheritableStyles(n.Style)

	out := &tree.MergedNode{
		Type:      n.Tag,
		Style:     style.Merge(n.Style),
		TextStyle: ctx.InheritedStyles(),
		Layout:    layout.BoxOf(ln),
		Props:     maps.Clone(n.Props),
		Children:  []*tree.MergedNode{},
	}

	switch {
	case n.Tag == mapping.Svg:
		out.Raw = append([]tree.Child(nil), n.Children...)
		return out, nil
	case n.IsText():
		out.TextRuns = ComputeTextTree(n, ctx)
		return out, nil
	}

	var kids []*tree.Node
	for _, c := range tree.Sequence(n.Children) {
		if cn, ok := c.(*tree.Node); ok && cn != nil {
			kids = append(kids, cn)
		}
	}
	if len(kids) != ln.ChildCount() {
		return nil, &MismatchError{Path: path.String(), Tag: n.Tag, Want: len(kids), Got: ln.ChildCount()}
	}

	childCtx := ctx.ForChildren()
	for i, k := range kids {
		mk, err := m.merge(k, ln.Child(i), childCtx.Enter(k.Tag), path.child(k.Tag, i))
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, mk)
	}
	m.log.Debug("Merged", zap.String("scope", ctx.ScopePath()), zap.Int("children", len(out.Children)))
	return out, nil
}
