package tree

import (
	"strconv"

	"sketchgen/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable dump of the component tree rooted at n.
// It exists solely for manual inspection during debugging.
func (n *Node) String() string {
	if n == nil {
		return "<nil Node>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.node(0, n)
	return tw.String()
}

func (tw treeWriter) node(depth int, n *Node) {
	if n.SourceTag != "" {
		tw.Line(depth, "%s (%s) class=%q", n.Tag, n.SourceTag, n.ClassName)
	} else {
		tw.Line(depth, "%s class=%q", n.Tag, n.ClassName)
	}
	tw.Map(depth+1, "style", n.Style)
	tw.Map(depth+1, "props", n.Props)
	for _, c := range n.Children {
		switch c := c.(type) {
		case *Node:
			tw.node(depth+1, c)
		case Text:
			tw.TextBlock(depth+1, "text", string(c))
		}
	}
}

// String returns a readable dump of the merged tree rooted at m.
// It exists solely for manual inspection during debugging.
func (m *MergedNode) String() string {
	if m == nil {
		return "<nil MergedNode>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.merged(0, m)
	return tw.String()
}

func (tw treeWriter) merged(depth int, m *MergedNode) {
	l := m.Layout
	tw.Line(depth, "%s left=%g top=%g width=%g height=%g", m.Type, l.Left, l.Top, l.Width, l.Height)
	tw.Map(depth+1, "style", m.Style)
	tw.Map(depth+1, "textStyle", m.TextStyle)
	for i, r := range m.TextRuns {
		tw.TextBlock(depth+1, "run["+strconv.Itoa(i)+"]", r.Content)
	}
	if len(m.Raw) > 0 {
		tw.Line(depth+1, "raw children: %d", len(m.Raw))
	}
	for _, c := range m.Children {
		tw.merged(depth+1, c)
	}
}
