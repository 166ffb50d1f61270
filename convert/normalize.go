package convert

import (
	"sketchgen/mapping"
	"sketchgen/style"
	"sketchgen/tree"
)

// NormalizeText wraps raw leaf content of every non text node into
// synthetic text nodes. Each run of consecutive leaves becomes one text
// node carrying the inheritable subset of the parent's inline style, typed
// siblings keep their position. Vector graphics subtrees are left as they
// are. Trees without raw leaves are returned as is. A nil table means the
// default one.
func NormalizeText(root *tree.Node, table *mapping.Table) *tree.Node {
	if table == nil {
		table = mapping.Default()
	}
	return tree.RewriteNodes(root, func(c *tree.Cursor[tree.Child]) {
		n, ok := c.Node().(*tree.Node)
		switch {
		case !ok || n == nil:
			return
		case vector(n, table):
			c.Skip()
			return
		case n.IsText() || !hasLeaves(n.Children):
			return
		}
		c.Replace(n.WithChildren(wrapLeaves(n)), true)
	})
}

// vector reports whether n is the root of a vector graphics subtree. No
// pass looks below it, the svg renderer serialises the children verbatim.
func vector(n *tree.Node, table *mapping.Table) bool {
	if n.Tag == mapping.Svg {
		return true
	}
	cls := table.Classify(n.Tag)
	return cls != nil && cls.TargetType == mapping.Svg
}

func hasLeaves(children []tree.Child) bool {
	for _, c := range children {
		if _, ok := c.(tree.Text); ok {
			return true
		}
	}
	return false
}

func wrapLeaves(n *tree.Node) []tree.Child {
	inherited := n.Style.Pick(style.Inheritable)
	out := make([]tree.Child, 0, len(n.Children))

	var run []tree.Child
	flush := func() {
		if len(run) == 0 {
			return
		}
		out = append(out, &tree.Node{Tag: tree.TextTag, Style: inherited.Clone(), Children: run})
		run = nil
	}
	for _, c := range n.Children {
		if leaf, ok := c.(tree.Text); ok {
			run = append(run, leaf)
			continue
		}
		flush()
		out = append(out, c)
	}
	flush()
	return out
}
