package convert

import (
	"reflect"

	"sketchgen/style"
	"sketchgen/tree"
)

// ComputeTextTree flattens the raw leaves below text node n into runs.
// Every run is styled with the inheritable properties visible at its
// position: ctx (which already includes n) extended by every node on the
// way down. Adjacent runs with equal styles are joined.
func ComputeTextTree(n *tree.Node, ctx style.Context) []tree.TextRun {
	var runs []tree.TextRun
	var walk func(children []tree.Child, ctx style.Context)
	walk = func(children []tree.Child, ctx style.Context) {
		for _, c := range children {
			switch c := c.(type) {
			case tree.Text:
				runs = appendRun(runs, tree.TextRun{Content: string(c), Style: ctx.InheritedStyles()})
			case *tree.Node:
				if c == nil {
					continue
				}
				cc := ctx.ForChildren()
				cc.AddInheritableStyles(c.Style)
				walk(c.Children, cc)
			}
		}
	}
	walk(n.Children, ctx)
	return runs
}

func appendRun(runs []tree.TextRun, run tree.TextRun) []tree.TextRun {
	if run.Content == "" {
		return runs
	}
	if last := len(runs) - 1; last >= 0 && sameStyle(runs[last].Style, run.Style) {
		runs[last].Content += run.Content
		return runs
	}
	return append(runs, run)
}

func sameStyle(a, b style.Style) bool {
	return len(a) == 0 && len(b) == 0 || reflect.DeepEqual(a, b)
}
