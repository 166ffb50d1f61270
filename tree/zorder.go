package tree

import (
	"cmp"
	"slices"
)

// ZIndexProperty is the style property carrying a paint order hint.
const ZIndexProperty = "zIndex"

// Sequence returns children in paint order: a stable ascending sort on the
// zIndex hint, children without a hint counting as 0. Every pass that pairs
// component children with layout engine children by index must use it, the
// layout engine stacks children the same way. The input slice is not
// modified and children are not copied.
func Sequence(children []Child) []Child {
	out := slices.Clone(children)
	slices.SortStableFunc(out, func(a, b Child) int {
		return cmp.Compare(zIndex(a), zIndex(b))
	})
	return out
}

func zIndex(c Child) float64 {
	n, ok := c.(*Node)
	if !ok || n == nil {
		return 0
	}
	if z, ok := n.Style.Number(ZIndexProperty); ok {
		return z
	}
	return 0
}
