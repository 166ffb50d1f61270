package tree

import "slices"

// Shape tells Rewrite how to take a node of type N apart and put it back
// together.
type Shape[N comparable] struct {
	// Children returns the children of n, nil for leaves.
	Children func(n N) []N
	// WithChildren returns a copy of n with children replaced. It must not
	// modify n.
	WithChildren func(n N, children []N) N
}

// Cursor describes the node currently visited by Rewrite.
type Cursor[N comparable] struct {
	node        N
	path        []int
	circular    bool
	replaced    bool
	replacement N
	descend     bool
}

// Node returns the visited node as found in the input tree.
func (c *Cursor[N]) Node() N { return c.node }

// Path returns child indexes leading from the root to the node.
func (c *Cursor[N]) Path() []int { return slices.Clone(c.path) }

// Depth returns the distance from the root.
func (c *Cursor[N]) Depth() int { return len(c.path) }

// IsRoot reports whether the node is the root of the walk.
func (c *Cursor[N]) IsRoot() bool { return len(c.path) == 0 }

// Circular reports whether the node already appears among its own
// ancestors. Circular nodes are never descended into.
func (c *Cursor[N]) Circular() bool { return c.circular }

// Replace substitutes n for the visited node in the output tree. The
// replacement itself is not visited again; when descend is true its
// children are visited, otherwise they are kept as they are.
func (c *Cursor[N]) Replace(n N, descend bool) {
	c.replaced = true
	c.replacement = n
	c.descend = descend
}

// Skip keeps the visited node and does not descend into its children.
func (c *Cursor[N]) Skip() {
	c.replaced = true
	c.replacement = c.node
	c.descend = false
}

func (c *Cursor[N]) result() (N, bool) {
	if !c.replaced {
		return c.node, !c.circular
	}
	return c.replacement, c.descend && !c.circular
}

type frame[N comparable] struct {
	orig    N
	node    N
	kids    []N
	next    int
	out     []N
	changed bool
	path    []int
}

// Rewrite visits every node of the tree rooted at root exactly once in
// depth-first pre-order and returns the rewritten tree. It uses an explicit
// stack. Unchanged subtrees are shared with the input, changed nodes are
// rebuilt with shape.WithChildren so the input tree is never modified.
func Rewrite[N comparable](root N, shape Shape[N], visit func(c *Cursor[N])) N {
	c := &Cursor[N]{node: root}
	visit(c)
	top, descend := c.result()
	if !descend {
		return top
	}
	kids := shape.Children(top)
	if len(kids) == 0 {
		return top
	}

	onPath := map[N]int{root: 1}
	stack := []*frame[N]{{orig: root, node: top, kids: kids, out: make([]N, 0, len(kids))}}

	for {
		f := stack[len(stack)-1]
		if f.next < len(f.kids) {
			i := f.next
			f.next++

			child := f.kids[i]
			c := &Cursor[N]{
				node:     child,
				path:     append(slices.Clone(f.path), i),
				circular: onPath[child] > 0,
			}
			visit(c)
			n, descend := c.result()

			var kids []N
			if descend {
				kids = shape.Children(n)
			}
			if len(kids) == 0 {
				f.out = append(f.out, n)
				f.changed = f.changed || n != child
				continue
			}
			onPath[child]++
			stack = append(stack, &frame[N]{orig: child, node: n, kids: kids, out: make([]N, 0, len(kids)), path: c.path})
			continue
		}

		stack = stack[:len(stack)-1]
		onPath[f.orig]--

		result := f.node
		if f.changed {
			result = shape.WithChildren(f.node, f.out)
		}
		if len(stack) == 0 {
			return result
		}
		parent := stack[len(stack)-1]
		parent.out = append(parent.out, result)
		parent.changed = parent.changed || result != f.orig
	}
}

// NodeShape is the Shape of component trees.
var NodeShape = Shape[Child]{
	Children: func(c Child) []Child {
		if n, ok := c.(*Node); ok && n != nil {
			return n.Children
		}
		return nil
	},
	WithChildren: func(c Child, children []Child) Child {
		return c.(*Node).WithChildren(children)
	},
}

// RewriteNodes runs Rewrite over a component tree.
func RewriteNodes(root *Node, visit func(c *Cursor[Child])) *Node {
	if root == nil {
		return nil
	}
	out, _ := Rewrite[Child](root, NodeShape, visit).(*Node)
	return out
}
