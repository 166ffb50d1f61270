package style

import "strings"

// Inheritable lists the font related properties which flow from an
// ancestor to its descendants. All other properties apply only to the node
// declaring them.
var Inheritable = []string{
	"fontFamily",
	"fontSize",
	"fontWeight",
	"fontStyle",
	"color",
	"lineHeight",
	"letterSpacing",
}

// IsInheritable reports whether property crosses a context boundary.
func IsInheritable(property string) bool {
	for _, p := range Inheritable {
		if p == property {
			return true
		}
	}
	return false
}

// Context is the inherited style state of one recursion frame. It is passed
// by value: a frame may add inheritable properties to its own copy, children
// receive a freshly derived context from ForChildren, and neither the parent
// nor sibling frames ever observe those additions.
type Context struct {
	parent    *Context
	inherited Style // received from ancestors, never mutated
	pending   Style // added by the current frame, replaced on every change
	depth     int
	root      bool
	circular  bool
	scope     []string
}

// NewContext returns the root context.
func NewContext() Context {
	return Context{root: true}
}

// ForChildren derives the context handed to every child of the current
// frame. The child sees everything inherited so far plus the additions made
// by the current frame.
func (c Context) ForChildren() Context {
	parent := c
	return Context{
		parent:    &parent,
		inherited: c.InheritedStyles(),
		depth:     c.depth + 1,
		scope:     c.scope,
	}
}

// Enter returns a copy of the context with tag appended to the scope path.
// The scope is used for diagnostics only.
func (c Context) Enter(tag string) Context {
	scope := make([]string, len(c.scope), len(c.scope)+1)
	copy(scope, c.scope)
	c.scope = append(scope, tag)
	return c
}

// AddInheritableStyles records the inheritable subset of partial in the
// current frame. Non-inheritable properties are ignored.
func (c *Context) AddInheritableStyles(partial Style) {
	picked := partial.Pick(Inheritable)
	if len(picked) == 0 {
		return
	}
	c.pending = Merge(c.pending, picked)
}

// InheritedStyles returns a snapshot of the inheritable properties visible
// in the current frame.
func (c Context) InheritedStyles() Style {
	return Merge(c.inherited, c.pending)
}

// WithCircular marks the frame as revisiting a node already present on the
// ancestor path.
func (c Context) WithCircular(circular bool) Context {
	c.circular = circular
	return c
}

// Parent returns the context the current one was derived from, nil for root.
func (c Context) Parent() *Context { return c.parent }

// IsRoot reports whether this is the root frame.
func (c Context) IsRoot() bool { return c.root }

// IsCircular reports whether the frame's node already appears among its ancestors.
func (c Context) IsCircular() bool { return c.circular }

// Depth returns the distance from the root frame.
func (c Context) Depth() int { return c.depth }

// ScopePath returns a selector-like path of the entered tags.
// Example: "page > div > hr".
func (c Context) ScopePath() string {
	if len(c.scope) == 0 {
		return "(root)"
	}
	return strings.Join(c.scope, " > ")
}
