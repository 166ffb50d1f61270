// Package tree defines the component tree flowing through the conversion
// pipeline, the generic rewrite visitor used by tree passes, the paint order
// sequencer and the merged style+layout tree consumed by the emitter.
package tree

import (
	"maps"
	"strings"

	"sketchgen/style"
)

// TextTag marks synthetic text nodes and text content in general.
const TextTag = "text"

// Child is an element of Node.Children: either a *Node or raw leaf Text.
type Child interface {
	child()
}

// Text is raw inline leaf content. Numbers in descriptions become Text too.
type Text string

func (Text) child() {}

// Node is the unit of the component tree at every pipeline stage. Passes
// never mutate a node they received, they build a replacement instead.
type Node struct {
	// Tag is the generic element type ("div", "h1"), the synthetic "text"
	// marker or, once mapped, the target component type.
	Tag string
	// SourceTag keeps the originating element type after the node has been
	// mapped to a target component type. Empty until then.
	SourceTag string
	// ClassName is a space separated class token list.
	ClassName string
	// Style is the node style: inline style until the cascade pass replaces
	// it with the resolved style.
	Style style.Style
	// Props holds all remaining attributes.
	Props    map[string]any
	Children []Child
}

func (*Node) child() {}

// Clone returns a shallow copy of n with its own Props, Style and Children
// containers. Child nodes are shared.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Props = maps.Clone(n.Props)
	c.Style = n.Style.Clone()
	if n.Children != nil {
		c.Children = append(make([]Child, 0, len(n.Children)), n.Children...)
	}
	return &c
}

// WithChildren returns a copy of n with children replaced.
func (n *Node) WithChildren(children []Child) *Node {
	c := *n
	c.Children = children
	return &c
}

// WithStyle returns a copy of n with style replaced.
func (n *Node) WithStyle(s style.Style) *Node {
	c := *n
	c.Style = s
	return &c
}

// OriginalTag returns the element type the node was created with.
func (n *Node) OriginalTag() string {
	if n.SourceTag != "" {
		return n.SourceTag
	}
	return n.Tag
}

// Classes returns the class tokens of the node.
func (n *Node) Classes() []string {
	return strings.Fields(n.ClassName)
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == TextTag
}

// ChildNodes returns the typed children of n and reports whether every
// child is a *Node. Raw leaves are skipped.
func (n *Node) ChildNodes() ([]*Node, bool) {
	nodes := make([]*Node, 0, len(n.Children))
	all := true
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok && cn != nil {
			nodes = append(nodes, cn)
		} else {
			all = false
		}
	}
	return nodes, all
}

// Prop returns the string value of attribute name.
func (n *Node) Prop(name string) string {
	if s, ok := n.Props[name].(string); ok {
		return s
	}
	return ""
}
