// Package layout defines the contract between the conversion pipeline and
// the layout engine computing geometry from resolved styles.
package layout

import (
	"fmt"
	"strings"

	"sketchgen/tree"
)

// Direction is the inline direction the layout is calculated for.
type Direction int

const (
	Inherit Direction = iota
	LTR
	RTL
)

// ParseDirection converts "ltr", "rtl" or "inherit" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr", "":
		return LTR, nil
	case "rtl":
		return RTL, nil
	case "inherit":
		return Inherit, nil
	}
	return LTR, fmt.Errorf("unknown layout direction %q", s)
}

func (d Direction) String() string {
	switch d {
	case LTR:
		return "ltr"
	case RTL:
		return "rtl"
	default:
		return "inherit"
	}
}

// Node is a node of the layout engine tree. Children are indexed in the
// engine's stacking order, which is the order tree.Sequence produces.
type Node interface {
	ChildCount() int
	Child(i int) Node

	ComputedLeft() float64
	ComputedRight() float64
	ComputedTop() float64
	ComputedBottom() float64
	ComputedWidth() float64
	ComputedHeight() float64
}

// Root is the handle returned by an engine for a whole tree.
type Root interface {
	Node
	CalculateLayout(dir Direction)
}

// Engine builds a layout tree from a styled component tree. The engine must
// mirror the component tree: the same nodes, with children in
// tree.Sequence order, and no nodes below vector graphics subtrees.
type Engine interface {
	Build(root *tree.Node) (Root, error)
}

// BoxOf copies the computed geometry of n.
func BoxOf(n Node) tree.LayoutBox {
	return tree.LayoutBox{
		Left:   n.ComputedLeft(),
		Right:  n.ComputedRight(),
		Top:    n.ComputedTop(),
		Bottom: n.ComputedBottom(),
		Width:  n.ComputedWidth(),
		Height: n.ComputedHeight(),
	}
}
