package convert

import (
	"fmt"
	"strconv"
	"strings"
)

// Hints appended to unresolved type errors for the frequent misuses.
const (
	HintDocumentChildren = "Be sure to only have <Page> components as children of <Document>."
	HintSvgChildren      = "Be sure to always have <Svg.*> components as children of <Svg>."
)

// UnresolvedTypeError is returned by the emitter when no renderer is
// registered for a node type.
type UnresolvedTypeError struct {
	Type string
	Path string
	Hint string
}

func (e *UnresolvedTypeError) Error() string {
	msg := fmt.Sprintf("Could not find renderer for type '%s'.", e.Type)
	if e.Path != "" {
		msg += " (at " + e.Path + ")"
	}
	if e.Hint != "" {
		msg += "\n" + e.Hint
	}
	return msg
}

// MismatchError is returned when the component tree and the layout tree
// disagree on the number of children of a node.
type MismatchError struct {
	Path string
	Tag  string
	Want int // component children
	Got  int // layout children
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("layout tree does not match component tree at %s (%s): %d component children, %d layout children",
		e.Path, e.Tag, e.Want, e.Got)
}

// nodePath accumulates "tag[index]" elements for error reporting.
type nodePath []string

func (p nodePath) child(tag string, i int) nodePath {
	out := make(nodePath, len(p), len(p)+1)
	copy(out, p)
	return append(out, tag+"["+strconv.Itoa(i)+"]")
}

func (p nodePath) String() string {
	if len(p) == 0 {
		return "/"
	}
	return "/" + strings.Join(p, "/")
}
