package convert

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"sketchgen/mapping"
	"sketchgen/style"
	"sketchgen/tree"
)

// properties never taken over from the stylesheet, overflow would make
// the target mask every layer
var omitted = []string{"overflow"}

// Resolver computes effective node styles from a read-only stylesheet.
type Resolver struct {
	sheet style.Stylesheet
	log   *zap.Logger
}

// NewResolver returns a resolver for sheet.
func NewResolver(sheet style.Stylesheet, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{sheet: sheet, log: log.Named("cascade")}
}

// Resolve returns a copy of n carrying its effective style: the style of
// its tag and class selectors folded left to right, with the inline style
// on top. When every child of n is a node, the children are replaced by
// copies whose inline style is layered over the compound "base tag"
// selector of n first, base being the first non modifier class of n or its
// tag. Circular nodes are returned unchanged.
func (r *Resolver) Resolve(n *tree.Node, ctx style.Context) *tree.Node {
	if n == nil || ctx.IsCircular() {
		return n
	}

	out := n.Clone()
	if kids, all := n.ChildNodes(); all && len(kids) > 0 && n.Tag != mapping.Svg {
		base := r.baseSelector(n)
		for i, k := range kids {
			if compound := r.sheet.Lookup(base + " " + k.OriginalTag()); compound != nil {
				out.Children[i] = k.WithStyle(style.Merge(compound.Omit(omitted...), k.Style))
			}
		}
	}

	sources := make([]style.Style, 0, 4)
	for _, sel := range selectors(n) {
		sources = append(sources, r.sheet.Lookup(sel))
	}
	out.Style = style.Merge(style.Merge(sources...).Omit(omitted...), n.Style)

	if ce := r.log.Check(zap.DebugLevel, "Style resolved"); ce != nil {
		ce.Write(zap.String("scope", ctx.ScopePath()), zap.Strings("selectors", selectors(n)), zap.Int("properties", len(out.Style)))
	}
	return out
}

// selectors returns the tag followed by the class tokens, empty entries
// removed. The text tag is not a selector of its own: the text rule holds
// document text defaults which the root inherited context starts from, so
// ancestors are able to override them.
func selectors(n *tree.Node) []string {
	tag := n.OriginalTag()
	if tag == tree.TextTag {
		tag = ""
	}
	return slices.DeleteFunc(append([]string{tag}, n.Classes()...), func(s string) bool {
		return s == ""
	})
}

// TextDefaults returns the inheritable part of the text rule of sheet.
func TextDefaults(sheet style.Stylesheet) style.Style {
	return sheet.Lookup(tree.TextTag).Pick(style.Inheritable)
}

func (r *Resolver) baseSelector(n *tree.Node) string {
	if classes := n.Classes(); len(classes) > 0 && !strings.Contains(classes[0], style.ModifierSeparator) {
		return classes[0]
	}
	return n.OriginalTag()
}

// Hydrate applies the resolver to every mapped node of the tree except
// structural (document, page, artboard) and blacklisted nodes. Unmapped
// nodes are left alone and vector graphics nodes are styled without
// descending into their children.
func Hydrate(root *tree.Node, r *Resolver, table *mapping.Table) *tree.Node {
	return tree.RewriteNodes(root, func(c *tree.Cursor[tree.Child]) {
		n, ok := c.Node().(*tree.Node)
		if !ok || n == nil || !styled(n, table) {
			return
		}
		ctx := style.NewContext()
		if !c.IsRoot() {
			ctx = ctx.ForChildren()
		}
		ctx = ctx.WithCircular(c.Circular()).Enter(n.OriginalTag())
		c.Replace(r.Resolve(n, ctx), n.Tag != mapping.Svg)
	})
}

func styled(n *tree.Node, table *mapping.Table) bool {
	cls := table.Classify(n.OriginalTag())
	return cls != nil && !cls.Blacklisted() && !slices.Contains(mapping.Structural, cls.TargetType)
}
