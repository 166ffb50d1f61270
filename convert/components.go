package convert

import (
	"go.uber.org/zap"

	"sketchgen/mapping"
	"sketchgen/tree"
)

// MapComponents rewrites the tag of every mapped node to its target
// component type, keeping the source tag. Unmapped nodes pass through,
// blacklisted nodes never receive a target type but their subtrees are
// still processed.
func MapComponents(root *tree.Node, table *mapping.Table, log *zap.Logger) *tree.Node {
	if log == nil {
		log = zap.NewNop()
	}
	return tree.RewriteNodes(root, func(c *tree.Cursor[tree.Child]) {
		n, ok := c.Node().(*tree.Node)
		if !ok || n == nil {
			return
		}
		if n.SourceTag != "" {
			if n.Tag == mapping.Svg {
				c.Skip()
			}
			return
		}
		cls := table.Classify(n.Tag)
		switch {
		case cls == nil:
			log.Debug("Unmapped tag", zap.String("tag", n.Tag), zap.Ints("path", c.Path()))
			return
		case cls.Blacklisted():
			log.Debug("Blacklisted tag", zap.String("tag", n.Tag), zap.Ints("path", c.Path()))
			return
		}
		mapped := n.Clone()
		mapped.Tag, mapped.SourceTag = cls.TargetType, cls.SourceTag
		c.Replace(mapped, cls.TargetType != mapping.Svg)
	})
}
