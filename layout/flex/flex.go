// Package flex is the built-in layout engine: a single line flexbox
// implementation sufficient for box based design documents.
package flex

import (
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"sketchgen/layout"
	"sketchgen/mapping"
	"sketchgen/style"
	"sketchgen/tree"
)

// Node is a layout node. Geometry is relative to the parent's border box.
type Node struct {
	style    Style
	children []*Node
	measure  func(maxWidth float64) (float64, float64)

	x, y, width, height float64
	parentW, parentH    float64
}

func (n *Node) ChildCount() int { return len(n.children) }
func (n *Node) Child(i int) layout.Node { return n.children[i] }
func (n *Node) ComputedLeft() float64 { return n.x }
func (n *Node) ComputedTop() float64 { return n.y }
func (n *Node) ComputedWidth() float64 { return n.width }
func (n *Node) ComputedHeight() float64 { return n.height }
func (n *Node) ComputedRight() float64 { return n.parentW - n.x - n.width }
func (n *Node) ComputedBottom() float64 { return n.parentH - n.y - n.height }

// Engine builds flex trees. Width and Height are the viewport the root is
// laid out in; zero Width lets the root size to its content, the root
// height is content driven unless the root style sets one.
type Engine struct {
	Width, Height float64

	log *zap.Logger
}

// New returns an engine with the given viewport.
func New(width, height float64, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Width: width, Height: height, log: log}
}

// Root is the calculated tree handle.
type Root struct {
	*Node
	engine *Engine
}

// Build mirrors the component tree. Text nodes become measured leaves and
// vector graphics get no children.
func (e *Engine) Build(root *tree.Node) (layout.Root, error) {
	if root == nil {
		return nil, errNilRoot
	}
	n := e.build(root, style.NewContext())
	return &Root{Node: n, engine: e}, nil
}

var errNilRoot = errors.New("nil root node")

func (e *Engine) build(src *tree.Node, ctx style.Context) *Node {
	n := &Node{style: styleFrom(src.Style)}
	ctx.AddInheritableStyles(src.Style)

	switch {
	case src.IsText():
		font := style.Merge(ctx.InheritedStyles(), src.Style)
		n.measure = textMeasure(collectText(src), font)
		return n
	case src.Tag == mapping.Svg:
		return n
	}

	childCtx := ctx.ForChildren()
	for _, c := range tree.Sequence(src.Children) {
		if cn, ok := c.(*tree.Node); ok && cn != nil {
			n.children = append(n.children, e.build(cn, childCtx))
		}
	}
	return n
}

// CalculateLayout computes geometry for the whole tree.
func (r *Root) CalculateLayout(dir layout.Direction) {
	n := r.Node
	iw, ih := intrinsic(n, r.engine.Width, r.engine.Height)

	width := iw
	if n.style.Width.IsDefinite() {
		width = n.style.Width.Resolve(r.engine.Width, iw)
	} else if r.engine.Width > 0 {
		width = r.engine.Width
	}
	height := ih
	if n.style.Height.IsDefinite() {
		height = n.style.Height.Resolve(r.engine.Height, ih)
	}

	n.x, n.y = 0, 0
	n.parentW, n.parentH = width, height
	place(n, width, height)
	if dir == layout.RTL {
		mirror(n)
	}
	r.engine.log.Debug("Layout calculated",
		zap.Float64("width", width), zap.Float64("height", height), zap.Stringer("direction", dir))
}

func mirror(n *Node) {
	n.x = n.parentW - n.x - n.width
	for _, c := range n.children {
		mirror(c)
	}
}

// intrinsic returns the border box size of n when laid out with availW
// (and availH for percentages) available.
func intrinsic(n *Node, availW, availH float64) (float64, float64) {
	st := n.style
	frameW := st.Padding.Horizontal() + st.Border.Horizontal()
	frameH := st.Padding.Vertical() + st.Border.Vertical()

	contentAvail := availW - frameW
	if st.Width.IsDefinite() {
		contentAvail = st.Width.Resolve(availW, 0) - frameW
	}

	var w, h float64
	switch {
	case n.measure != nil:
		w, h = n.measure(contentAvail)
	default:
		for _, c := range n.children {
			if c.style.Absolute {
				continue
			}
			cw, ch := outer(c, contentAvail, availH)
			if st.Direction.isRow() {
				w += cw
				h = math.Max(h, ch)
			} else {
				w = math.Max(w, cw)
				h += ch
			}
		}
	}
	w, h = w+frameW, h+frameH

	if st.Width.IsDefinite() {
		w = st.Width.Resolve(availW, w)
	}
	if st.Height.IsDefinite() {
		h = st.Height.Resolve(availH, h)
	}
	w = clamp(w, st.MinWidth.Resolve(availW, 0), st.MaxWidth.Resolve(availW, math.Inf(1)))
	h = clamp(h, st.MinHeight.Resolve(availH, 0), st.MaxHeight.Resolve(availH, math.Inf(1)))
	return w, h
}

func outer(n *Node, availW, availH float64) (float64, float64) {
	w, h := intrinsic(n, availW-n.style.Margin.Horizontal(), availH)
	return w + n.style.Margin.Horizontal(), h + n.style.Margin.Vertical()
}

// flexItem holds per child state of one place call.
type flexItem struct {
	node      *Node
	baseSize  float64
	mainSize  float64
	crossSize float64
	mainPos   float64
	crossPos  float64
}

// place lays out the children of n given its final border box size.
func place(n *Node, width, height float64) {
	n.width, n.height = width, height
	if len(n.children) == 0 {
		return
	}

	st := n.style
	innerX := st.Border.Left + st.Padding.Left
	innerY := st.Border.Top + st.Padding.Top
	innerW := math.Max(0, width-st.Border.Horizontal()-st.Padding.Horizontal())
	innerH := math.Max(0, height-st.Border.Vertical()-st.Padding.Vertical())

	isRow := st.Direction.isRow()
	mainSize, crossSize := innerH, innerW
	if isRow {
		mainSize, crossSize = innerW, innerH
	}

	items := make([]flexItem, 0, len(n.children))
	var totalBase, totalGrow, totalShrink float64
	for _, c := range n.children {
		if c.style.Absolute {
			continue
		}
		item := flexItem{node: c}
		cs := c.style
		mainMargin, mainValue := cs.Margin.Vertical(), cs.Height
		if isRow {
			mainMargin, mainValue = cs.Margin.Horizontal(), cs.Width
		}

		switch {
		case cs.FlexBasis.IsDefinite():
			item.baseSize = cs.FlexBasis.Resolve(mainSize, 0)
		case mainValue.IsDefinite():
			item.baseSize = mainValue.Resolve(mainSize, 0)
		default:
			availW := innerW - cs.Margin.Horizontal()
			if !isRow && cs.Width.IsDefinite() {
				availW = cs.Width.Resolve(innerW, availW)
			}
			iw, ih := intrinsic(c, availW, innerH)
			item.baseSize = ih
			if isRow {
				item.baseSize = iw
			}
		}
		item.baseSize += mainMargin

		totalBase += item.baseSize
		totalGrow += cs.FlexGrow
		totalShrink += cs.FlexShrink
		items = append(items, item)
	}

	free := mainSize - totalBase
	for i := range items {
		cs := items[i].node.style
		items[i].mainSize = items[i].baseSize
		switch {
		case free > 0 && totalGrow > 0 && cs.FlexGrow > 0:
			items[i].mainSize += free * cs.FlexGrow / totalGrow
		case free < 0 && totalShrink > 0 && cs.FlexShrink > 0:
			items[i].mainSize = math.Max(0, items[i].mainSize+free*cs.FlexShrink/totalShrink)
		}

		margin := cs.Margin.Vertical()
		minV, maxV := cs.MinHeight, cs.MaxHeight
		if isRow {
			margin = cs.Margin.Horizontal()
			minV, maxV = cs.MinWidth, cs.MaxWidth
		}
		content := clamp(items[i].mainSize-margin, minV.Resolve(mainSize, 0), maxV.Resolve(mainSize, math.Inf(1)))
		items[i].mainSize = content + margin
	}

	var used float64
	for i := range items {
		used += items[i].mainSize
	}
	free = mainSize - used

	offset := justifyOffset(st.JustifyContent, free, len(items))
	spacing := justifySpacing(st.JustifyContent, free, len(items))
	for i := range items {
		items[i].mainPos = offset
		offset += items[i].mainSize + spacing
	}

	for i := range items {
		c := items[i].node
		cs := c.style
		align := st.AlignItems
		if cs.AlignSelf != nil {
			align = *cs.AlignSelf
		}
		crossValue, crossMargin := cs.Width, cs.Margin.Horizontal()
		if isRow {
			crossValue, crossMargin = cs.Height, cs.Margin.Vertical()
		}
		avail := crossSize - crossMargin

		var content float64
		switch {
		case crossValue.IsDefinite():
			content = crossValue.Resolve(crossSize, avail)
		case align == AlignStretch:
			content = avail
		case isRow:
			_, content = intrinsic(c, items[i].mainSize-cs.Margin.Horizontal(), innerH)
		default:
			content, _ = intrinsic(c, avail, innerH)
		}
		items[i].crossSize = content + crossMargin
		items[i].crossPos = alignOffset(align, crossSize, items[i].crossSize)
	}

	for i := range items {
		c := items[i].node
		m := c.style.Margin
		mainPos := items[i].mainPos
		if st.Direction.reversed() {
			mainPos = mainSize - mainPos - items[i].mainSize
		}

		var w, h float64
		if isRow {
			c.x = innerX + mainPos + m.Left
			c.y = innerY + items[i].crossPos + m.Top
			w, h = items[i].mainSize-m.Horizontal(), items[i].crossSize-m.Vertical()
		} else {
			c.x = innerX + items[i].crossPos + m.Left
			c.y = innerY + mainPos + m.Top
			w, h = items[i].crossSize-m.Horizontal(), items[i].mainSize-m.Vertical()
		}
		w = clamp(w, c.style.MinWidth.Resolve(innerW, 0), c.style.MaxWidth.Resolve(innerW, math.Inf(1)))
		h = clamp(h, c.style.MinHeight.Resolve(innerH, 0), c.style.MaxHeight.Resolve(innerH, math.Inf(1)))
		c.parentW, c.parentH = width, height
		place(c, math.Max(0, w), math.Max(0, h))
	}

	for _, c := range n.children {
		if c.style.Absolute {
			placeAbsolute(c, width, height, st.Border)
		}
	}
}

// placeAbsolute positions an out of flow child against the padding box of
// its parent.
func placeAbsolute(c *Node, width, height float64, border Edges) {
	cs := c.style
	boxW := width - border.Horizontal()
	boxH := height - border.Vertical()
	iw, ih := intrinsic(c, boxW, boxH)

	w := iw
	switch {
	case cs.Width.IsDefinite():
		w = cs.Width.Resolve(boxW, iw)
	case cs.Left.IsDefinite() && cs.Right.IsDefinite():
		w = boxW - cs.Left.Resolve(boxW, 0) - cs.Right.Resolve(boxW, 0) - cs.Margin.Horizontal()
	}
	h := ih
	switch {
	case cs.Height.IsDefinite():
		h = cs.Height.Resolve(boxH, ih)
	case cs.Top.IsDefinite() && cs.Bottom.IsDefinite():
		h = boxH - cs.Top.Resolve(boxH, 0) - cs.Bottom.Resolve(boxH, 0) - cs.Margin.Vertical()
	}
	w, h = math.Max(0, w), math.Max(0, h)

	c.x = border.Left + cs.Margin.Left
	switch {
	case cs.Left.IsDefinite():
		c.x += cs.Left.Resolve(boxW, 0)
	case cs.Right.IsDefinite():
		c.x = border.Left + boxW - cs.Right.Resolve(boxW, 0) - w - cs.Margin.Right
	}
	c.y = border.Top + cs.Margin.Top
	switch {
	case cs.Top.IsDefinite():
		c.y += cs.Top.Resolve(boxH, 0)
	case cs.Bottom.IsDefinite():
		c.y = border.Top + boxH - cs.Bottom.Resolve(boxH, 0) - h - cs.Margin.Bottom
	}
	c.parentW, c.parentH = width, height
	place(c, w, h)
}

func justifyOffset(justify Justify, free float64, count int) float64 {
	if free <= 0 || count == 0 {
		return 0
	}
	switch justify {
	case JustifyEnd:
		return free
	case JustifyCenter:
		return free / 2
	case JustifySpaceAround:
		return free / float64(count*2)
	case JustifySpaceEvenly:
		return free / float64(count+1)
	default:
		return 0
	}
}

func justifySpacing(justify Justify, free float64, count int) float64 {
	if free <= 0 || count == 0 {
		return 0
	}
	switch justify {
	case JustifySpaceBetween:
		if count == 1 {
			return 0
		}
		return free / float64(count-1)
	case JustifySpaceAround:
		return free / float64(count)
	case JustifySpaceEvenly:
		return free / float64(count+1)
	default:
		return 0
	}
}

func alignOffset(align Align, crossSize, itemSize float64) float64 {
	switch align {
	case AlignEnd:
		return crossSize - itemSize
	case AlignCenter:
		return (crossSize - itemSize) / 2
	default:
		return 0
	}
}

// clamp restricts v to [lo, hi], lo wins when the range is inverted.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if hi >= lo && v > hi {
		return hi
	}
	return v
}

func collectText(n *tree.Node) string {
	var sb strings.Builder
	var walk func(children []tree.Child)
	walk = func(children []tree.Child) {
		for _, c := range children {
			switch c := c.(type) {
			case tree.Text:
				sb.WriteString(string(c))
			case *tree.Node:
				if c != nil {
					walk(c.Children)
				}
			}
		}
	}
	walk(n.Children)
	return sb.String()
}
