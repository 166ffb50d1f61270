package sketch

// Rectangle returns a rectangle path layer filling frame.
func Rectangle(name string, frame Rect, radius float64) *Layer {
	l := NewLayer(ClassRectangle, name, frame)
	l.FixedRadius = radius
	return l
}

// ShapeGroup returns a shape group at frame holding a single rectangle
// filled with fill.
func ShapeGroup(name string, frame Rect, fill Color, radius float64) *Layer {
	g := NewContainer(ClassShapeGroup, name, frame)
	g.Style.Fills = []Fill{SolidFill(fill)}
	g.Layers = append(g.Layers, Rectangle("Path", NewRect(0, 0, frame.Width, frame.Height), radius))
	return g
}

// SolidFill returns an enabled solid fill.
func SolidFill(c Color) Fill {
	return Fill{Class: "fill", IsEnabled: true, Color: c, FillType: FillTypeSolid}
}
