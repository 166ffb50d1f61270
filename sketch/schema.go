// Package sketch describes the layer schema of the generated design
// document and builds the primitive shapes renderers are composed of.
package sketch

// Layer classes.
const (
	ClassDocument   = "document"
	ClassPage       = "page"
	ClassArtboard   = "artboard"
	ClassGroup      = "group"
	ClassShapeGroup = "shapeGroup"
	ClassRectangle  = "rectangle"
	ClassText       = "text"
	ClassBitmap     = "bitmap"
	ClassSvg        = "svg"
)

// FillType values.
const (
	FillTypeSolid = 0
	FillTypeImage = 4
)

// BorderPosition values.
const (
	BorderPositionCenter  = 0
	BorderPositionInside  = 1
	BorderPositionOutside = 2
)

// LineCapStyle values.
const (
	LineCapButt  = 0
	LineCapRound = 1
)

// Color components are in the 0..1 range.
type Color struct {
	Class string  `json:"_class"`
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

// Rect is the frame of a layer relative to its parent layer.
type Rect struct {
	Class                string  `json:"_class"`
	ConstrainProportions bool    `json:"constrainProportions"`
	X                    float64 `json:"x"`
	Y                    float64 `json:"y"`
	Width                float64 `json:"width"`
	Height               float64 `json:"height"`
}

// NewRect returns a frame.
func NewRect(x, y, width, height float64) Rect {
	return Rect{Class: "rect", X: x, Y: y, Width: width, Height: height}
}

// Border is a stroke description.
type Border struct {
	Class     string  `json:"_class"`
	IsEnabled bool    `json:"isEnabled"`
	Color     Color   `json:"color"`
	FillType  int     `json:"fillType"`
	Position  int     `json:"position"`
	Thickness float64 `json:"thickness"`
}

// BorderOptions describes dashes and caps of all borders of a layer.
type BorderOptions struct {
	Class         string    `json:"_class"`
	IsEnabled     bool      `json:"isEnabled"`
	DashPattern   []float64 `json:"dashPattern"`
	LineCapStyle  int       `json:"lineCapStyle"`
	LineJoinStyle int       `json:"lineJoinStyle"`
}

// Fill is a solid or image fill.
type Fill struct {
	Class     string     `json:"_class"`
	IsEnabled bool       `json:"isEnabled"`
	Color     Color      `json:"color"`
	FillType  int        `json:"fillType"`
	Image     *ImageData `json:"image,omitempty"`
}

// Shadow is a drop shadow.
type Shadow struct {
	Class      string  `json:"_class"`
	IsEnabled  bool    `json:"isEnabled"`
	Color      Color   `json:"color"`
	OffsetX    float64 `json:"offsetX"`
	OffsetY    float64 `json:"offsetY"`
	BlurRadius float64 `json:"blurRadius"`
	Spread     float64 `json:"spread"`
}

// Style is the visual style of a layer.
type Style struct {
	Class         string         `json:"_class"`
	Borders       []Border       `json:"borders,omitempty"`
	BorderOptions *BorderOptions `json:"borderOptions,omitempty"`
	Fills         []Fill         `json:"fills,omitempty"`
	Shadows       []Shadow       `json:"shadows,omitempty"`
	Opacity       *float64       `json:"opacity,omitempty"`
}

// NewStyle returns an empty style.
func NewStyle() *Style {
	return &Style{Class: "style"}
}

// FontDescriptor names the font of a run.
type FontDescriptor struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

// StringAttribute styles a range of an attributed string.
type StringAttribute struct {
	Location      int            `json:"location"`
	Length        int            `json:"length"`
	Font          FontDescriptor `json:"font"`
	Color         Color          `json:"color"`
	LineHeight    float64        `json:"lineHeight,omitempty"`
	Kerning       float64        `json:"kerning,omitempty"`
	Alignment     string         `json:"alignment,omitempty"`
	TextTransform string         `json:"textTransform,omitempty"`
}

// AttributedString is text with styled ranges. Locations and lengths count
// UTF-16 code units.
type AttributedString struct {
	Class      string            `json:"_class"`
	String     string            `json:"string"`
	Attributes []StringAttribute `json:"attributes"`
}

// ImageData is embedded bitmap data.
type ImageData struct {
	Class  string `json:"_class"`
	SHA1   string `json:"sha1"`
	Data   string `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Layer is a node of the output document. Container layers always carry a
// non-nil Layers slice so the field is emitted as an empty array.
type Layer struct {
	Class            string            `json:"_class"`
	ObjectID         string            `json:"do_objectID"`
	Name             string            `json:"name"`
	Frame            Rect              `json:"frame"`
	Style            *Style            `json:"style,omitempty"`
	HasClippingMask  bool              `json:"hasClippingMask,omitempty"`
	IsVisible        bool              `json:"isVisible"`
	FixedRadius      float64           `json:"fixedRadius,omitempty"`
	AttributedString *AttributedString `json:"attributedString,omitempty"`
	Image            *ImageData        `json:"image,omitempty"`
	SvgMarkup        string            `json:"svgMarkup,omitempty"`
	Layers           []*Layer          `json:"layers,omitzero"`
}

// NewLayer returns a visible layer of class with a frame and an empty style.
func NewLayer(class, name string, frame Rect) *Layer {
	return &Layer{Class: class, Name: name, Frame: frame, Style: NewStyle(), IsVisible: true}
}

// NewContainer returns a layer which holds children.
func NewContainer(class, name string, frame Rect) *Layer {
	l := NewLayer(class, name, frame)
	l.Layers = []*Layer{}
	return l
}

// Walk calls fn for every layer of the tree in depth first order with the
// indices leading from the root to the layer.
func Walk(root *Layer, fn func(l *Layer, path []int)) {
	var walk func(l *Layer, path []int)
	walk = func(l *Layer, path []int) {
		if l == nil {
			return
		}
		fn(l, path)
		for i, c := range l.Layers {
			walk(c, append(path[:len(path):len(path)], i))
		}
	}
	walk(root, nil)
}
