package tree

import "sketchgen/style"

// LayoutBox is the computed geometry of one node, in layout engine units.
// Left and top are relative to the parent box.
type LayoutBox struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextRun is a piece of text content with the style it is drawn with.
type TextRun struct {
	Content string      `json:"content"`
	Style   style.Style `json:"textStyle"`
}

// MergedNode carries resolved style together with computed geometry. It is
// the only input of the document emitter and owns all its data.
type MergedNode struct {
	Type      string         `json:"type"`
	Style     style.Style    `json:"style"`
	TextStyle style.Style    `json:"textStyle"`
	Layout    LayoutBox      `json:"layout"`
	Props     map[string]any `json:"props,omitempty"`
	// TextRuns is set for text nodes instead of children.
	TextRuns []TextRun `json:"textNodes,omitempty"`
	// Children is empty for text nodes. Below a vector graphics stop point
	// Raw carries the untouched component children instead.
	Children []*MergedNode `json:"children"`
	Raw      []Child       `json:"-"`
}
