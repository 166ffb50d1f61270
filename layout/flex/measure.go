package flex

import (
	"math"
	"strings"
	"unicode/utf8"

	"sketchgen/style"
)

const (
	defaultFontSize = 14
	lineHeightRatio = 1.2
	// average advance of a glyph relative to the font size
	advanceRatio = 0.5
)

// textMeasure returns an approximate measure function for text set in font.
// Lines wrap at maxWidth when it is positive; explicit newlines always break.
func textMeasure(text string, font style.Style) func(maxWidth float64) (float64, float64) {
	size, ok := font.Number("fontSize")
	if !ok || size <= 0 {
		size = defaultFontSize
	}
	lineHeight, ok := font.Number("lineHeight")
	if !ok || lineHeight <= 0 {
		lineHeight = size * lineHeightRatio
	}
	spacing, _ := font.Number("letterSpacing")
	advance := size*advanceRatio + spacing

	paragraphs := strings.Split(text, "\n")
	return func(maxWidth float64) (float64, float64) {
		if text == "" {
			return 0, 0
		}
		var width, lines float64
		for _, p := range paragraphs {
			w := float64(utf8.RuneCountInString(p)) * advance
			n := 1.0
			if maxWidth > 0 && w > maxWidth {
				n = math.Ceil(w / maxWidth)
				w = maxWidth
			}
			width = math.Max(width, w)
			lines += n
		}
		return width, lines * lineHeight
	}
}
