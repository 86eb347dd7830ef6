package text

import (
	"github.com/fogleman/gg"
)

// Measurer returns the rendered advance width of a string at a font size.
// The layout engine measures through this interface so tests can substitute
// a deterministic fixed-advance measurer for the real glyph metrics.
type Measurer interface {
	MeasureText(text string, fontSize float64) (width, height float64)
}

// GlyphMeasurer measures text with real font metrics via gg.
type GlyphMeasurer struct {
	FontPath string
}

func NewGlyphMeasurer(fontPath string) *GlyphMeasurer {
	return &GlyphMeasurer{FontPath: fontPath}
}

// MeasureText measures the width and height of text with the given font size.
// If the font cannot be loaded, falls back to a rough estimate so that
// layout still proceeds.
func (m *GlyphMeasurer) MeasureText(text string, fontSize float64) (width, height float64) {
	dc := gg.NewContext(1, 1)
	if err := dc.LoadFontFace(m.FontPath, fontSize); err != nil {
		return float64(len(text)) * fontSize * 0.6, fontSize * 1.2
	}
	w, h := dc.MeasureString(text)
	return w, h
}

// FixedMeasurer gives every rune the same advance, like the Ahem test font
// where all glyphs are 1em squares. Advance is a fraction of the font size
// (1.0 reproduces Ahem exactly).
type FixedMeasurer struct {
	Advance float64
}

func (m *FixedMeasurer) MeasureText(text string, fontSize float64) (width, height float64) {
	n := 0
	for range text {
		n++
	}
	return float64(n) * fontSize * m.Advance, fontSize
}
