package text

import "testing"

func TestFixedMeasurer(t *testing.T) {
	m := &FixedMeasurer{Advance: 0.5}

	w, h := m.MeasureText("hello", 10)
	if w != 25 {
		t.Errorf("Expected width 25, got %v", w)
	}
	if h != 10 {
		t.Errorf("Expected height 10, got %v", h)
	}

	// Advance counts runes, not bytes
	w, _ = m.MeasureText("héllo", 10)
	if w != 25 {
		t.Errorf("Expected width 25 for 5 runes, got %v", w)
	}

	w, _ = m.MeasureText("", 10)
	if w != 0 {
		t.Errorf("Expected width 0 for empty string, got %v", w)
	}
}

func TestGlyphMeasurerFallback(t *testing.T) {
	// No font configured: the measurer falls back to estimated advances
	// instead of failing, so layout always proceeds.
	m := NewGlyphMeasurer("")
	w, h := m.MeasureText("abcd", 10)
	if w != 24 { // 4 chars * 10px * 0.6
		t.Errorf("Expected estimated width 24, got %v", w)
	}
	if h != 12 {
		t.Errorf("Expected estimated height 12, got %v", h)
	}
}
