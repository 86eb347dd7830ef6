package layout

import "folio/pkg/text"

// Column is the measurement capability handed to post-layout hooks: a
// read-only view over the rendered runs of one block fragment. It is built
// fresh for every dispatch and discarded afterwards.
type Column struct {
	runs     []*Run
	measurer text.Measurer
}

func NewColumn(runs []*Run, measurer text.Measurer) *Column {
	return &Column{runs: runs, measurer: measurer}
}

// Runs returns the rendered runs backing this column.
func (c *Column) Runs() []*Run {
	return c.runs
}

// GetRangeRects returns the rendered rectangles covering the given text
// range. A range that spans multiple lines yields one rectangle per line.
// Ranges that touch no rendered content yield an empty list.
func (c *Column) GetRangeRects(r TextRange) []Rect {
	var rects []Rect
	for _, run := range c.runs {
		if run.Node != r.Node {
			continue
		}
		lo := r.Start
		if run.Start > lo {
			lo = run.Start
		}
		hi := r.End
		if run.End < hi {
			hi = run.End
		}
		if lo >= hi {
			continue
		}

		width := run.Width
		if lo != run.Start || hi != run.End {
			// Partial overlap: measure the covered slice of the source text.
			width, _ = c.measurer.MeasureText(run.Node.Text[lo:hi], run.Style.GetFontSize())
		}
		rects = append(rects, Rect{
			Left:   run.X,
			Top:    run.Y,
			Width:  width,
			Height: run.Height,
		})
	}
	return rects
}
