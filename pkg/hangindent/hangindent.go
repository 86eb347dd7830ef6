// Package hangindent implements a hanging indent sized to a paragraph's
// first word. It runs entirely after layout: it measures already-rendered
// geometry and splices two floated marker elements into the block so the
// engine's own float reflow indents the second visual line. It never breaks
// text or positions anything itself.
package hangindent

import (
	"math"
	"regexp"
	"strconv"

	"folio/pkg/css"
	"folio/pkg/dom"
	"folio/pkg/layout"
)

const (
	// Property is the style property that opts a block in.
	Property = "hanging-indent"
	// FirstWord is the only recognized value; anything else is inert.
	FirstWord = "first-word"

	// Marker class names, for styling and debugging only. The markers carry
	// no content and should be excluded from text extraction downstream.
	SpacerClass = "hanging-indent-spacer"
	PusherClass = "hanging-indent-pusher"
)

// leadingWord matches optional leading whitespace, one word, and the
// whitespace after it. A first text node that doesn't match (single word,
// no trailing space) makes the whole transform a no-op.
var leadingWord = regexp.MustCompile(`^[\s]*[^\s]+[\s]+`)

// Register wires the two hooks into the engine and returns the
// deregistration handle.
func Register(e *layout.Engine) func() {
	return e.RegisterHooks(layout.Hooks{
		StyleResolved:   CaptureStyle,
		PostLayoutBlock: ApplyIndent,
	})
}

// CaptureStyle copies a recognized hanging-indent value off the resolved
// style into the context's inherited record, so it survives into the
// post-layout phase. Malformed or absent values are ignored; this hook
// never fails.
func CaptureStyle(ctx *layout.NodeContext, style *css.Style) {
	raw, ok := style.Get(Property)
	if !ok {
		return
	}
	v := css.ParseValue(raw)
	if v.Text == "" {
		return
	}
	ctx.Inherited.HangingIndent = v.Text
}

// ApplyIndent is the post-layout hook: eligibility gate, geometry probe,
// marker injection. Every precondition miss is a silent no-op.
func ApplyIndent(ctx *layout.NodeContext, checkpoints []layout.Checkpoint, column *layout.Column) {
	// Eligibility gate
	if len(checkpoints) == 0 {
		return // nothing was laid out
	}
	if ctx.Display != css.DisplayBlock {
		return
	}
	if ctx.FragmentIndex > 1 {
		return // continuation fragments keep their natural start
	}
	if ctx.Inherited.HangingIndent != FirstWord {
		return
	}
	if ctx.Diag != nil && ctx.Diag.Applied {
		return // hook fired twice for the same fragment
	}

	width, ok := firstWordWidth(ctx.Node, column)
	if !ok {
		return
	}
	lineCount := countLines(ctx.Node, column)
	if lineCount < 2 {
		return // nothing to hang on a single line
	}

	injectMarkers(ctx, width)
	ctx.Diag = &layout.HangingIndentDiag{
		Applied:   true,
		Width:     width,
		LineCount: lineCount,
	}
}

// firstWordWidth measures the rendered width of the first word plus its
// following space, summed over every rectangle the range renders into.
func firstWordWidth(block *dom.Node, column *layout.Column) (float64, bool) {
	first := dom.FirstNonEmptyText(block)
	if first == nil {
		return 0, false
	}
	m := leadingWord.FindStringIndex(first.Text)
	if m == nil {
		return 0, false
	}

	width := 0.0
	for _, rect := range column.GetRangeRects(layout.TextRange{Node: first, Start: m[0], End: m[1]}) {
		width += rect.Width
	}
	if width <= 0 {
		return 0, false // degenerate render, the indent would be meaningless
	}
	return width, true
}

// countLines approximates the block's visual line count as the number of
// distinct rounded top coordinates across the rectangles of every non-empty
// text node. Lower-bound biased: two lines whose tops round to the same
// integer collapse into one.
func countLines(block *dom.Node, column *layout.Column) int {
	tops := make(map[int]struct{})
	for _, t := range dom.NonEmptyTextNodes(block) {
		for _, rect := range column.GetRangeRects(layout.TextRange{Node: t, Start: 0, End: len(t.Text)}) {
			tops[int(math.Round(rect.Top))] = struct{}{}
		}
	}
	return len(tops)
}

// injectMarkers prepends the spacer and pusher before the block's current
// first child. The spacer reserves a row and a half of vertical space at
// zero width, so its bottom always falls inside the second line's band;
// the pusher clears below it and occupies exactly the first word's width
// at the line-start edge, pushing the second line's inline content over.
// The engine's float reflow does the rest.
func injectMarkers(ctx *layout.NodeContext, width float64) {
	side := "left"
	if ctx.Style.GetDirection() == css.DirectionRTL {
		side = "right"
	}
	lineHeight := ctx.Style.GetLineHeight()

	spacer := dom.NewElement("span")
	spacer.SetAttribute("class", SpacerClass)
	spacer.SetAttribute("style",
		"float: "+side+"; width: 0px; height: "+px(1.5*lineHeight))

	pusher := dom.NewElement("span")
	pusher.SetAttribute("class", PusherClass)
	pusher.SetAttribute("style",
		"float: "+side+"; clear: "+side+"; width: "+px(width)+"; height: 1px")

	ref := ctx.Node.FirstChild()
	ctx.Node.InsertBefore(spacer, ref)
	ctx.Node.InsertBefore(pusher, ref)
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
