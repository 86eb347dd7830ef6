package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"folio/pkg/css"
	"folio/pkg/dom"
)

// Inline content of a block is flattened into a token stream first, then
// broken into lines against the float exclusion list. Tokens are immutable
// once collected; line building never reaches back into the tree.

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenSpace
	tokenFloat
	tokenBreak
)

type token struct {
	kind  tokenKind
	node  *dom.Node
	text  string
	start int // byte offset into node.Text (words only)
	end   int
	style *css.Style
}

// collectTokens flattens a block's inline content in document order.
// Runs of whitespace collapse into a single space token.
func (e *Engine) collectTokens(n *dom.Node, style *css.Style) []token {
	switch n.Type {
	case dom.TextNode:
		return textTokens(n, style)
	case dom.ElementNode:
		ctx := e.ensureContext(n)
		if ctx.Display == css.DisplayNone {
			return nil
		}
		if ctx.Style.GetFloat() != css.FloatNone {
			return []token{{kind: tokenFloat, node: n, style: ctx.Style}}
		}
		if n.TagName == "br" {
			return []token{{kind: tokenBreak, node: n}}
		}
		var out []token
		for _, child := range n.Children {
			out = append(out, e.collectTokens(child, ctx.Style)...)
		}
		return out
	default:
		return nil
	}
}

func textTokens(n *dom.Node, style *css.Style) []token {
	var out []token
	s := n.Text
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			j := i
			for j < len(s) {
				r2, size2 := utf8.DecodeRuneInString(s[j:])
				if !unicode.IsSpace(r2) {
					break
				}
				j += size2
			}
			out = append(out, token{kind: tokenSpace, node: n})
			i = j
			continue
		}
		j := i + size
		for j < len(s) {
			r2, size2 := utf8.DecodeRuneInString(s[j:])
			if unicode.IsSpace(r2) {
				break
			}
			j += size2
		}
		out = append(out, token{
			kind:  tokenWord,
			node:  n,
			text:  s[i:j],
			start: i,
			end:   j,
			style: style,
		})
		i = j
	}
	return out
}

// exclusion is a float's reserved rectangle, in block-local coordinates.
type exclusion struct {
	x, y, w, h float64
	side       css.FloatType
}

// floatOffsets returns the left and right inline offsets caused by
// exclusions intersecting the vertical band [y, y+h).
func floatOffsets(excl []exclusion, y, h, width float64) (left, right float64) {
	for _, ex := range excl {
		if ex.y >= y+h || y >= ex.y+ex.h {
			continue
		}
		if ex.side == css.FloatLeft {
			if edge := ex.x + ex.w; edge > left {
				left = edge
			}
		} else {
			if edge := width - ex.x; edge > right {
				right = edge
			}
		}
	}
	return left, right
}

// clearY returns the Y position below every exclusion the given clear value
// applies to.
func clearY(excl []exclusion, clear css.ClearType, y float64) float64 {
	for _, ex := range excl {
		applies := false
		switch clear {
		case css.ClearLeft:
			applies = ex.side == css.FloatLeft
		case css.ClearRight:
			applies = ex.side == css.FloatRight
		case css.ClearBoth:
			applies = true
		}
		if applies && ex.y+ex.h > y {
			y = ex.y + ex.h
		}
	}
	return y
}

type blockContent struct {
	lines  []*Line
	floats []*FloatBox
	height float64
}

// placedWord is a word committed to the line being built.
type placedWord struct {
	tok         token
	spaceBefore bool
}

// layoutBlockContent lays out a block's inline content in block-local
// coordinates: greedy word wrapping against the float exclusion list.
func (e *Engine) layoutBlockContent(block *dom.Node, style *css.Style) *blockContent {
	tokens := e.collectTokens(block, style)
	lineH := style.GetLineHeight()
	width := e.pageWidth

	content := &blockContent{}
	var excl []exclusion
	y := 0.0

	var cur []placedWord
	curWidth := 0.0
	pendingSpace := false

	flush := func() {
		if len(cur) == 0 {
			return
		}
		content.lines = append(content.lines, e.buildLine(cur, y, lineH, excl, width))
		cur = nil
		curWidth = 0
		y += lineH
	}

	for _, tok := range tokens {
		switch tok.kind {
		case tokenSpace:
			pendingSpace = true

		case tokenBreak:
			if len(cur) > 0 {
				flush()
			} else {
				y += lineH // empty line from a bare <br>
			}
			pendingSpace = false

		case tokenFloat:
			fw, _ := tok.style.GetLength("width")
			fh, ok := tok.style.GetLength("height")
			if !ok {
				fh = lineH
			}
			fy := y
			if clear := tok.style.GetClear(); clear != css.ClearNone {
				fy = clearY(excl, clear, fy)
			}
			side := tok.style.GetFloat()
			var fx float64
			if side == css.FloatLeft {
				leftOff, _ := floatOffsets(excl, fy, fh, width)
				fx = leftOff
			} else {
				_, rightOff := floatOffsets(excl, fy, fh, width)
				fx = width - rightOff - fw
			}
			excl = append(excl, exclusion{x: fx, y: fy, w: fw, h: fh, side: side})
			content.floats = append(content.floats, &FloatBox{
				Node:   tok.node,
				Style:  tok.style,
				Side:   side,
				X:      fx,
				Y:      fy,
				Width:  fw,
				Height: fh,
			})

		case tokenWord:
			fontSize := tok.style.GetFontSize()
			wordW, _ := e.measurer.MeasureText(tok.text, fontSize)
			spaceBefore := pendingSpace && len(cur) > 0
			add := wordW
			if spaceBefore {
				spaceW, _ := e.measurer.MeasureText(" ", fontSize)
				add += spaceW
			}

			leftOff, rightOff := floatOffsets(excl, y, lineH, width)
			avail := width - leftOff - rightOff
			if curWidth+add > avail && len(cur) > 0 {
				flush()
				spaceBefore = false
				add = wordW
			}
			cur = append(cur, placedWord{tok: tok, spaceBefore: spaceBefore})
			curWidth += add
			pendingSpace = false
		}
	}
	flush()

	content.height = y
	for _, f := range content.floats {
		if f.Y+f.Height > content.height {
			content.height = f.Y + f.Height
		}
	}
	return content
}

// buildLine assembles the placed words of one line into runs, grouping
// consecutive words from the same text node.
func (e *Engine) buildLine(words []placedWord, y, lineH float64, excl []exclusion, width float64) *Line {
	line := &Line{Y: y, Height: lineH}
	leftOff, _ := floatOffsets(excl, y, lineH, width)
	x := leftOff

	var run *Run
	var runText strings.Builder

	finish := func() {
		if run == nil {
			return
		}
		run.Text = runText.String()
		run.Width, _ = e.measurer.MeasureText(run.Text, run.Style.GetFontSize())
		run.Height = lineH
		line.Runs = append(line.Runs, run)
		x = run.X + run.Width
		run = nil
		runText.Reset()
	}

	for _, w := range words {
		if run != nil && w.tok.node != run.Node {
			finish()
			if w.spaceBefore {
				spaceW, _ := e.measurer.MeasureText(" ", w.tok.style.GetFontSize())
				x += spaceW
			}
		}
		if run == nil {
			run = &Run{
				Node:  w.tok.node,
				Start: w.tok.start,
				End:   w.tok.end,
				Style: w.tok.style,
				X:     x,
				Y:     y,
			}
			runText.WriteString(w.tok.text)
			continue
		}
		if w.spaceBefore {
			runText.WriteString(" ")
		}
		runText.WriteString(w.tok.text)
		run.End = w.tok.end
	}
	finish()
	return line
}
