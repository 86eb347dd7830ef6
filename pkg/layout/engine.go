package layout

import (
	"folio/pkg/css"
	"folio/pkg/dom"
	"folio/pkg/text"
)

// Engine lays an HTML document out into pages. Layout is synchronous and
// single-threaded: blocks are laid out and post-processed one at a time in
// document order, and registered hooks run on the engine's thread of control
// with exclusive access to the block being processed.
type Engine struct {
	pageWidth  float64
	pageHeight float64
	measurer   text.Measurer

	hooks      []hookEntry
	nextHookID int

	stylesheets []*css.Stylesheet
	contexts    map[*dom.Node]*NodeContext
}

// NewEngine creates an engine for the given page size. If measurer is nil,
// a glyph measurer with no font configured is used, which falls back to
// estimated advances.
func NewEngine(pageWidth, pageHeight float64, measurer text.Measurer) *Engine {
	if measurer == nil {
		measurer = text.NewGlyphMeasurer("")
	}
	return &Engine{
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
		measurer:   measurer,
	}
}

// Context returns the layout context for a node, or nil if the node has not
// been styled. Contexts are rebuilt on every LayoutDocument call.
func (e *Engine) Context(n *dom.Node) *NodeContext {
	return e.contexts[n]
}

// LayoutDocument resolves styles, dispatches the style-resolution hooks,
// lays the document out into pages, and dispatches the post-layout hooks
// once per block fragment.
func (e *Engine) LayoutDocument(doc *dom.Document) []*Page {
	e.stylesheets = make([]*css.Stylesheet, 0, len(doc.Stylesheets))
	for _, cssText := range doc.Stylesheets {
		e.stylesheets = append(e.stylesheets, css.ParseStylesheet(cssText))
	}

	e.contexts = make(map[*dom.Node]*NodeContext)
	e.resolveNode(doc.Root, nil)

	st := &layoutState{
		pages: []*Page{{Index: 0, Width: e.pageWidth, Height: e.pageHeight}},
	}
	e.layoutContainer(doc.Root, st)
	return st.pages
}

// resolveNode computes the node's style, creates its context (inheriting the
// parent context's inherited record), dispatches the style-resolution hooks,
// and recurses. Pre-order, so a value a hook writes on a container is seen
// by every descendant context.
func (e *Engine) resolveNode(n *dom.Node, parent *NodeContext) {
	if n.Type != dom.ElementNode {
		return
	}
	ctx := e.buildContext(n, parent)
	for _, child := range n.Children {
		e.resolveNode(child, ctx)
	}
}

func (e *Engine) buildContext(n *dom.Node, parent *NodeContext) *NodeContext {
	style := css.ComputeStyle(n, e.stylesheets)
	if parent != nil {
		inheritStyle(style, parent.Style)
	}
	ctx := &NodeContext{
		Node:    n,
		Style:   style,
		Display: style.GetDisplay(),
	}
	if parent != nil {
		ctx.Inherited = parent.Inherited
	}
	e.contexts[n] = ctx
	e.dispatchStyleResolved(ctx, style)
	return ctx
}

// ensureContext returns the node's context, styling the node on demand.
// Elements inserted into the tree after style resolution (marker elements
// from post-layout hooks) are styled here.
func (e *Engine) ensureContext(n *dom.Node) *NodeContext {
	if ctx, ok := e.contexts[n]; ok {
		return ctx
	}
	var parent *NodeContext
	if n.Parent != nil {
		parent = e.contexts[n.Parent]
	}
	return e.buildContext(n, parent)
}

// inherited CSS properties the engine cares about
var inheritedProperties = []string{"font-size", "line-height", "direction"}

func inheritStyle(style, parent *css.Style) {
	for _, prop := range inheritedProperties {
		if _, ok := style.Get(prop); ok {
			continue
		}
		if val, ok := parent.Get(prop); ok {
			style.Set(prop, val)
		}
	}
}

type layoutState struct {
	pages   []*Page
	page    int
	cursorY float64
}

func (st *layoutState) currentPage() *Page {
	return st.pages[st.page]
}

func (st *layoutState) nextPage() {
	st.page++
	if st.page >= len(st.pages) {
		prev := st.pages[0]
		st.pages = append(st.pages, &Page{
			Index:  st.page,
			Width:  prev.Width,
			Height: prev.Height,
		})
	}
	st.cursorY = 0
}

// layoutContainer walks block-level children in document order. An element
// with in-flow block children is a container; everything else block-level
// is a paragraph laid out by placeBlock.
func (e *Engine) layoutContainer(n *dom.Node, st *layoutState) {
	for _, child := range n.Children {
		if child.Type != dom.ElementNode {
			continue
		}
		ctx := e.ensureContext(child)
		if ctx.Display == css.DisplayNone || ctx.Display == css.DisplayInline {
			continue
		}
		if hasInFlowBlockChildren(e, child) {
			e.layoutContainer(child, st)
		} else {
			e.placeBlock(child, ctx, st)
		}
	}
}

func hasInFlowBlockChildren(e *Engine, n *dom.Node) bool {
	for _, child := range n.Children {
		if child.Type != dom.ElementNode {
			continue
		}
		ctx := e.ensureContext(child)
		if ctx.Style.GetFloat() != css.FloatNone {
			continue
		}
		if ctx.Display == css.DisplayBlock {
			return true
		}
	}
	return false
}

// placeBlock lays out one paragraph-level block: content layout, fragment
// planning, the post-layout dispatch for the first fragment, one re-layout
// if a hook mutated the block's children, then the commit of all fragments.
func (e *Engine) placeBlock(block *dom.Node, ctx *NodeContext, st *layoutState) {
	style := ctx.Style

	if top, ok := style.GetLength("margin-top"); ok {
		st.cursorY += top
	}

	childCount := len(block.Children)
	content := e.layoutBlockContent(block, style)
	frags, end := e.planFragments(block, style, content, st.page, st.cursorY)

	if len(frags) > 0 {
		first := frags[0]
		ctx.FragmentIndex = 1
		e.dispatchPostLayoutBlock(ctx, checkpointsOf(first), NewColumn(runsOf(first), e.measurer))

		if len(block.Children) != childCount {
			// A hook inserted or removed children; honor the new floats by
			// laying the block out once more. No second dispatch.
			content = e.layoutBlockContent(block, style)
			frags, end = e.planFragments(block, style, content, st.page, st.cursorY)
		}
	}

	for _, frag := range frags {
		for frag.pageIndex > st.page {
			st.nextPage()
		}
		st.pages[frag.pageIndex].Blocks = append(st.pages[frag.pageIndex].Blocks, frag.box)
		if frag.box.Fragment > 1 {
			ctx.FragmentIndex = frag.box.Fragment
			e.dispatchPostLayoutBlock(ctx, checkpointsOf(frag), NewColumn(runsOf(frag), e.measurer))
		}
	}
	st.page = end.page
	st.cursorY = end.cursorY

	if bottom, ok := style.GetLength("margin-bottom"); ok {
		st.cursorY += bottom
	}
}

type fragment struct {
	pageIndex int
	box       *BlockBox
}

type cursorPos struct {
	page    int
	cursorY float64
}

// planFragments assigns the block's lines to page-sized fragments, shifting
// line and run coordinates to page-local positions. Floats stay with the
// first fragment. The content object is consumed: its coordinates are
// rewritten in place.
func (e *Engine) planFragments(block *dom.Node, style *css.Style, content *blockContent, startPage int, startY float64) ([]fragment, cursorPos) {
	frags := make([]fragment, 0, 1)
	page := startPage
	cursorY := startY

	lines := content.lines
	localOffset := 0.0
	fragIndex := 0

	for fragIndex == 0 || len(lines) > 0 {
		avail := e.pageHeight - cursorY
		take := 0
		for _, line := range lines {
			if line.Y-localOffset+line.Height <= avail {
				take++
			} else {
				break
			}
		}
		if take == 0 && len(lines) > 0 {
			if cursorY > 0 {
				page++
				cursorY = 0
				continue
			}
			take = 1 // oversized line on an empty page: place it anyway
		}

		fragIndex++
		box := &BlockBox{
			Node:     block,
			Style:    style,
			Fragment: fragIndex,
			X:        0,
			Y:        cursorY,
			Width:    e.pageWidth,
		}
		shift := cursorY - localOffset
		bottom := cursorY
		for _, line := range lines[:take] {
			line.Y += shift
			for _, run := range line.Runs {
				run.Y += shift
			}
			box.Lines = append(box.Lines, line)
			if line.Y+line.Height > bottom {
				bottom = line.Y + line.Height
			}
		}
		if fragIndex == 1 {
			for _, f := range content.floats {
				f.Y += shift
				box.Floats = append(box.Floats, f)
				if f.Y+f.Height > bottom {
					bottom = f.Y + f.Height
				}
			}
			if len(lines) == 0 && content.height > 0 {
				bottom = cursorY + content.height
			}
		}
		box.Height = bottom - cursorY
		frags = append(frags, fragment{pageIndex: page, box: box})

		if take < len(lines) {
			localOffset = lines[take].Y
		}
		lines = lines[take:]
		cursorY = bottom
		if len(lines) > 0 {
			page++
			cursorY = 0
		}
	}

	return frags, cursorPos{page: page, cursorY: cursorY}
}

func runsOf(frag fragment) []*Run {
	var runs []*Run
	for _, line := range frag.box.Lines {
		runs = append(runs, line.Runs...)
	}
	return runs
}

func checkpointsOf(frag fragment) []Checkpoint {
	var cps []Checkpoint
	for _, line := range frag.box.Lines {
		for _, run := range line.Runs {
			cps = append(cps, Checkpoint{Node: run.Node, Offset: run.Start})
		}
	}
	return cps
}
