package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"folio/pkg/css"
	"folio/pkg/dom"
	"folio/pkg/text"
)

// fixed measurer: every rune is fontSize/2 wide, so at font-size 10px a
// character is 5px and a word like "aaaa" is 20px.
func testMeasurer() text.Measurer {
	return &text.FixedMeasurer{Advance: 0.5}
}

func mustParse(t *testing.T, html string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(html)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func findElement(n *dom.Node, tag string) *dom.Node {
	if n.Type == dom.ElementNode && n.TagName == tag {
		return n
	}
	for _, child := range n.Children {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestLayout_WordWrapping(t *testing.T) {
	doc := mustParse(t, `<body><p style="font-size: 10px">aaaa bbbb cccc dddd</p></body>`)
	e := NewEngine(50, 500, testMeasurer())

	pages := e.LayoutDocument(doc)

	if len(pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(pages))
	}
	block := pages[0].Blocks[0]
	if len(block.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(block.Lines))
	}

	first := block.Lines[0].Runs[0]
	if first.Text != "aaaa bbbb" {
		t.Errorf("Expected first line 'aaaa bbbb', got %q", first.Text)
	}
	if first.X != 0 || first.Y != 0 {
		t.Errorf("Expected first run at (0,0), got (%v,%v)", first.X, first.Y)
	}
	if first.Width != 45 {
		t.Errorf("Expected first run width 45, got %v", first.Width)
	}

	second := block.Lines[1].Runs[0]
	if second.Text != "cccc dddd" {
		t.Errorf("Expected second line 'cccc dddd', got %q", second.Text)
	}
	if second.Y != 12 {
		t.Errorf("Expected second line at y=12, got %v", second.Y)
	}
	if second.Start != 10 || second.End != 19 {
		t.Errorf("Expected second run offsets [10,19), got [%d,%d)", second.Start, second.End)
	}
}

func TestLayout_LeftFloatIndentsLine(t *testing.T) {
	doc := mustParse(t, `<body><p style="font-size: 10px"><span style="float: left; width: 20px; height: 12px"></span>aaaa bbbb</p></body>`)
	e := NewEngine(100, 500, testMeasurer())

	pages := e.LayoutDocument(doc)

	block := pages[0].Blocks[0]
	if len(block.Floats) != 1 {
		t.Fatalf("Expected 1 float, got %d", len(block.Floats))
	}
	f := block.Floats[0]
	if f.X != 0 || f.Y != 0 || f.Width != 20 {
		t.Errorf("Unexpected float geometry: %+v", f)
	}
	run := block.Lines[0].Runs[0]
	if run.X != 20 {
		t.Errorf("Expected line content pushed to x=20, got %v", run.X)
	}
}

func TestLayout_ClearPlacesFloatBelow(t *testing.T) {
	doc := mustParse(t, `<body><p style="font-size: 10px">`+
		`<span style="float: left; width: 20px; height: 12px"></span>`+
		`<span style="float: left; clear: left; width: 30px; height: 12px"></span>`+
		`aaaa bbbb</p></body>`)
	e := NewEngine(100, 500, testMeasurer())

	pages := e.LayoutDocument(doc)

	block := pages[0].Blocks[0]
	if len(block.Floats) != 2 {
		t.Fatalf("Expected 2 floats, got %d", len(block.Floats))
	}
	cleared := block.Floats[1]
	if cleared.Y != 12 {
		t.Errorf("Cleared float should start below the first (y=12), got %v", cleared.Y)
	}
	if cleared.X != 0 {
		t.Errorf("Cleared float should return to the left edge, got x=%v", cleared.X)
	}
}

func TestLayout_ZeroWidthFloatReservesNoInlineSpace(t *testing.T) {
	doc := mustParse(t, `<body><p style="font-size: 10px"><span style="float: left; width: 0px; height: 15px"></span>aaaa</p></body>`)
	e := NewEngine(100, 500, testMeasurer())

	pages := e.LayoutDocument(doc)

	run := pages[0].Blocks[0].Lines[0].Runs[0]
	if run.X != 0 {
		t.Errorf("Zero-width float must not displace inline content, got x=%v", run.X)
	}
}

func TestColumn_GetRangeRects(t *testing.T) {
	doc := mustParse(t, `<body><p style="font-size: 10px">Hello world, this wraps.</p></body>`)
	e := NewEngine(100, 500, testMeasurer())

	var col *Column
	e.RegisterHooks(Hooks{
		PostLayoutBlock: func(ctx *NodeContext, cps []Checkpoint, column *Column) {
			col = column
		},
	})
	e.LayoutDocument(doc)

	if col == nil {
		t.Fatal("Post-layout hook did not run")
	}
	textNode := dom.FirstNonEmptyText(findElement(doc.Root, "p"))

	// Whole node: one rect per line
	rects := col.GetRangeRects(TextRange{Node: textNode, Start: 0, End: len(textNode.Text)})
	want := []Rect{
		{Left: 0, Top: 0, Width: 85, Height: 12},
		{Left: 0, Top: 12, Width: 30, Height: 12},
	}
	if diff := cmp.Diff(want, rects); diff != "" {
		t.Errorf("Rects mismatch (-want +got):\n%s", diff)
	}

	// Partial range: first word plus trailing space
	rects = col.GetRangeRects(TextRange{Node: textNode, Start: 0, End: 6})
	if len(rects) != 1 {
		t.Fatalf("Expected 1 rect for partial range, got %d", len(rects))
	}
	if rects[0].Width != 30 { // "Hello " is 6 chars at 5px
		t.Errorf("Expected partial width 30, got %v", rects[0].Width)
	}

	// Empty range: no geometry
	if rects := col.GetRangeRects(TextRange{Node: textNode, Start: 3, End: 3}); len(rects) != 0 {
		t.Errorf("Expected no rects for empty range, got %d", len(rects))
	}
}

func TestLayout_CheckpointsPerRun(t *testing.T) {
	doc := mustParse(t, `<body><p style="font-size: 10px">aaaa bbbb cccc dddd</p></body>`)
	e := NewEngine(50, 500, testMeasurer())

	var cps []Checkpoint
	e.RegisterHooks(Hooks{
		PostLayoutBlock: func(ctx *NodeContext, checkpoints []Checkpoint, col *Column) {
			cps = checkpoints
		},
	})
	e.LayoutDocument(doc)

	if len(cps) != 2 {
		t.Fatalf("Expected 2 checkpoints (one per run), got %d", len(cps))
	}
	if cps[0].Offset != 0 || cps[1].Offset != 10 {
		t.Errorf("Unexpected checkpoint offsets: %d, %d", cps[0].Offset, cps[1].Offset)
	}
}

func TestLayout_EmptyBlockHasNoCheckpoints(t *testing.T) {
	doc := mustParse(t, `<body><p>   </p></body>`)
	e := NewEngine(100, 500, testMeasurer())

	called := false
	var got []Checkpoint
	e.RegisterHooks(Hooks{
		PostLayoutBlock: func(ctx *NodeContext, checkpoints []Checkpoint, col *Column) {
			called = true
			got = checkpoints
		},
	})
	e.LayoutDocument(doc)

	if !called {
		t.Fatal("Post-layout hook should run even for empty blocks")
	}
	if len(got) != 0 {
		t.Errorf("Expected no checkpoints for whitespace-only block, got %d", len(got))
	}
}

func TestLayout_PaginationFragments(t *testing.T) {
	// 12 words of 20px at page width 100 gives 3 lines; a 30px page holds
	// 2 lines of 12px, so the block splits into fragments 1 and 2.
	doc := mustParse(t, `<body><p style="font-size: 10px">`+
		`aaaa bbbb cccc dddd aaaa bbbb cccc dddd aaaa bbbb cccc dddd</p></body>`)
	e := NewEngine(100, 30, testMeasurer())

	var fragments []int
	e.RegisterHooks(Hooks{
		PostLayoutBlock: func(ctx *NodeContext, cps []Checkpoint, col *Column) {
			fragments = append(fragments, ctx.FragmentIndex)
		},
	})
	pages := e.LayoutDocument(doc)

	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}
	if got := pages[0].Blocks[0].Fragment; got != 1 {
		t.Errorf("Expected fragment 1 on page 1, got %d", got)
	}
	if got := pages[1].Blocks[0].Fragment; got != 2 {
		t.Errorf("Expected fragment 2 on page 2, got %d", got)
	}
	if pages[1].Blocks[0].Lines[0].Y != 0 {
		t.Errorf("Continuation fragment should restart at the page top, got y=%v",
			pages[1].Blocks[0].Lines[0].Y)
	}
	if diff := cmp.Diff([]int{1, 2}, fragments); diff != "" {
		t.Errorf("Fragment dispatch order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterHooks_Unregister(t *testing.T) {
	doc := mustParse(t, `<body><p>text here</p></body>`)
	e := NewEngine(100, 500, testMeasurer())

	calls := 0
	unregister := e.RegisterHooks(Hooks{
		PostLayoutBlock: func(ctx *NodeContext, cps []Checkpoint, col *Column) {
			calls++
		},
	})
	unregister()
	e.LayoutDocument(doc)

	if calls != 0 {
		t.Errorf("Unregistered hook still ran %d time(s)", calls)
	}
}

func TestLayout_HookMutationTriggersRelayout(t *testing.T) {
	doc := mustParse(t, `<body><p style="font-size: 10px">aaaa bbbb</p></body>`)
	e := NewEngine(100, 500, testMeasurer())

	dispatches := 0
	e.RegisterHooks(Hooks{
		PostLayoutBlock: func(ctx *NodeContext, cps []Checkpoint, col *Column) {
			dispatches++
			marker := dom.NewElement("span")
			marker.SetAttribute("style", "float: left; width: 30px; height: 12px")
			ctx.Node.InsertBefore(marker, ctx.Node.FirstChild())
		},
	})
	pages := e.LayoutDocument(doc)

	if dispatches != 1 {
		t.Errorf("Expected exactly one dispatch (no re-dispatch after re-layout), got %d", dispatches)
	}
	run := pages[0].Blocks[0].Lines[0].Runs[0]
	if run.X != 30 {
		t.Errorf("Expected content pushed right by the injected float, got x=%v", run.X)
	}
}

func TestStyleResolution_InheritedRecordPropagates(t *testing.T) {
	doc := mustParse(t, `<body><div style="hanging-indent: first-word"><p>child text</p></div></body>`)
	e := NewEngine(100, 500, testMeasurer())

	e.RegisterHooks(Hooks{
		StyleResolved: func(ctx *NodeContext, style *css.Style) {
			if v, ok := style.Get("hanging-indent"); ok {
				ctx.Inherited.HangingIndent = v
			}
		},
	})
	e.LayoutDocument(doc)

	p := findElement(doc.Root, "p")
	ctx := e.Context(p)
	if ctx == nil {
		t.Fatal("Expected a context for the <p>")
	}
	if ctx.Inherited.HangingIndent != "first-word" {
		t.Errorf("Expected inherited hanging-indent on the child, got %q", ctx.Inherited.HangingIndent)
	}
	if ctx.Display != css.DisplayBlock {
		t.Errorf("Expected block display, got %v", ctx.Display)
	}
}

func TestStyleResolution_FontSizeInherits(t *testing.T) {
	doc := mustParse(t, `<body><div style="font-size: 10px"><p>text</p></div></body>`)
	e := NewEngine(100, 500, testMeasurer())
	e.LayoutDocument(doc)

	p := findElement(doc.Root, "p")
	if got := e.Context(p).Style.GetFontSize(); got != 10 {
		t.Errorf("Expected inherited font-size 10, got %v", got)
	}
}
