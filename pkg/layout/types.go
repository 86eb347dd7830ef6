package layout

import (
	"folio/pkg/css"
	"folio/pkg/dom"
)

// Rect is an axis-aligned rendered rectangle. Top and Width are the fields
// measurement consumers rely on; Left and Height are carried for rendering.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// TextRange identifies a contiguous byte range [Start, End) of a text node's
// content. It is the argument to Column.GetRangeRects.
type TextRange struct {
	Node  *dom.Node
	Start int
	End   int
}

// Checkpoint marks a position the engine rendered while laying out a block.
// One checkpoint is recorded at the start of every placed text run; an empty
// checkpoint list means nothing in the block produced rendered content.
type Checkpoint struct {
	Node   *dom.Node
	Offset int
}

// Run is a placed piece of a text node: a contiguous range of the node's
// content rendered on one line. Position is absolute page coordinates.
type Run struct {
	Node   *dom.Node
	Start  int // byte offset into Node.Text
	End    int
	Text   string // rendered text (whitespace collapsed)
	Style  *css.Style
	X      float64
	Y      float64 // top of the line the run sits on
	Width  float64
	Height float64
}

// Line is one line box of a block.
type Line struct {
	Y      float64
	Height float64
	Runs   []*Run
}

// FloatBox is a placed floated element. Floats reserve space through the
// exclusion list during line building; they carry no inline content of
// their own in this engine.
type FloatBox struct {
	Node   *dom.Node
	Style  *css.Style
	Side   css.FloatType
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BlockBox is one fragment of a laid-out block. A block split across pages
// produces one BlockBox per page, with 1-based fragment indices.
type BlockBox struct {
	Node     *dom.Node
	Style    *css.Style
	Fragment int
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Lines    []*Line
	Floats   []*FloatBox
}

// Page is one page of laid-out content.
type Page struct {
	Index  int
	Width  float64
	Height float64
	Blocks []*BlockBox
}

// InheritedProps is the strongly-typed record of inherited style properties
// carried on a node's layout context. Values written here during style
// resolution propagate to every descendant context created afterward.
type InheritedProps struct {
	// HangingIndent is the normalized value of the hanging-indent property,
	// or "" when unset.
	HangingIndent string
}

// HangingIndentDiag is the plugin-owned diagnostics record the hanging-indent
// transform attaches after a successful application. Observability only; the
// engine never reads it.
type HangingIndentDiag struct {
	Applied   bool
	Width     float64
	LineCount int
}

// NodeContext is the per-element layout context the engine owns and passes
// to hooks. Hooks may write Inherited and Diag; everything else is engine
// state.
type NodeContext struct {
	Node    *dom.Node
	Style   *css.Style
	Display css.DisplayType

	// FragmentIndex is the 1-based index of the fragment currently being
	// post-processed. Only meaningful inside a post-layout hook.
	FragmentIndex int

	Inherited InheritedProps

	// Diag is owned by the hanging-indent transform.
	Diag *HangingIndentDiag
}
