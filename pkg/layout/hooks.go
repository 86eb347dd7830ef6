package layout

import "folio/pkg/css"

// StyleResolvedHook runs once per element during style resolution, before
// layout. It may copy recognized style values into ctx.Inherited so they
// survive into the post-layout phase. No return value; hooks must not fail.
type StyleResolvedHook func(ctx *NodeContext, style *css.Style)

// PostLayoutBlockHook runs once per block fragment, immediately after the
// engine finishes laying out that fragment. checkpoints lists the rendered
// positions the fragment produced; column is the measurement capability over
// the fragment's rendered runs. Hooks may mutate the block's subtree (the
// engine re-lays the block out once if its child list changed); they must
// not signal errors.
type PostLayoutBlockHook func(ctx *NodeContext, checkpoints []Checkpoint, column *Column)

// Hooks bundles the two extension points a plugin can register.
// Either field may be nil.
type Hooks struct {
	StyleResolved   StyleResolvedHook
	PostLayoutBlock PostLayoutBlockHook
}

type hookEntry struct {
	id    int
	hooks Hooks
}

// RegisterHooks registers a hook set with the engine and returns a handle
// that removes it again. Registration is meant to happen once, when the
// layout pipeline is composed, not as a load-time side effect.
func (e *Engine) RegisterHooks(h Hooks) (unregister func()) {
	e.nextHookID++
	id := e.nextHookID
	e.hooks = append(e.hooks, hookEntry{id: id, hooks: h})
	return func() {
		for i, entry := range e.hooks {
			if entry.id == id {
				e.hooks = append(e.hooks[:i], e.hooks[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) dispatchStyleResolved(ctx *NodeContext, style *css.Style) {
	for _, entry := range e.hooks {
		if entry.hooks.StyleResolved != nil {
			entry.hooks.StyleResolved(ctx, style)
		}
	}
}

func (e *Engine) dispatchPostLayoutBlock(ctx *NodeContext, checkpoints []Checkpoint, column *Column) {
	for _, entry := range e.hooks {
		if entry.hooks.PostLayoutBlock != nil {
			entry.hooks.PostLayoutBlock(ctx, checkpoints, column)
		}
	}
}
