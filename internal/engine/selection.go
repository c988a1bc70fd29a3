package engine

import (
	"slices"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/find"
	"github.com/dshills/inkwell/internal/engine/movement"
)

// ============================================================================
// Selection Operations
// ============================================================================

// Selection returns a copy of the current selection.
func (e *Engine) Selection() *cursor.Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection.Clone()
}

// SetSelection replaces the selection. Regions are clamped to the
// document and overlapping regions merge.
func (e *Engine) SetSelection(sel *cursor.Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.data.Len()
	out := cursor.NewSelection()
	for _, r := range sel.Regions() {
		out.AddRegion(r.Clamp(n))
	}
	if out.IsEmpty() {
		out.AddRegion(cursor.Caret(0))
	}
	e.selection = out
}

// SetCaret collapses the selection to a single caret at offset.
func (e *Engine) SetCaret(offset int) {
	e.SetSelection(cursor.NewCaretSelection(offset))
}

// AddCaret adds a caret at offset to the selection.
func (e *Engine) AddCaret(offset int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.AddRegion(cursor.Caret(offset).Clamp(e.data.Len()))
}

// MoveOptions controls a selection movement.
type MoveOptions struct {
	// Count repeats the movement. Values below 1 mean 1.
	Count int

	// Modify extends the selection instead of moving carets.
	Modify bool

	// IncludeNewline lets Left and Right cross line boundaries.
	IncludeNewline bool
}

// Move applies m to every region of the selection.
func (e *Engine) Move(m movement.Movement, opts MoveOptions) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := movement.NewResolver(e.data.Snapshot())
	if e.wordSeparators != "" {
		words := movement.NewTextWords(e.data.Snapshot())
		words.Separators = e.wordSeparators
		r.Words = words
	}
	e.selection = r.MoveSelection(e.selection, m, opts.Count, opts.IncludeNewline, opts.Modify)
}

// ============================================================================
// Find Operations
// ============================================================================

// SetFind starts a search for pattern and finds every occurrence. An
// empty pattern clears the search.
func (e *Engine) SetFind(pattern string, opts find.Options) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.find.Set(pattern, opts); err != nil {
		return err
	}
	snap := e.data.Snapshot()
	e.find.UpdateFind(snap, 0, snap.Len())
	return nil
}

// ClearFind ends the search.
func (e *Engine) ClearFind() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.find.Clear()
}

// Occurrences returns the current search matches, sorted by offset.
func (e *Engine) Occurrences() []cursor.SelRegion {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.find.Occurrences().Regions())
}

// FindNext selects the next match after the last caret, or with reverse
// the previous match before the first one. It reports whether a match was
// found; the selection is unchanged otherwise.
func (e *Engine) FindNext(reverse, wrap bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.selection.MaxOffset()
	if reverse {
		from = e.selection.MinOffset()
	}
	m, ok := e.find.Next(e.data.Snapshot(), from, reverse, wrap)
	if !ok {
		return false
	}
	e.selection = cursor.FromRegions(m)
	return true
}
