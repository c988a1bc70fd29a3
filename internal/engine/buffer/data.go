package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/inkwell/internal/engine/delta"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/rope"
	"github.com/dshills/inkwell/internal/engine/subset"
)

// Data is the revision engine of one document. It holds the visible text,
// the tombstones (deleted text kept for undo) and the deletion subset over
// their union, together with the revision log.
//
// Data has a single writer. Only Revision may be called concurrently with
// a mutation; snapshots may be used from any goroutine.
type Data struct {
	text             rope.Rope
	tombstones       rope.Rope
	deletesFromUnion subset.Subset

	log *history.Log

	revCounter uint64
	atomicRev  atomic.Uint64

	lines     lineCache
	lastInval InvalLines

	tabWidth      int
	maxUndoGroups int
}

// NewData creates an empty document.
func NewData(opts ...Option) *Data {
	return NewDataFromString("", opts...)
}

// NewDataFromString creates a document holding text.
func NewDataFromString(text string, opts ...Option) *Data {
	d := &Data{tabWidth: DefaultTabWidth}
	for _, opt := range opts {
		opt(d)
	}
	d.log = history.NewLog(d.maxUndoGroups)
	d.LoadContent(text)
	return d
}

// LoadContent replaces the content with text and discards all history. The
// log restarts from a single base revision.
func (d *Data) LoadContent(text string) {
	d.text = rope.FromString(text)
	d.tombstones = rope.New()
	d.deletesFromUnion = subset.New(d.text.Len())
	d.bumpRevision()
	d.log.Reset(d.revCounter)
	d.lines.rescan(d.text)
	d.lastInval = InvalLines{StartLine: 0, InvalCount: d.lines.numLines, NewCount: d.lines.numLines}
}

func (d *Data) bumpRevision() {
	d.revCounter++
	d.atomicRev.Store(d.revCounter)
}

// Revision returns the current revision number. It is safe to call from
// any goroutine.
func (d *Data) Revision() uint64 {
	return d.atomicRev.Load()
}

// Rope returns the visible text.
func (d *Data) Rope() rope.Rope {
	return d.text
}

// Tombstones returns the deleted text kept for undo.
func (d *Data) Tombstones() rope.Rope {
	return d.tombstones
}

// DeletesFromUnion returns the deletion subset over the union space.
func (d *Data) DeletesFromUnion() subset.Subset {
	return d.deletesFromUnion
}

// Log returns the revision log. Callers must not mutate it.
func (d *Data) Log() *history.Log {
	return d.log
}

// Text returns the full visible text.
func (d *Data) Text() string {
	return d.text.String()
}

// Len returns the length of the visible text in bytes.
func (d *Data) Len() int {
	return d.text.Len()
}

// NumLines returns the cached line count.
func (d *Data) NumLines() int {
	return d.lines.numLines
}

// MaxLineLen returns the cached length of the longest line.
func (d *Data) MaxLineLen() int {
	return d.lines.maxLen
}

// MaxLenLine returns the cached index of the longest line.
func (d *Data) MaxLenLine() int {
	return d.lines.maxLine
}

// LastInvalLines returns the line range invalidated by the last change.
func (d *Data) LastInvalLines() InvalLines {
	return d.lastInval
}

// LineOfOffset returns the line containing offset, clamped.
func (d *Data) LineOfOffset(offset int) int {
	return d.text.LineOfOffset(offset)
}

// OffsetOfLine returns the offset where line starts, clamped.
func (d *Data) OffsetOfLine(line int) int {
	return d.text.OffsetOfLine(line)
}

// State reports whether any undone group can be redone.
func (d *Data) State() history.State {
	return d.log.State()
}

// CanUndo reports whether Undo would change anything.
func (d *Data) CanUndo() bool {
	return d.log.CanUndo()
}

// CanRedo reports whether Redo would change anything.
func (d *Data) CanRedo() bool {
	return d.log.CanRedo()
}

// BreakUndoGroup makes the next edit start a new undo group.
func (d *Data) BreakUndoGroup() {
	d.log.BreakUndoGroup()
}

// TabWidth returns the tab width used for display columns.
func (d *Data) TabWidth() int {
	return d.tabWidth
}

// Snapshot returns an immutable view of the current content.
func (d *Data) Snapshot() *Snapshot {
	return &Snapshot{
		text:       d.text,
		revision:   d.revCounter,
		tabWidth:   d.tabWidth,
		numLines:   d.lines.numLines,
		maxLineLen: d.lines.maxLen,
	}
}

// ContentAtRevision returns the visible text as it was right after the
// revision numbered num.
func (d *Data) ContentAtRevision(num uint64) (string, error) {
	ix, ok := d.log.IndexOf(num)
	if !ok {
		return "", fmt.Errorf("revision %d: %w", num, ErrRevisionNotFound)
	}
	old := d.log.DeletesFromCurUnionForIndex(d.deletesFromUnion, ix)
	return delta.Synthesize(d.tombstones, d.deletesFromUnion, old).Apply(d.text).String(), nil
}
