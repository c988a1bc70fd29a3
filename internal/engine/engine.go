package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/delta"
	"github.com/dshills/inkwell/internal/engine/find"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/tracking"
)

// Re-export commonly used types for convenience.
type (
	// Edit replaces every region of a selection with text.
	Edit = buffer.Edit

	// Snapshot is a read-only view of the document at one revision.
	Snapshot = buffer.Snapshot

	// Point is a line and byte column.
	Point = buffer.Point

	// EditType classifies an edit for undo grouping.
	EditType = history.EditType

	// SnapshotID identifies a named snapshot.
	SnapshotID = tracking.SnapshotID

	// Change is a tracked change.
	Change = tracking.Change

	// DiffResult contains the result of a diff operation.
	DiffResult = tracking.DiffResult

	// DiffOptions configures diff computation.
	DiffOptions = tracking.DiffOptions
)

// Engine is the editable document: the revision engine, the selection,
// the active search and the change tracker behind one lock.
//
// All operations are thread-safe. Edits are serialized; reads may run
// concurrently with each other.
type Engine struct {
	mu sync.RWMutex

	id        uuid.UUID
	data      *buffer.Data
	selection *cursor.Selection
	find      *find.Find
	tracker   *tracking.Tracker

	listener Listener
	logger   Logger

	tabWidth       int
	maxUndoGroups  int
	maxChanges     int
	maxRevisions   int
	readOnly       bool
	wordSeparators string

	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:           uuid.New(),
		listener:     NopListener,
		logger:       nopLogger{},
		tabWidth:     DefaultTabWidth,
		maxChanges:   DefaultMaxChanges,
		maxRevisions: DefaultMaxRevisions,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.data = buffer.NewDataFromString(e.initContent,
		buffer.WithTabWidth(e.tabWidth),
		buffer.WithMaxUndoGroups(e.maxUndoGroups),
	)
	e.initContent = ""
	e.selection = cursor.NewCaretSelection(0)
	e.find = find.New()
	e.tracker = tracking.NewTracker(e.data.Snapshot(),
		tracking.WithMaxChanges(e.maxChanges),
		tracking.WithMaxRevisions(e.maxRevisions),
	)
	return e
}

// NewFromReader creates an Engine holding everything read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return New(append(opts, WithContent(string(b)))...), nil
}

// ID returns the engine's document id.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// SetListener replaces the listener. A nil listener restores the no-op
// default.
func (e *Engine) SetListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l == nil {
		l = NopListener
	}
	e.listener = l
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full document content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.Text()
}

// Slice returns the text in [start, end), clamped.
func (e *Engine) Slice(start, end int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.Snapshot().Slice(start, end)
}

// Len returns the document length in bytes.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.Len()
}

// NumLines returns the number of lines.
func (e *Engine) NumLines() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.NumLines()
}

// MaxLineLen returns the byte length of the longest line.
func (e *Engine) MaxLineLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.MaxLineLen()
}

// LineOfOffset returns the line containing offset, clamped.
func (e *Engine) LineOfOffset(offset int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.LineOfOffset(offset)
}

// OffsetOfLine returns the offset where line starts, clamped.
func (e *Engine) OffsetOfLine(line int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.OffsetOfLine(line)
}

// OffsetToPoint converts a byte offset to a line and column.
func (e *Engine) OffsetToPoint(offset int) Point {
	return e.Snapshot().OffsetToPoint(offset)
}

// Revision returns the current revision number without taking the lock.
func (e *Engine) Revision() uint64 {
	return e.data.Revision()
}

// Snapshot returns an immutable view of the current content.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.Snapshot()
}

// LastInvalLines returns the lines replaced by the last change.
func (e *Engine) LastInvalLines() buffer.InvalLines {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.LastInvalLines()
}

// ContentAtRevision returns the text right after revision num.
func (e *Engine) ContentAtRevision(num uint64) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.ContentAtRevision(num)
}

// IsReadOnly reports whether edits are refused.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

// SetReadOnly switches read-only mode.
func (e *Engine) SetReadOnly(readOnly bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.readOnly = readOnly
}

// ============================================================================
// Write Operations
// ============================================================================

// LoadContent replaces the document with text and discards its history.
// The selection collapses to the start and tracked changes are dropped.
// The listener is notified but cannot refuse.
func (e *Engine) LoadContent(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	oldLen := e.data.Len()
	e.data.LoadContent(text)
	snap := e.data.Snapshot()
	d := delta.Simple(0, oldLen, text, oldLen)

	e.selection = cursor.NewCaretSelection(0)
	e.find.UpdateHighlights(snap, d)
	e.tracker.Reset(snap)
	e.logger.Debug("doc %s: loaded %d bytes at revision %d", e.id, len(text), snap.Revision())
	e.listener.OnEditApplied(snap, d)
}

// EditMultiple applies all edits as one change in one undo group and
// returns the delta against the previous text. The selection, search
// occurrences and tracker follow the change.
func (e *Engine) EditMultiple(edits []Edit, editType EditType) (*delta.Delta, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editLocked(edits, editType)
}

// EditSelection replaces every region of the current selection with text.
// The selection is read under the same lock as the edit.
func (e *Engine) EditSelection(text string, editType EditType) (*delta.Delta, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editLocked([]Edit{{Selection: e.selection.Clone(), Text: text}}, editType)
}

func (e *Engine) editLocked(edits []Edit, editType EditType) (*delta.Delta, error) {
	if e.readOnly {
		return nil, ErrReadOnly
	}
	p, err := e.data.PrepareEdit(edits, editType)
	if err != nil {
		return nil, fmt.Errorf("edit: %w", err)
	}
	if !e.commitLocked(p, "edit") {
		return nil, ErrEditRejected
	}
	return p.Delta(), nil
}

// Undo reverts the newest undo group and returns the delta against the
// previous text. It returns nil when there is nothing to undo, the engine
// is read-only or the listener refuses.
func (e *Engine) Undo() *delta.Delta {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return nil
	}
	p, ok := e.data.PrepareUndo()
	if !ok || !e.commitLocked(p, "undo") {
		return nil
	}
	return p.Delta()
}

// Redo reapplies the oldest undone group and returns the delta against the
// previous text, or nil like Undo.
func (e *Engine) Redo() *delta.Delta {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return nil
	}
	p, ok := e.data.PrepareRedo()
	if !ok || !e.commitLocked(p, "redo") {
		return nil
	}
	return p.Delta()
}

// commitLocked asks the listener, commits p and updates everything that
// follows the text. It reports false when the listener refused.
func (e *Engine) commitLocked(p *buffer.Pending, op string) bool {
	if !e.listener.ShouldApplyEdit() {
		e.logger.Debug("doc %s: %s rejected by listener", e.id, op)
		return false
	}
	if err := e.data.Commit(p); err != nil {
		// p was prepared under the same lock, so it cannot be stale.
		e.logger.Warn("doc %s: %s: %v", e.id, op, err)
		return false
	}

	d := p.Delta()
	snap := e.data.Snapshot()
	e.selection = e.selection.ApplyDelta(d, true, cursor.DriftDefault)
	e.find.UpdateHighlights(snap, d)
	e.tracker.OnEditApplied(snap, d)
	e.logger.Debug("doc %s: %s %s committed at revision %d", e.id, op, p.EditType(), snap.Revision())
	e.listener.OnEditApplied(snap, d)
	return true
}

// CanUndo reports whether Undo would change anything.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.CanUndo()
}

// CanRedo reports whether Redo would change anything.
func (e *Engine) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.CanRedo()
}

// State reports whether undone groups are waiting to be redone.
func (e *Engine) State() history.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.State()
}

// BreakUndoGroup makes the next edit start a new undo group.
func (e *Engine) BreakUndoGroup() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data.BreakUndoGroup()
}

// ============================================================================
// Tracking Operations
// ============================================================================

// Tracker returns the change tracker.
func (e *Engine) Tracker() *tracking.Tracker {
	return e.tracker
}

// CreateSnapshot saves the current state under name.
func (e *Engine) CreateSnapshot(name string) SnapshotID {
	return e.tracker.CreateSnapshot(name)
}

// ChangesSince returns the changes committed after revision rev.
func (e *Engine) ChangesSince(rev uint64) []Change {
	return e.tracker.ChangesSince(rev)
}

// DiffSinceSnapshot diffs a snapshot against the current content.
func (e *Engine) DiffSinceSnapshot(id SnapshotID, opts DiffOptions) (DiffResult, error) {
	return e.tracker.DiffSinceSnapshot(id, opts)
}
