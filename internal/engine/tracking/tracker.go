package tracking

import (
	"fmt"
	"sync"

	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/delta"
)

// DefaultMaxChanges is the default maximum number of changes to track.
const DefaultMaxChanges = 10000

// DefaultMaxRevisions is the default maximum number of revisions to store.
const DefaultMaxRevisions = 100

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithMaxChanges sets the maximum number of changes to track. It is only
// meaningful when passed to NewTracker.
func WithMaxChanges(maxChanges int) TrackerOption {
	return func(t *Tracker) {
		if maxChanges > 0 {
			t.maxChanges = maxChanges
		}
	}
}

// WithMaxRevisions sets the maximum number of revisions to store.
func WithMaxRevisions(maxRevisions int) TrackerOption {
	return func(t *Tracker) {
		t.revisions = newRevisionStore(maxRevisions)
	}
}

// trackedChange pairs a change with its revision for internal storage.
type trackedChange struct {
	revision uint64
	change   Change
}

// Tracker records the changes committed to one document. It keeps a
// bounded history of changes and recent revisions, and supports named
// snapshots.
//
// A Tracker observes a document through OnEditApplied, which matches the
// engine's listener callback. All operations are thread-safe.
type Tracker struct {
	mu sync.RWMutex

	changes    []trackedChange
	head       int
	count      int
	maxChanges int

	current   *buffer.Snapshot
	revisions *revisionStore
	snapshots *SnapshotManager
}

// NewTracker creates a tracker positioned at snap.
func NewTracker(snap *buffer.Snapshot, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		maxChanges: DefaultMaxChanges,
		revisions:  newRevisionStore(DefaultMaxRevisions),
		snapshots:  NewSnapshotManager(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.changes = make([]trackedChange, t.maxChanges)
	t.current = snap
	t.revisions.Add(snap)
	return t
}

// ShouldApplyEdit always accepts; a Tracker only observes.
func (t *Tracker) ShouldApplyEdit() bool {
	return true
}

// OnEditApplied records d, the edit that produced snap from the current
// state.
func (t *Tracker) OnEditApplied(snap *buffer.Snapshot, d *delta.Delta) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if d.BaseLen() != t.current.Len() {
		// The document was replaced wholesale; start over from snap.
		t.resetLocked(snap)
		return
	}
	for _, c := range ChangesFromDelta(t.current, d, snap.Revision()) {
		t.recordChangeLocked(c)
	}
	t.current = snap
	t.revisions.Add(snap)
}

// Reset discards the change history and revisions and positions the
// tracker at snap. Named snapshots are kept.
func (t *Tracker) Reset(snap *buffer.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked(snap)
}

func (t *Tracker) resetLocked(snap *buffer.Snapshot) {
	t.head, t.count = 0, 0
	t.revisions.Clear()
	t.current = snap
	t.revisions.Add(snap)
}

func (t *Tracker) recordChangeLocked(c Change) {
	idx := (t.head + t.count) % t.maxChanges
	if t.count < t.maxChanges {
		t.count++
	} else {
		t.head = (t.head + 1) % t.maxChanges
	}
	t.changes[idx] = trackedChange{revision: c.Revision, change: c}
}

// Current returns the latest observed document state.
func (t *Tracker) Current() *buffer.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// ChangesSince returns all changes after revision rev, oldest first.
func (t *Tracker) ChangesSince(rev uint64) []Change {
	return t.ChangesBetween(rev, ^uint64(0))
}

// ChangesBetween returns changes with start < revision <= end.
func (t *Tracker) ChangesBetween(start, end uint64) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []Change
	for i := range t.count {
		tc := t.changes[(t.head+i)%t.maxChanges]
		if tc.revision > start && tc.revision <= end {
			result = append(result, tc.change)
		}
	}
	return result
}

// LatestChanges returns the most recent n changes, oldest first.
func (t *Tracker) LatestChanges(n int) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(max(n, 0), t.count)
	result := make([]Change, n)
	for i := range n {
		idx := (t.head + t.count - n + i) % t.maxChanges
		result[i] = t.changes[idx].change
	}
	return result
}

// ChangeCount returns the number of tracked changes.
func (t *Tracker) ChangeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// BuildChangeSet collects the changes after revision since.
func (t *Tracker) BuildChangeSet(since uint64) *ChangeSet {
	cs := NewChangeSet(since)
	for _, c := range t.ChangesSince(since) {
		cs.Add(c)
	}
	return cs
}

// Revision returns the stored state at revision num.
func (t *Tracker) Revision(num uint64) (*Revision, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rev, ok := t.revisions.Get(num)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrRevisionNotFound, num)
	}
	return rev, nil
}

// RevisionCount returns the number of stored revisions.
func (t *Tracker) RevisionCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.revisions.Len()
}

// CreateSnapshot saves the current state under name.
func (t *Tracker) CreateSnapshot(name string) SnapshotID {
	return t.snapshots.Create(name, t.Current())
}

// GetSnapshot retrieves a snapshot by ID.
func (t *Tracker) GetSnapshot(id SnapshotID) (*NamedSnapshot, error) {
	ns, ok := t.snapshots.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotNotFound, id)
	}
	return ns, nil
}

// GetSnapshotByName retrieves a snapshot by name.
func (t *Tracker) GetSnapshotByName(name string) (*NamedSnapshot, error) {
	ns, ok := t.snapshots.GetByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSnapshotNotFound, name)
	}
	return ns, nil
}

// DeleteSnapshot removes a snapshot.
func (t *Tracker) DeleteSnapshot(id SnapshotID) {
	t.snapshots.Delete(id)
}

// Snapshots returns the snapshot manager.
func (t *Tracker) Snapshots() *SnapshotManager {
	return t.snapshots
}

// DiffSinceSnapshot diffs the snapshot against the current state.
func (t *Tracker) DiffSinceSnapshot(id SnapshotID, opts DiffOptions) (DiffResult, error) {
	ns, err := t.GetSnapshot(id)
	if err != nil {
		return DiffResult{}, err
	}
	return Diff(ns.Text(), t.Current().Text(), opts), nil
}

// DiffBetweenSnapshots diffs two snapshots.
func (t *Tracker) DiffBetweenSnapshots(from, to SnapshotID, opts DiffOptions) (DiffResult, error) {
	a, err := t.GetSnapshot(from)
	if err != nil {
		return DiffResult{}, err
	}
	b, err := t.GetSnapshot(to)
	if err != nil {
		return DiffResult{}, err
	}
	return Diff(a.Text(), b.Text(), opts), nil
}

// ChangesSinceSnapshot returns the changes recorded after the snapshot
// was taken.
func (t *Tracker) ChangesSinceSnapshot(id SnapshotID) ([]Change, error) {
	ns, err := t.GetSnapshot(id)
	if err != nil {
		return nil, err
	}
	return t.ChangesSince(ns.Revision()), nil
}

// Clear drops all changes, revisions and snapshots, keeping the current
// state.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.resetLocked(t.current)
	t.mu.Unlock()
	t.snapshots.Clear()
}
