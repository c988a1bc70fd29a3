package tracking

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/inkwell/internal/engine/buffer"
)

// SnapshotID uniquely identifies a named snapshot.
type SnapshotID uint64

var snapshotIDCounter atomic.Uint64

// NewSnapshotID generates a new unique snapshot ID.
func NewSnapshotID() SnapshotID {
	return SnapshotID(snapshotIDCounter.Add(1))
}

// NamedSnapshot is a checkpoint of document state kept under a name.
type NamedSnapshot struct {
	ID        SnapshotID
	Name      string
	Timestamp time.Time

	*buffer.Snapshot
}

// SnapshotManager manages named snapshots.
// All operations are thread-safe.
type SnapshotManager struct {
	mu        sync.RWMutex
	snapshots map[SnapshotID]*NamedSnapshot
	byName    map[string]*NamedSnapshot
}

// NewSnapshotManager creates a new snapshot manager.
func NewSnapshotManager() *SnapshotManager {
	return &SnapshotManager{
		snapshots: make(map[SnapshotID]*NamedSnapshot),
		byName:    make(map[string]*NamedSnapshot),
	}
}

// Create stores snap under name. A snapshot with the same name is
// replaced. An empty name creates an anonymous snapshot reachable only by
// ID.
func (sm *SnapshotManager) Create(name string, snap *buffer.Snapshot) SnapshotID {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if existing, ok := sm.byName[name]; ok {
		delete(sm.snapshots, existing.ID)
	}

	ns := &NamedSnapshot{
		ID:        NewSnapshotID(),
		Name:      name,
		Timestamp: time.Now(),
		Snapshot:  snap,
	}
	sm.snapshots[ns.ID] = ns
	if name != "" {
		sm.byName[name] = ns
	}
	return ns.ID
}

// Get retrieves a snapshot by ID.
func (sm *SnapshotManager) Get(id SnapshotID) (*NamedSnapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	ns, ok := sm.snapshots[id]
	return ns, ok
}

// GetByName retrieves a snapshot by name.
func (sm *SnapshotManager) GetByName(name string) (*NamedSnapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	ns, ok := sm.byName[name]
	return ns, ok
}

// Delete removes a snapshot by ID.
func (sm *SnapshotManager) Delete(id SnapshotID) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if ns, ok := sm.snapshots[id]; ok {
		if ns.Name != "" {
			delete(sm.byName, ns.Name)
		}
		delete(sm.snapshots, id)
	}
}

// List returns all snapshots, oldest first.
func (sm *SnapshotManager) List() []*NamedSnapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sortedLocked()
}

func (sm *SnapshotManager) sortedLocked() []*NamedSnapshot {
	out := make([]*NamedSnapshot, 0, len(sm.snapshots))
	for _, ns := range sm.snapshots {
		out = append(out, ns)
	}
	// IDs are handed out in creation order, timestamps may tie.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of snapshots.
func (sm *SnapshotManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.snapshots)
}

// Clear removes all snapshots.
func (sm *SnapshotManager) Clear() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.snapshots = make(map[SnapshotID]*NamedSnapshot)
	sm.byName = make(map[string]*NamedSnapshot)
}

// PruneKeepN removes the oldest snapshots, keeping the n most recent, and
// returns how many were removed.
func (sm *SnapshotManager) PruneKeepN(n int) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	n = max(n, 0)
	all := sm.sortedLocked()
	if len(all) <= n {
		return 0
	}
	stale := all[:len(all)-n]
	for _, ns := range stale {
		if ns.Name != "" {
			delete(sm.byName, ns.Name)
		}
		delete(sm.snapshots, ns.ID)
	}
	return len(stale)
}
