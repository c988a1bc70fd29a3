package tracking

import (
	"time"

	"github.com/dshills/inkwell/internal/engine/buffer"
)

// Revision is a stored document state.
type Revision struct {
	Timestamp time.Time
	*buffer.Snapshot
}

// revisionStore keeps the most recent revisions, evicting the oldest first.
type revisionStore struct {
	revisions  map[uint64]*Revision
	order      []uint64
	maxEntries int
}

func newRevisionStore(maxEntries int) *revisionStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxRevisions
	}
	return &revisionStore{
		revisions:  make(map[uint64]*Revision),
		maxEntries: maxEntries,
	}
}

// Add stores snap under its revision number.
func (rs *revisionStore) Add(snap *buffer.Snapshot) {
	num := snap.Revision()
	if _, ok := rs.revisions[num]; !ok {
		rs.order = append(rs.order, num)
	}
	rs.revisions[num] = &Revision{Timestamp: time.Now(), Snapshot: snap}

	for len(rs.order) > rs.maxEntries {
		delete(rs.revisions, rs.order[0])
		rs.order = rs.order[1:]
	}
}

func (rs *revisionStore) Get(num uint64) (*Revision, bool) {
	rev, ok := rs.revisions[num]
	return rev, ok
}

func (rs *revisionStore) Len() int {
	return len(rs.revisions)
}

func (rs *revisionStore) Clear() {
	rs.revisions = make(map[uint64]*Revision)
	rs.order = nil
}
