package history

import "github.com/dshills/inkwell/internal/engine/subset"

// State describes where the log stands relative to its live undo stack.
type State int

const (
	// StateClean means nothing is available to redo.
	StateClean State = iota
	// StatePartiallyUndone means at least one group can be redone.
	StatePartiallyUndone
)

// String returns the state name.
func (s State) String() string {
	if s == StatePartiallyUndone {
		return "partially-undone"
	}
	return "clean"
}

// Log is the append-only revision log plus undo bookkeeping.
type Log struct {
	revs []Revision

	undoGroupID  int
	liveUndos    []int
	curUndo      int
	undone       GroupSet
	lastEditType EditType
	forceBreak   bool

	// maxGroups bounds the groups reachable by undo; 0 means unbounded.
	maxGroups int
}

// NewLog returns a log holding only the base revision.
func NewLog(maxGroups int) *Log {
	l := &Log{maxGroups: maxGroups}
	l.Reset(0)
	return l
}

// Reset discards all history and starts again from a single base revision
// numbered base with nothing toggled.
func (l *Log) Reset(base uint64) {
	l.revs = []Revision{{
		Num:          base,
		MaxUndoSoFar: 0,
		Edit:         UndoContents{ToggledGroups: NewGroupSet(), DeletesBitxor: subset.New(0)},
	}}
	l.undoGroupID = 1
	l.liveUndos = []int{0}
	l.curUndo = 1
	l.undone = NewGroupSet()
	l.lastEditType = EditOther
	l.forceBreak = false
}

// Revisions returns the log entries. The slice must not be modified.
func (l *Log) Revisions() []Revision {
	return l.revs
}

// Head returns the most recent revision.
func (l *Log) Head() Revision {
	return l.revs[len(l.revs)-1]
}

// LiveUndos returns a copy of the live undo stack.
func (l *Log) LiveUndos() []int {
	return append([]int(nil), l.liveUndos...)
}

// CurUndo returns the position in the live undo stack; groups before it
// are applied, groups from it on are undone.
func (l *Log) CurUndo() int {
	return l.curUndo
}

// Undone returns a copy of the set of undone groups.
func (l *Log) Undone() GroupSet {
	return l.undone.Clone()
}

// IsUndone reports whether group is currently undone.
func (l *Log) IsUndone(group int) bool {
	return l.undone.Contains(group)
}

// LastEditType returns the type of the last committed change.
func (l *Log) LastEditType() EditType {
	return l.lastEditType
}

// State reports whether a redo is available.
func (l *Log) State() State {
	if l.curUndo < len(l.liveUndos) {
		return StatePartiallyUndone
	}
	return StateClean
}

// CanUndo reports whether PlanUndo would succeed.
func (l *Log) CanUndo() bool {
	return l.curUndo > 1
}

// CanRedo reports whether PlanRedo would succeed.
func (l *Log) CanRedo() bool {
	return l.curUndo < len(l.liveUndos)
}

// BreakUndoGroup forces the next edit into a new undo group.
func (l *Log) BreakUndoGroup() {
	l.forceBreak = true
}

// Step is a planned change to the bookkeeping. Nothing changes until the
// step is committed, so a planned step may be dropped.
type Step struct {
	// EditType is the type recorded as the last edit type on commit.
	EditType EditType

	// Group is the undo group of an edit step.
	Group int

	// Undone is the undone set an undo or redo step moves to.
	Undone GroupSet

	kind     stepKind
	newGroup bool
	curUndo  int
}

type stepKind uint8

const (
	stepEdit stepKind = iota
	stepUndo
)

// PlanEdit chooses the undo group for an edit of type editType. The edit
// joins the newest live group when its type does not break grouping with
// the previous edit; otherwise it opens a new group.
func (l *Log) PlanEdit(editType EditType) Step {
	step := Step{EditType: editType, kind: stepEdit}
	if len(l.liveUndos) > 0 && !l.forceBreak && !editType.BreaksUndoGroup(l.lastEditType) {
		step.Group = l.liveUndos[len(l.liveUndos)-1]
		return step
	}
	step.Group = l.undoGroupID
	step.newGroup = true
	return step
}

// CalculateUndoGroup plans an edit and applies its group bookkeeping at
// once, returning the group.
func (l *Log) CalculateUndoGroup(editType EditType) int {
	step := l.PlanEdit(editType)
	l.applyStep(step)
	return step.Group
}

// PlanUndo plans undoing the newest applied group.
func (l *Log) PlanUndo() (Step, bool) {
	if !l.CanUndo() {
		return Step{}, false
	}
	cur := l.curUndo - 1
	return Step{
		EditType: EditUndo,
		Undone:   l.undone.With(l.liveUndos[cur]),
		kind:     stepUndo,
		curUndo:  cur,
	}, true
}

// PlanRedo plans redoing the oldest undone live group.
func (l *Log) PlanRedo() (Step, bool) {
	if !l.CanRedo() {
		return Step{}, false
	}
	return Step{
		EditType: EditRedo,
		Undone:   l.undone.Without(l.liveUndos[l.curUndo]),
		kind:     stepUndo,
		curUndo:  l.curUndo + 1,
	}, true
}

// Commit applies a planned step and appends its revision.
func (l *Log) Commit(step Step, rev Revision) {
	l.applyStep(step)
	l.revs = append(l.revs, rev)
}

func (l *Log) applyStep(step Step) {
	l.lastEditType = step.EditType
	if step.kind == stepUndo {
		l.undone = step.Undone
		l.curUndo = step.curUndo
		return
	}
	if !step.newGroup {
		return
	}

	l.forceBreak = false
	l.liveUndos = append(l.liveUndos[:l.curUndo], step.Group)
	l.curUndo++
	l.undoGroupID = step.Group + 1

	if l.maxGroups > 0 && len(l.liveUndos)-1 > l.maxGroups {
		excess := len(l.liveUndos) - 1 - l.maxGroups
		l.liveUndos = append(l.liveUndos[:1], l.liveUndos[1+excess:]...)
		l.curUndo -= excess
	}
}

// FirstUndoCandidateIndex returns the index of the earliest revision that
// toggling groups could affect: the one after the newest revision whose
// MaxUndoSoFar is below every toggled group.
func (l *Log) FirstUndoCandidateIndex(toggled GroupSet) int {
	lowest, ok := toggled.Min()
	if !ok {
		return len(l.revs)
	}
	for i := len(l.revs) - 1; i >= 0; i-- {
		if l.revs[i].MaxUndoSoFar < lowest {
			return i + 1
		}
	}
	return 0
}

// DeletesFromUnionBeforeIndex walks the log backwards from the present,
// starting at the current deletion subset cur, and returns the deletion
// subset as it was before revision revIndex, in the union space of that
// time. With invertUndos the effect of undo revisions is reverted as well;
// without it, the current undone set is assumed to have held throughout.
func (l *Log) DeletesFromUnionBeforeIndex(cur subset.Subset, revIndex int, invertUndos bool) subset.Subset {
	deletes := cur
	undone := l.undone
	for i := len(l.revs) - 1; i >= revIndex; i-- {
		switch c := l.revs[i].Edit.(type) {
		case EditContents:
			if undone.Contains(c.UndoGroup) {
				deletes = deletes.TransformShrink(c.Inserts)
			} else {
				deletes = deletes.Subtract(c.Deletes).TransformShrink(c.Inserts)
			}
		case UndoContents:
			if invertUndos {
				undone = undone.SymmetricDifference(c.ToggledGroups)
				deletes = deletes.Bitxor(c.DeletesBitxor)
			}
		}
	}
	return deletes
}

// DeletesFromCurUnionForIndex returns the deletion subset of the document
// as it was right after revision revIndex, expressed in the current union
// space. Positions inserted later count as deleted.
func (l *Log) DeletesFromCurUnionForIndex(cur subset.Subset, revIndex int) subset.Subset {
	deletes := l.DeletesFromUnionBeforeIndex(cur, revIndex+1, true)
	for _, rev := range l.revs[revIndex+1:] {
		if c, ok := rev.Edit.(EditContents); ok && !c.Inserts.IsEmpty() {
			deletes = deletes.TransformUnion(c.Inserts)
		}
	}
	return deletes
}

// ComputeUndo computes the deletion subset that results from moving to
// the undone set groups, given the current deletion subset cur. It returns
// the undo revision payload and the new deletion subset.
func (l *Log) ComputeUndo(groups GroupSet, cur subset.Subset) (UndoContents, subset.Subset) {
	toggled := l.undone.SymmetricDifference(groups)
	first := l.FirstUndoCandidateIndex(toggled)
	deletes := l.DeletesFromUnionBeforeIndex(cur, first, false)

	for _, rev := range l.revs[first:] {
		c, ok := rev.Edit.(EditContents)
		if !ok {
			continue
		}
		if groups.Contains(c.UndoGroup) {
			if !c.Inserts.IsEmpty() {
				deletes = deletes.TransformUnion(c.Inserts)
			}
			continue
		}
		if !c.Inserts.IsEmpty() {
			deletes = deletes.TransformExpand(c.Inserts)
		}
		if !c.Deletes.IsEmpty() {
			deletes = deletes.Union(c.Deletes)
		}
	}

	return UndoContents{ToggledGroups: toggled, DeletesBitxor: cur.Bitxor(deletes)}, deletes
}

// IndexOf returns the log index of the revision with number num.
func (l *Log) IndexOf(num uint64) (int, bool) {
	for i := len(l.revs) - 1; i >= 0; i-- {
		if l.revs[i].Num == num {
			return i, true
		}
	}
	return 0, false
}
