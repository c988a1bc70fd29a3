package history

import "github.com/dshills/inkwell/internal/engine/subset"

// Revision is one entry of the log.
type Revision struct {
	// Num is the buffer revision number the entry produced.
	Num uint64

	// MaxUndoSoFar is the highest undo group id of this or any earlier
	// edit.
	MaxUndoSoFar int

	// Edit is either EditContents or UndoContents.
	Edit Contents
}

// Contents is the payload of a revision: EditContents or UndoContents.
type Contents interface {
	isContents()
}

// EditContents records one committed edit.
type EditContents struct {
	UndoGroup int

	// Inserts marks the inserted positions in the union space after the
	// edit.
	Inserts subset.Subset

	// Deletes marks the deleted positions in the same space.
	Deletes subset.Subset
}

// UndoContents records one undo or redo transition.
type UndoContents struct {
	// ToggledGroups are the groups whose undone state flipped.
	ToggledGroups GroupSet

	// DeletesBitxor is the xor of the deletion subset before and after.
	DeletesBitxor subset.Subset
}

func (EditContents) isContents() {}
func (UndoContents) isContents() {}
