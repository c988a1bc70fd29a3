package history

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEditType is returned when parsing an unrecognized edit type.
var ErrUnknownEditType = errors.New("unknown edit type")

// EditType classifies an edit for undo grouping.
type EditType int

const (
	// EditOther is any edit without a more specific kind. It always starts
	// a new undo group.
	EditOther EditType = iota
	EditInsertChars
	EditInsertNewline
	EditDelete
	EditDeleteSelection
	EditDeleteWordBackward
	EditDeleteWordForward
	EditDeleteToBeginningOfLine
	EditDeleteToEndOfLine
	EditCut
	EditPaste
	EditIndent
	EditOutdent
	EditCompletion
	EditMotionDelete
	EditUndo
	EditRedo
)

var editTypeNames = [...]string{
	EditOther:                   "other",
	EditInsertChars:             "insert_chars",
	EditInsertNewline:           "insert_newline",
	EditDelete:                  "delete",
	EditDeleteSelection:         "delete_selection",
	EditDeleteWordBackward:      "delete_word_backward",
	EditDeleteWordForward:       "delete_word_forward",
	EditDeleteToBeginningOfLine: "delete_to_beginning_of_line",
	EditDeleteToEndOfLine:       "delete_to_end_of_line",
	EditCut:                     "cut",
	EditPaste:                   "paste",
	EditIndent:                  "indent",
	EditOutdent:                 "outdent",
	EditCompletion:              "completion",
	EditMotionDelete:            "motion_delete",
	EditUndo:                    "undo",
	EditRedo:                    "redo",
}

// String returns the snake_case name of the edit type.
func (e EditType) String() string {
	if e < 0 || int(e) >= len(editTypeNames) {
		return fmt.Sprintf("EditType(%d)", int(e))
	}
	return editTypeNames[e]
}

// ParseEditType parses a name produced by String. Matching ignores case
// and accepts '-' in place of '_'.
func ParseEditType(s string) (EditType, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, n := range editTypeNames {
		if n == name {
			return EditType(i), nil
		}
	}
	return EditOther, fmt.Errorf("%w: %q", ErrUnknownEditType, s)
}

// BreaksUndoGroup reports whether an edit of type e must start a new undo
// group when the previous edit was of type previous. Only runs of
// character insertions and runs of character deletions coalesce.
func (e EditType) BreaksUndoGroup(previous EditType) bool {
	coalesces := e == EditInsertChars || e == EditDelete
	return !(coalesces && e == previous)
}
