package tracking

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/inkwell/internal/engine/buffer"
)

// DiffOptions configures diff computation.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines kept around each
	// change. Default is 3.
	ContextLines int

	// IgnoreCase performs case-insensitive comparison.
	IgnoreCase bool

	// IgnoreWhitespace ignores leading and trailing whitespace on each line.
	IgnoreWhitespace bool
}

// DefaultDiffOptions returns default diff options.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{ContextLines: 3}
}

// DiffType indicates the type of a diff hunk.
type DiffType uint8

const (
	// DiffEqual indicates unchanged lines.
	DiffEqual DiffType = iota

	// DiffInsert indicates a hunk that only adds lines.
	DiffInsert

	// DiffDelete indicates a hunk that only removes lines.
	DiffDelete

	// DiffReplace indicates a hunk that both adds and removes lines.
	DiffReplace
)

// String returns a human-readable representation of the diff type.
func (dt DiffType) String() string {
	switch dt {
	case DiffEqual:
		return "equal"
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	case DiffReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// LineDiff is one hunk of a line diff.
type LineDiff struct {
	Type DiffType

	// OldStart and NewStart are 0-based line numbers.
	OldStart int
	OldCount int
	NewStart int
	NewCount int

	// Lines holds the hunk body, each line prefixed with ' ', '-' or '+'.
	Lines []string
}

// IsEmpty reports whether the hunk has no lines.
func (ld LineDiff) IsEmpty() bool {
	return len(ld.Lines) == 0
}

// DiffResult contains the complete result of a diff operation.
type DiffResult struct {
	Hunks []LineDiff

	OldLineCount int
	NewLineCount int
}

// HasChanges reports whether there are any differences.
func (dr DiffResult) HasChanges() bool {
	for _, hunk := range dr.Hunks {
		if hunk.Type != DiffEqual {
			return true
		}
	}
	return false
}

// InsertedLines returns the total number of inserted lines.
func (dr DiffResult) InsertedLines() int {
	return dr.countPrefix('+')
}

// DeletedLines returns the total number of deleted lines.
func (dr DiffResult) DeletedLines() int {
	return dr.countPrefix('-')
}

func (dr DiffResult) countPrefix(p byte) int {
	count := 0
	for _, hunk := range dr.Hunks {
		for _, line := range hunk.Lines {
			if len(line) > 0 && line[0] == p {
				count++
			}
		}
	}
	return count
}

type lineOp struct {
	op       DiffType
	oldIndex int
	newIndex int
}

// Diff computes a line diff of oldText against newText.
func Diff(oldText, newText string, opts DiffOptions) DiffResult {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)
	result := DiffResult{
		OldLineCount: len(oldLines),
		NewLineCount: len(newLines),
	}
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(normalize(oldLines, opts), normalize(newLines, opts))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []lineOp
	oi, ni := 0, 0
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		for range n {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, lineOp{op: DiffEqual, oldIndex: oi, newIndex: ni})
				oi++
				ni++
			case diffmatchpatch.DiffDelete:
				ops = append(ops, lineOp{op: DiffDelete, oldIndex: oi, newIndex: ni})
				oi++
			case diffmatchpatch.DiffInsert:
				ops = append(ops, lineOp{op: DiffInsert, oldIndex: oi, newIndex: ni})
				ni++
			}
		}
	}

	result.Hunks = buildHunks(oldLines, newLines, ops, opts.ContextLines)
	return result
}

// splitLines splits text into lines without their terminators. A trailing
// newline does not start an extra line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// normalize joins lines for comparison, each terminated by a newline so
// the last line compares like the others.
func normalize(lines []string, opts DiffOptions) string {
	var sb strings.Builder
	for _, line := range lines {
		if opts.IgnoreWhitespace {
			line = strings.TrimSpace(line)
		}
		if opts.IgnoreCase {
			line = strings.ToLower(line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// buildHunks groups the changed lines of ops into hunks. Changes closer
// than twice the context share a hunk.
func buildHunks(oldLines, newLines []string, ops []lineOp, context int) []LineDiff {
	var hunks []LineDiff
	i := 0
	for i < len(ops) {
		if ops[i].op == DiffEqual {
			i++
			continue
		}

		start := max(i-context, 0)
		end := i
		for end < len(ops) {
			if ops[end].op != DiffEqual {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].op == DiffEqual {
				run++
			}
			if run == len(ops) || run-end > 2*context {
				end = min(end+context, len(ops))
				break
			}
			end = run
		}

		hunk := LineDiff{
			OldStart: ops[start].oldIndex,
			NewStart: ops[start].newIndex,
		}
		var inserts, deletes bool
		for _, op := range ops[start:end] {
			switch op.op {
			case DiffEqual:
				hunk.Lines = append(hunk.Lines, " "+oldLines[op.oldIndex])
				hunk.OldCount++
				hunk.NewCount++
			case DiffDelete:
				hunk.Lines = append(hunk.Lines, "-"+oldLines[op.oldIndex])
				hunk.OldCount++
				deletes = true
			case DiffInsert:
				hunk.Lines = append(hunk.Lines, "+"+newLines[op.newIndex])
				hunk.NewCount++
				inserts = true
			}
		}
		switch {
		case inserts && deletes:
			hunk.Type = DiffReplace
		case inserts:
			hunk.Type = DiffInsert
		default:
			hunk.Type = DiffDelete
		}
		hunks = append(hunks, hunk)
		i = end
	}
	return hunks
}

// UnifiedDiff returns the diff in unified diff format.
func UnifiedDiff(result DiffResult, oldName, newName string) string {
	if !result.HasChanges() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- " + oldName + "\n")
	sb.WriteString("+++ " + newName + "\n")

	for _, hunk := range result.Hunks {
		sb.WriteString("@@ -")
		sb.WriteString(hunkRange(hunk.OldStart, hunk.OldCount))
		sb.WriteString(" +")
		sb.WriteString(hunkRange(hunk.NewStart, hunk.NewCount))
		sb.WriteString(" @@\n")
		for _, line := range hunk.Lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// hunkRange formats a 0-based start and count the way unified diffs do:
// 1-based, and pointing at the preceding line when count is zero.
func hunkRange(start, count int) string {
	if count == 0 {
		return strconv.Itoa(start) + ",0"
	}
	return strconv.Itoa(start+1) + "," + strconv.Itoa(count)
}

// EditsFromDiff returns the edits that turn oldText into newText, as
// disjoint replacements sorted by offset and expressed in oldText's byte
// offsets. Texts that are not valid UTF-8 give at most one replacement
// spanning the bytes between the common prefix and suffix, since the
// diff works on runes and would miscount invalid bytes.
func EditsFromDiff(oldText, newText string) []buffer.Edit {
	if !utf8.ValidString(oldText) || !utf8.ValidString(newText) {
		return bytesEdit(oldText, newText)
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(oldText, newText, false))

	var edits []buffer.Edit
	pos := 0
	start, end := -1, 0
	var text strings.Builder
	flush := func() {
		if start >= 0 {
			edits = append(edits, buffer.NewReplace(start, end, text.String()))
			start = -1
			text.Reset()
		}
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			pos += len(d.Text)
		case diffmatchpatch.DiffDelete:
			if start < 0 {
				start, end = pos, pos
			}
			pos += len(d.Text)
			end = pos
		case diffmatchpatch.DiffInsert:
			if start < 0 {
				start, end = pos, pos
			}
			text.WriteString(d.Text)
		}
	}
	flush()
	return edits
}

// bytesEdit returns the single replacement covering the bytes where
// oldText and newText differ, or nil when they are equal.
func bytesEdit(oldText, newText string) []buffer.Edit {
	if oldText == newText {
		return nil
	}
	prefix := 0
	for prefix < len(oldText) && prefix < len(newText) && oldText[prefix] == newText[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldText)-prefix && suffix < len(newText)-prefix &&
		oldText[len(oldText)-1-suffix] == newText[len(newText)-1-suffix] {
		suffix++
	}
	return []buffer.Edit{
		buffer.NewReplace(prefix, len(oldText)-suffix, newText[prefix:len(newText)-suffix]),
	}
}
