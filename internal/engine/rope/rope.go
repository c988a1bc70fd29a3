package rope

import "strings"

// Rope is an immutable sequence of text.
// The zero value is an empty rope.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope holding s.
func FromString(s string) Rope {
	chunks := splitIntoChunks(s)
	if len(chunks) == 0 {
		return Rope{}
	}

	leaves := make([]*node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		leaves = append(leaves, newLeaf(chunks[i:min(i+MaxChunksPerLeaf, len(chunks))]))
	}
	return Rope{root: buildBalanced(leaves)}
}

// Len returns the length in bytes.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.length()
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// LineCount returns the number of lines, which is one more than the number
// of newlines.
func (r Rope) LineCount() int {
	return r.Summary().Lines + 1
}

// Summary returns the aggregated metrics of the whole rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{}
	}
	return r.root.summary
}

// String returns the full text. Use sparingly on large ropes.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start, end = r.clamp(start), r.clamp(end)
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Subseq returns the rope covering [start, end), sharing structure with r.
func (r Rope) Subseq(start, end int) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return Rope{}
	}
	_, right := r.Split(start)
	left, _ := right.Split(end - start)
	return left
}

// Chunks calls fn for each stored piece of text in [start, end), in order,
// until fn returns false.
func (r Rope) Chunks(start, end int, fn func(string) bool) {
	start, end = r.clamp(start), r.clamp(end)
	if r.root == nil {
		return
	}
	r.root.forEachChunk(start, end, fn)
}

// ByteAt returns the byte at offset.
func (r Rope) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= r.Len() {
		return 0, false
	}
	var b byte
	r.Chunks(offset, offset+1, func(s string) bool {
		b = s[0]
		return false
	})
	return b, true
}

// Insert returns a rope with text inserted at offset.
func (r Rope) Insert(offset int, text string) Rope {
	return r.Replace(offset, offset, text)
}

// Delete returns a rope without the text in [start, end).
func (r Rope) Delete(start, end int) Rope {
	return r.Replace(start, end, "")
}

// Replace returns a rope with [start, end) replaced by text.
func (r Rope) Replace(start, end int, text string) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if end < start {
		end = start
	}
	if start == end && text == "" {
		return r
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(FromString(text)).Concat(right)
}

// Split returns the ropes covering [0, offset) and [offset, len).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil {
		return Rope{}, Rope{}
	}
	left, right := r.root.split(r.clamp(offset))
	return Rope{root: left}, Rope{root: right}
}

// Concat returns r followed by other.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: concatNodes(r.root, other.root)}
}

// LineOfOffset returns the line containing offset.
func (r Rope) LineOfOffset(offset int) int {
	if r.root == nil {
		return 0
	}
	return r.root.lineOfOffset(r.clamp(offset))
}

// OffsetOfLine returns the offset of the first byte of line. Lines past the
// end map to Len().
func (r Rope) OffsetOfLine(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line > r.root.summary.Lines {
		return r.Len()
	}
	return r.root.offsetOfLine(line)
}

// LineEndOffset returns the offset of the end of line, before its newline.
func (r Rope) LineEndOffset(line int) int {
	line = max(line, 0)
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.OffsetOfLine(line+1) - 1
}

// LineLen returns the byte length of line, newline excluded.
func (r Rope) LineLen(line int) int {
	return r.LineEndOffset(line) - r.OffsetOfLine(line)
}

// LineText returns the text of line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.OffsetOfLine(line), r.LineEndOffset(line))
}

// Equals reports whether both ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.String() == other.String()
}

// Height returns the height of the tree. Used by tests to check balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

func (r Rope) clamp(offset int) int {
	return min(max(offset, 0), r.Len())
}
