// Package rope provides the immutable text storage used by the revision engine.
//
// A rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes cache a TextSummary (bytes, newlines, longest line) of their
// subtree. Every operation returns a new Rope that shares unchanged subtrees
// with its input, so holding on to an old Rope is a cheap snapshot.
//
// Offsets are byte offsets. Lines are 0-indexed and a line ends at, and does
// not include, its '\n'. Offset and line queries clamp to the valid range.
//
//	r := rope.FromString("hello\nworld")
//	r.LineOfOffset(7)  // 1
//	r.OffsetOfLine(1)  // 6
//	r = r.Replace(0, 5, "howdy")
//
// Ropes are safe for concurrent readers.
package rope
