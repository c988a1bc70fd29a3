package rope

import "strings"

// Builder accumulates text and ropes and produces a single rope.
// Pending strings are buffered; ropes are concatenated structurally.
type Builder struct {
	rope Rope
	buf  strings.Builder
}

// WriteString appends s.
func (b *Builder) WriteString(s string) {
	b.buf.WriteString(s)
	if b.buf.Len() >= MaxChunkSize*MaxChunksPerLeaf {
		b.flush()
	}
}

// WriteRope appends r without copying its text.
func (b *Builder) WriteRope(r Rope) {
	if r.IsEmpty() {
		return
	}
	b.flush()
	b.rope = b.rope.Concat(r)
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.rope.Len() + b.buf.Len()
}

// Build returns the accumulated rope and resets the builder.
func (b *Builder) Build() Rope {
	b.flush()
	r := b.rope
	b.rope = Rope{}
	return r
}

func (b *Builder) flush() {
	if b.buf.Len() == 0 {
		return
	}
	b.rope = b.rope.Concat(FromString(b.buf.String()))
	b.buf.Reset()
}
