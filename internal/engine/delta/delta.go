// Package delta describes edits to a document as a sequence of copy and
// insert elements over a base document.
//
// A Delta reads left to right: a copy element keeps a range of the base
// document, an insert element adds new text. Ranges of the base that no
// copy element covers are deleted. Deltas are immutable once built.
//
//	b := delta.NewBuilder(doc.Len())
//	b.Replace(3, 5, rope.FromString("xyz"))
//	d := b.Build()
//	doc = d.Apply(doc)
package delta

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/rope"
)

// Kind distinguishes delta elements.
type Kind uint8

const (
	// KindCopy keeps [Start, End) of the base document.
	KindCopy Kind = iota
	// KindInsert adds Text.
	KindInsert
)

// Element is one step of a delta.
type Element struct {
	Kind  Kind
	Start int
	End   int
	Text  rope.Rope
}

// Copy returns a copy element for [start, end).
func Copy(start, end int) Element {
	return Element{Kind: KindCopy, Start: start, End: end}
}

// Insert returns an insert element.
func Insert(text rope.Rope) Element {
	return Element{Kind: KindInsert, Text: text}
}

// Len returns the length the element contributes to the new document.
func (e Element) Len() int {
	if e.Kind == KindInsert {
		return e.Text.Len()
	}
	return e.End - e.Start
}

// Delta is an edit from a base document of BaseLen bytes to a new one.
type Delta struct {
	els     []Element
	baseLen int
}

// New returns a delta with the given elements.
func New(els []Element, baseLen int) *Delta {
	return &Delta{els: els, baseLen: baseLen}
}

// Simple returns a delta replacing [start, end) of a document of baseLen
// bytes with text.
func Simple(start, end int, text string, baseLen int) *Delta {
	b := NewBuilder(baseLen)
	b.Replace(start, end, rope.FromString(text))
	return b.Build()
}

// Elements returns the elements of the delta. The slice must not be
// modified.
func (d *Delta) Elements() []Element {
	return d.els
}

// BaseLen returns the length of the document the delta applies to.
func (d *Delta) BaseLen() int {
	return d.baseLen
}

// NewDocumentLen returns the length of the document after applying d.
func (d *Delta) NewDocumentLen() int {
	return totalLen(d.els)
}

// InsertsLen returns the total length of inserted text.
func (d *Delta) InsertsLen() int {
	n := 0
	for _, el := range d.els {
		if el.Kind == KindInsert {
			n += el.Text.Len()
		}
	}
	return n
}

// IsIdentity reports whether applying d leaves any document unchanged.
func (d *Delta) IsIdentity() bool {
	switch len(d.els) {
	case 0:
		return d.baseLen == 0
	case 1:
		el := d.els[0]
		return el.Kind == KindCopy && el.Start == 0 && el.End == d.baseLen
	default:
		return false
	}
}

// Apply returns the result of applying d to base.
func (d *Delta) Apply(base rope.Rope) rope.Rope {
	if base.Len() != d.baseLen {
		panic(fmt.Sprintf("delta: base length %d does not match delta base %d", base.Len(), d.baseLen))
	}
	var b rope.Builder
	for _, el := range d.els {
		if el.Kind == KindCopy {
			b.WriteRope(base.Subseq(el.Start, el.End))
		} else {
			b.WriteRope(el.Text)
		}
	}
	return b.Build()
}

// ApplyString is Apply for plain strings.
func (d *Delta) ApplyString(base string) string {
	return d.Apply(rope.FromString(base)).String()
}

// Interval is a half-open range [Start, End).
type Interval struct {
	Start, End int
}

// Len returns End - Start.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// Summary returns the range of the base document that d changes and the
// length of the text that replaces it.
func (d *Delta) Summary() (Interval, int) {
	els := d.els
	start := 0
	if len(els) > 0 && els[0].Kind == KindCopy && els[0].Start == 0 {
		start = els[0].End
		els = els[1:]
	}
	end := d.baseLen
	if n := len(els); n > 0 && els[n-1].Kind == KindCopy && els[n-1].End == d.baseLen {
		end = els[n-1].Start
		els = els[:n-1]
	}
	return Interval{Start: start, End: end}, totalLen(els)
}

func totalLen(els []Element) int {
	n := 0
	for _, el := range els {
		n += el.Len()
	}
	return n
}

// Builder accumulates sorted, non-overlapping replacements into a delta.
type Builder struct {
	els        []Element
	baseLen    int
	lastOffset int
}

// NewBuilder returns a builder for a base document of baseLen bytes.
func NewBuilder(baseLen int) *Builder {
	return &Builder{baseLen: baseLen}
}

// Delete removes [start, end). Calls must be sorted and must not overlap.
func (b *Builder) Delete(start, end int) {
	if start < b.lastOffset {
		panic(fmt.Sprintf("delta: intervals not properly sorted (%d < %d)", start, b.lastOffset))
	}
	if end < start || end > b.baseLen {
		panic(fmt.Sprintf("delta: invalid interval [%d, %d) for base length %d", start, end, b.baseLen))
	}
	if start > b.lastOffset {
		b.els = append(b.els, Copy(b.lastOffset, start))
	}
	b.lastOffset = end
}

// Replace removes [start, end) and inserts text in its place.
func (b *Builder) Replace(start, end int, text rope.Rope) {
	b.Delete(start, end)
	if !text.IsEmpty() {
		b.els = append(b.els, Insert(text))
	}
}

// IsEmpty reports whether nothing has been added yet.
func (b *Builder) IsEmpty() bool {
	return b.lastOffset == 0 && len(b.els) == 0
}

// Build returns the delta.
func (b *Builder) Build() *Delta {
	els := b.els
	if b.lastOffset < b.baseLen {
		els = append(els, Copy(b.lastOffset, b.baseLen))
	}
	return &Delta{els: els, baseLen: b.baseLen}
}
