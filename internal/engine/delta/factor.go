package delta

import (
	"github.com/dshills/inkwell/internal/engine/rope"
	"github.com/dshills/inkwell/internal/engine/subset"
)

// InsertDelta is a delta that only inserts: its copy elements cover the
// whole base document, in order.
type InsertDelta struct {
	Delta
}

// Factor splits d into the insertions it makes and the subset of the base
// document it deletes. Applying the insertions and then removing the
// deleted positions, transformed past the insertions, is equivalent to
// applying d.
func (d *Delta) Factor() (*InsertDelta, subset.Subset) {
	var ins []Element
	var sb subset.Builder
	b1, e1 := 0, 0

	for _, el := range d.els {
		if el.Kind == KindCopy {
			sb.AddRange(e1, el.Start, 1)
			e1 = el.End
			continue
		}
		if e1 > b1 {
			ins = append(ins, Copy(b1, e1))
		}
		b1 = e1
		ins = append(ins, el)
	}
	if b1 < d.baseLen {
		ins = append(ins, Copy(b1, d.baseLen))
	}
	sb.AddRange(e1, d.baseLen, 1)
	sb.PadToLen(d.baseLen)

	return &InsertDelta{Delta{els: ins, baseLen: d.baseLen}}, sb.Build()
}

// Synthesize builds the delta that takes the document described by
// fromDels to the one described by toDels. Both subsets are over the same
// union space; tombstones holds the text of the positions fromDels
// deletes, in order.
func Synthesize(tombstones rope.Rope, fromDels, toDels subset.Subset) *Delta {
	baseLen := fromDels.LenAfterDelete()
	var els []Element
	x := 0
	oldRanges := fromDels.ComplementRanges()
	oi := 0
	m := fromDels.Mapper(subset.NonZero)

	for _, seg := range toDels.ComplementRanges() {
		beg, e := seg.Start, seg.End
		for beg < e {
			for oi < len(oldRanges) && oldRanges[oi].End <= beg {
				x += oldRanges[oi].End - oldRanges[oi].Start
				oi++
			}

			if oi < len(oldRanges) && oldRanges[oi].Start <= beg {
				ib, ie := oldRanges[oi].Start, oldRanges[oi].End
				end := min(e, ie)
				xbeg := beg + x - ib
				xend := end + x - ib
				if n := len(els); n > 0 && els[n-1].Kind == KindCopy && els[n-1].End == xbeg {
					els[n-1].End = xend
				} else {
					els = append(els, Copy(xbeg, xend))
				}
				beg = end
				continue
			}

			end := e
			if oi < len(oldRanges) {
				end = min(end, oldRanges[oi].Start)
			}
			els = append(els, Insert(tombstones.Subseq(m.DocIndexToSubset(beg), m.DocIndexToSubset(end))))
			beg = end
		}
	}

	return &Delta{els: els, baseLen: baseLen}
}

// InsertedSubset returns the positions of the new document that d
// inserted.
func (d *InsertDelta) InsertedSubset() subset.Subset {
	var sb subset.Builder
	for _, el := range d.els {
		if el.Kind == KindCopy {
			sb.PushSegment(el.End-el.Start, 0)
		} else {
			sb.PushSegment(el.Text.Len(), 1)
		}
	}
	return sb.Build()
}

// TransformExpand rebases d from the document with the xform positions
// removed onto the full xform space. Insertions next to positions marked
// by xform land after them when after is set, before them otherwise.
func (d *InsertDelta) TransformExpand(xform subset.Subset, after bool) *InsertDelta {
	visible := xform.ComplementRanges()
	l := xform.Len()
	visibleLen := xform.LenAfterDelete()

	toUnion := func(v int) int {
		if after {
			if v >= visibleLen {
				return l
			}
			acc := 0
			for _, rg := range visible {
				if v < acc+rg.End-rg.Start {
					return rg.Start + v - acc
				}
				acc += rg.End - rg.Start
			}
			return l
		}
		if v == 0 {
			return 0
		}
		acc := 0
		for _, rg := range visible {
			if v-1 < acc+rg.End-rg.Start {
				// Just past the last visible position before v.
				return rg.Start + v - acc
			}
			acc += rg.End - rg.Start
		}
		return l
	}

	var els []Element
	last, v := 0, 0
	for _, el := range d.els {
		if el.Kind == KindCopy {
			v = el.End
			continue
		}
		u := toUnion(v)
		if u > last {
			els = append(els, Copy(last, u))
			last = u
		}
		els = append(els, el)
	}
	if l > last {
		els = append(els, Copy(last, l))
	}
	return &InsertDelta{Delta{els: els, baseLen: l}}
}

// TransformShrink rebases d onto the document with the xform positions
// removed. Copies shrink to the positions xform leaves.
func (d *InsertDelta) TransformShrink(xform subset.Subset) *InsertDelta {
	m := xform.Mapper(subset.Zero)
	els := make([]Element, 0, len(d.els))
	for _, el := range d.els {
		if el.Kind == KindCopy {
			start := m.DocIndexToSubset(el.Start)
			end := m.DocIndexToSubset(el.End)
			if end > start {
				els = append(els, Copy(start, end))
			}
			continue
		}
		els = append(els, el)
	}
	return &InsertDelta{Delta{els: els, baseLen: xform.LenAfterDelete()}}
}
