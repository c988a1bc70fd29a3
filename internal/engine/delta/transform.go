package delta

import "strings"

// Transform maps an offset of the base document to the new document.
// When text is inserted exactly at ix, after selects whether the result
// lands after the inserted text.
func (d *Delta) Transform(ix int, after bool) int {
	if ix == 0 && !after {
		return 0
	}
	result := 0
	for _, el := range d.els {
		if el.Kind == KindInsert {
			result += el.Text.Len()
			continue
		}
		if ix <= el.Start {
			return result
		}
		if ix < el.End || (ix == el.End && !after) {
			return result + ix - el.Start
		}
		result += el.End - el.Start
	}
	return result
}

// Region locates one inserted or deleted span.
type Region struct {
	// OldOffset is the position in the base document.
	OldOffset int
	// NewOffset is the position in the new document.
	NewOffset int
	// Len is the length of the span.
	Len int
}

// Inserts returns the inserted spans in order.
func (d *Delta) Inserts() []Region {
	var out []Region
	oldPos, newPos := 0, 0
	for _, el := range d.els {
		if el.Kind == KindCopy {
			oldPos = el.End
			newPos += el.End - el.Start
			continue
		}
		out = append(out, Region{OldOffset: oldPos, NewOffset: newPos, Len: el.Text.Len()})
		newPos += el.Text.Len()
	}
	return out
}

// Deletions returns the deleted spans of the base document in order.
func (d *Delta) Deletions() []Region {
	var out []Region
	oldPos, newPos := 0, 0
	for _, el := range d.els {
		if el.Kind == KindInsert {
			newPos += el.Text.Len()
			continue
		}
		if el.Start > oldPos {
			out = append(out, Region{OldOffset: oldPos, NewOffset: newPos, Len: el.Start - oldPos})
		}
		oldPos = el.End
		newPos += el.End - el.Start
	}
	if oldPos < d.baseLen {
		out = append(out, Region{OldOffset: oldPos, NewOffset: newPos, Len: d.baseLen - oldPos})
	}
	return out
}

// Change is a replacement of [Start, End) of the base document with Text.
type Change struct {
	Start int
	End   int
	Text  string
}

// Changes returns d as a list of replacements against the base document,
// merging a deletion and an insertion at the same place into one change.
func (d *Delta) Changes() []Change {
	var out []Change
	var cur *Change
	pos := 0
	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}

	for _, el := range d.els {
		if el.Kind == KindInsert {
			if cur == nil {
				cur = &Change{Start: pos, End: pos}
			}
			var sb strings.Builder
			sb.WriteString(cur.Text)
			sb.WriteString(el.Text.String())
			cur.Text = sb.String()
			continue
		}
		if el.Start > pos {
			if cur == nil {
				cur = &Change{Start: pos}
			}
			cur.End = el.Start
		}
		flush()
		pos = el.End
	}
	if pos < d.baseLen {
		if cur == nil {
			cur = &Change{Start: pos}
		}
		cur.End = d.baseLen
	}
	flush()
	return out
}
