package find

import (
	"errors"
	"testing"

	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/history"
)

const sample = "foo bar foo\nfoobar foo"

func regions(sel *cursor.Selection) [][2]int {
	var out [][2]int
	for _, r := range sel.Regions() {
		out = append(out, [2]int{r.Min(), r.Max()})
	}
	return out
}

func equalRanges(a, b [][2]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUpdateFind(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		opts    Options
		want    [][2]int
	}{
		{"literal", sample, "foo", Options{}, [][2]int{{0, 3}, {8, 11}, {12, 15}, {19, 22}}},
		{"whole words", sample, "foo", Options{WholeWords: true}, [][2]int{{0, 3}, {8, 11}, {19, 22}}},
		{"case insensitive", "Foo foo", "foo", Options{}, [][2]int{{0, 3}, {4, 7}}},
		{"case sensitive", "Foo foo", "foo", Options{CaseSensitive: true}, [][2]int{{4, 7}}},
		{"regex", sample, "b.r", Options{Regex: true}, [][2]int{{4, 7}, {15, 18}}},
		{"literal metacharacters", "axb a.b", "a.b", Options{}, [][2]int{{4, 7}}},
		{"line anchor", sample, "^foo", Options{Regex: true}, [][2]int{{0, 3}, {12, 15}}},
		{"empty matches skipped", "abc", "x*", Options{Regex: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := buffer.NewSnapshot(tt.text, 4)
			f := New()
			if err := f.Set(tt.pattern, tt.opts); err != nil {
				t.Fatalf("Set: %v", err)
			}
			f.UpdateFind(snap, 0, snap.Len())
			if got := regions(f.Occurrences()); !equalRanges(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateFindRange(t *testing.T) {
	snap := buffer.NewSnapshot(sample, 4)
	f := New()
	f.Set("foo", Options{})

	f.UpdateFind(snap, 13, 14)
	if got, want := regions(f.Occurrences()), [][2]int{{12, 15}, {19, 22}}; !equalRanges(got, want) {
		t.Errorf("searching line 1 only: got %v, want %v", got, want)
	}

	f.UpdateFind(snap, 0, snap.Len())
	if n := f.Occurrences().Len(); n != 4 {
		t.Errorf("searching again should not duplicate, got %d occurrences", n)
	}
}

func TestSetInvalidPattern(t *testing.T) {
	f := New()
	f.Set("foo", Options{})

	err := f.Set("(", Options{Regex: true})
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	if f.Pattern() != "foo" || !f.IsActive() {
		t.Error("a bad pattern should keep the previous search")
	}

	if err := f.Set("(", Options{}); err != nil {
		t.Errorf("literal parenthesis should be valid: %v", err)
	}
}

func TestClear(t *testing.T) {
	snap := buffer.NewSnapshot(sample, 4)
	f := New()
	f.Set("foo", Options{})
	f.UpdateFind(snap, 0, snap.Len())

	f.Set("", Options{})
	if f.IsActive() || f.Occurrences().Len() != 0 {
		t.Error("empty pattern should clear the search")
	}
	f.UpdateFind(snap, 0, snap.Len())
	if f.Occurrences().Len() != 0 {
		t.Error("inactive search should find nothing")
	}
}

func TestNext(t *testing.T) {
	snap := buffer.NewSnapshot(sample, 4)
	f := New()
	f.Set("foo", Options{WholeWords: true})

	tests := []struct {
		name    string
		offset  int
		reverse bool
		wrap    bool
		want    int
		ok      bool
	}{
		{"forward", 0, false, false, 8, true},
		{"forward skips partial word", 10, false, false, 19, true},
		{"forward at end", 19, false, false, 0, false},
		{"forward wraps", 19, false, true, 0, true},
		{"reverse", 8, true, false, 0, true},
		{"reverse at start", 0, true, false, 0, false},
		{"reverse wraps", 0, true, true, 19, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.Next(snap, tt.offset, tt.reverse, tt.wrap)
			if ok != tt.ok {
				t.Fatalf("Next ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Min() != tt.want {
				t.Errorf("Next = %v, want start %d", got, tt.want)
			}
		})
	}
}

func TestUpdateHighlights(t *testing.T) {
	tests := []struct {
		name string
		edit buffer.Edit
		want [][2]int
	}{
		{"insert match", buffer.NewInsert(0, "foo "), [][2]int{{0, 3}, {4, 7}, {12, 15}, {16, 19}, {23, 26}}},
		{"delete match", buffer.NewDelete(8, 11), [][2]int{{0, 3}, {9, 12}, {16, 19}}},
		{"break match", buffer.NewReplace(13, 14, "x"), [][2]int{{0, 3}, {8, 11}, {19, 22}}},
		{"unrelated insert", buffer.NewInsert(21, "!"), [][2]int{{0, 3}, {8, 11}, {12, 15}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := buffer.NewDataFromString(sample)
			f := New()
			f.Set("foo", Options{})
			f.UpdateFind(d.Snapshot(), 0, d.Len())

			dl, err := d.EditMultiple([]buffer.Edit{tt.edit}, history.EditOther)
			if err != nil {
				t.Fatal(err)
			}
			f.UpdateHighlights(d.Snapshot(), dl)

			if got := regions(f.Occurrences()); !equalRanges(got, tt.want) {
				t.Errorf("text %q: got %v, want %v", d.Text(), got, tt.want)
			}
		})
	}
}

func TestUpdateHighlightsJoinsMatch(t *testing.T) {
	d := buffer.NewDataFromString("fo o")
	f := New()
	f.Set("foo", Options{})
	f.UpdateFind(d.Snapshot(), 0, d.Len())
	if f.Occurrences().Len() != 0 {
		t.Fatal("no match expected yet")
	}

	dl, _ := d.EditMultiple([]buffer.Edit{buffer.NewDelete(2, 3)}, history.EditDelete)
	f.UpdateHighlights(d.Snapshot(), dl)
	if got, want := regions(f.Occurrences()), [][2]int{{0, 3}}; !equalRanges(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIsMatchingWholeWords(t *testing.T) {
	snap := buffer.NewSnapshot("a foo_b (foo) \u00e9foo", 4)
	tests := []struct {
		start, end int
		want       bool
	}{
		{2, 5, false},
		{9, 12, true},
		{0, 1, true},
		{16, 19, false},
	}
	for _, tt := range tests {
		if got := IsMatchingWholeWords(snap, tt.start, tt.end); got != tt.want {
			t.Errorf("IsMatchingWholeWords(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}
