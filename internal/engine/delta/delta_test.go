package delta

import (
	"testing"

	"github.com/dshills/inkwell/internal/engine/rope"
	"github.com/dshills/inkwell/internal/engine/subset"
)

func mask(pattern string) subset.Subset {
	var b subset.Builder
	for i, c := range pattern {
		if c == '#' {
			b.AddRange(i, i+1, 1)
		}
	}
	b.PadToLen(len(pattern))
	return b.Build()
}

func TestSimpleApply(t *testing.T) {
	tests := []struct {
		name       string
		base       string
		start, end int
		text       string
		expected   string
	}{
		{"replace", "hello world", 6, 11, "there", "hello there"},
		{"insert", "hello", 5, 5, "!", "hello!"},
		{"delete", "hello", 1, 4, "", "ho"},
		{"into empty", "", 0, 0, "abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Simple(tt.start, tt.end, tt.text, len(tt.base))
			if got := d.ApplyString(tt.base); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
			if d.NewDocumentLen() != len(tt.expected) {
				t.Errorf("NewDocumentLen() = %d, want %d", d.NewDocumentLen(), len(tt.expected))
			}
		})
	}
}

func TestBuilderMultiple(t *testing.T) {
	b := NewBuilder(10)
	b.Replace(0, 0, rope.FromString("X"))
	b.Replace(2, 4, rope.FromString(""))
	b.Replace(10, 10, rope.FromString("Y"))
	d := b.Build()

	if got := d.ApplyString("0123456789"); got != "X01456789Y" {
		t.Errorf("got %q", got)
	}
	if d.InsertsLen() != 2 {
		t.Errorf("InsertsLen() = %d, want 2", d.InsertsLen())
	}
}

func TestBuilderUnsortedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsorted intervals")
		}
	}()
	b := NewBuilder(10)
	b.Delete(5, 6)
	b.Delete(2, 3)
}

func TestIsIdentity(t *testing.T) {
	if !NewBuilder(5).Build().IsIdentity() {
		t.Error("empty builder should produce identity")
	}
	if !NewBuilder(0).Build().IsIdentity() {
		t.Error("empty delta over empty doc should be identity")
	}
	if Simple(1, 1, "x", 5).IsIdentity() {
		t.Error("insert should not be identity")
	}
}

func TestTransform(t *testing.T) {
	ins := Simple(2, 2, "X", 5)
	tests := []struct {
		ix    int
		after bool
		want  int
	}{
		{0, false, 0},
		{1, true, 1},
		{2, false, 2},
		{2, true, 3},
		{4, false, 5},
		{5, true, 6},
	}
	for _, tt := range tests {
		if got := ins.Transform(tt.ix, tt.after); got != tt.want {
			t.Errorf("insert Transform(%d, %v) = %d, want %d", tt.ix, tt.after, got, tt.want)
		}
	}

	del := Simple(1, 3, "", 5)
	for ix, want := range map[int]int{0: 0, 1: 1, 2: 1, 3: 1, 4: 2, 5: 3} {
		if got := del.Transform(ix, false); got != want {
			t.Errorf("delete Transform(%d) = %d, want %d", ix, got, want)
		}
	}

	id := NewBuilder(8).Build()
	for ix := 0; ix <= 8; ix++ {
		if got := id.Transform(ix, true); got != ix {
			t.Errorf("identity Transform(%d) = %d", ix, got)
		}
	}
}

func TestSummary(t *testing.T) {
	iv, newLen := Simple(2, 4, "xyz", 10).Summary()
	if iv != (Interval{2, 4}) || newLen != 3 {
		t.Errorf("Summary() = %v, %d", iv, newLen)
	}

	iv, newLen = Simple(0, 10, "", 10).Summary()
	if iv != (Interval{0, 10}) || newLen != 0 {
		t.Errorf("full delete Summary() = %v, %d", iv, newLen)
	}
}

func TestInsertsAndDeletions(t *testing.T) {
	b := NewBuilder(8)
	b.Replace(1, 3, rope.FromString("ab"))
	b.Replace(5, 8, rope.FromString(""))
	d := b.Build()

	ins := d.Inserts()
	if len(ins) != 1 || ins[0] != (Region{OldOffset: 1, NewOffset: 1, Len: 2}) {
		t.Errorf("Inserts() = %+v", ins)
	}

	dels := d.Deletions()
	want := []Region{{OldOffset: 1, NewOffset: 3, Len: 2}, {OldOffset: 5, NewOffset: 5, Len: 3}}
	if len(dels) != len(want) {
		t.Fatalf("Deletions() = %+v", dels)
	}
	for i := range want {
		if dels[i] != want[i] {
			t.Errorf("Deletions()[%d] = %+v, want %+v", i, dels[i], want[i])
		}
	}

	changes := d.Changes()
	if len(changes) != 2 || changes[0] != (Change{1, 3, "ab"}) || changes[1] != (Change{5, 8, ""}) {
		t.Errorf("Changes() = %+v", changes)
	}
}

func TestFactor(t *testing.T) {
	d := Simple(1, 3, "xy", 5)
	ins, dels := d.Factor()

	if got := dels.String(); got != "-##--" {
		t.Errorf("deletes = %q", got)
	}
	withInserts := ins.ApplyString("abcde")
	if withInserts != "axybcde" {
		t.Errorf("inserts applied = %q", withInserts)
	}

	inserted := ins.InsertedSubset()
	if got := inserted.String(); got != "-##----" {
		t.Errorf("inserted subset = %q", got)
	}

	shifted := dels.TransformExpand(inserted)
	if got := shifted.DeleteFromString(withInserts); got != d.ApplyString("abcde") {
		t.Errorf("factor recombined = %q, want %q", got, d.ApplyString("abcde"))
	}
}

func TestSynthesize(t *testing.T) {
	// Union text "abcde" with "bc" tombstoned.
	tombstones := rope.FromString("bc")
	from := mask("-##--")

	restore := Synthesize(tombstones, from, mask("-----"))
	if got := restore.ApplyString("ade"); got != "abcde" {
		t.Errorf("restore = %q", got)
	}

	further := Synthesize(tombstones, from, mask("-####"))
	if got := further.ApplyString("ade"); got != "a" {
		t.Errorf("further delete = %q", got)
	}

	same := Synthesize(tombstones, from, from)
	if !same.IsIdentity() {
		t.Errorf("synthesize with equal subsets should be identity, got %+v", same.Elements())
	}
}

func TestInsertDeltaTransforms(t *testing.T) {
	xform := mask("-###-")
	ins := &InsertDelta{Delta{els: []Element{Copy(0, 1), Insert(rope.FromString("X")), Copy(1, 2)}, baseLen: 2}}

	after := ins.TransformExpand(xform, true)
	if got := after.ApplyString("abcde"); got != "abcdXe" {
		t.Errorf("expand after = %q", got)
	}
	before := ins.TransformExpand(xform, false)
	if got := before.ApplyString("abcde"); got != "aXbcde" {
		t.Errorf("expand before = %q", got)
	}

	back := after.TransformShrink(xform)
	if got := back.ApplyString("ae"); got != "aXe" {
		t.Errorf("shrink = %q", got)
	}
	if back.BaseLen() != 2 {
		t.Errorf("shrink base = %d", back.BaseLen())
	}
}
