package tracking

import (
	"testing"

	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/history"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		opts     DiffOptions
		hunks    int
		inserted int
		deleted  int
	}{
		{"identical", "a\nb\n", "a\nb\n", DefaultDiffOptions(), 0, 0, 0},
		{"append line", "a\nb\n", "a\nb\nc\n", DefaultDiffOptions(), 1, 1, 0},
		{"delete line", "a\nb\nc\n", "a\nc\n", DefaultDiffOptions(), 1, 0, 1},
		{"replace line", "a\nb\nc\n", "a\nB\nc\n", DefaultDiffOptions(), 1, 1, 1},
		{"missing final newline", "a\nb", "a\nb\n", DefaultDiffOptions(), 0, 0, 0},
		{"from empty", "", "x\ny\n", DefaultDiffOptions(), 1, 2, 0},
		{"ignore case", "Hello\n", "hello\n", DiffOptions{IgnoreCase: true}, 0, 0, 0},
		{"ignore whitespace", "  x\n", "x  \n", DiffOptions{IgnoreWhitespace: true}, 0, 0, 0},
		{"distant changes split", "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n", "one\n2\n3\n4\n5\n6\n7\n8\n9\nten\n", DefaultDiffOptions(), 2, 2, 2},
		{"near changes merge", "1\n2\n3\n4\n5\n", "one\n2\n3\n4\nfive\n", DefaultDiffOptions(), 1, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Diff(tt.old, tt.new, tt.opts)
			if len(res.Hunks) != tt.hunks {
				t.Errorf("got %d hunks, want %d: %+v", len(res.Hunks), tt.hunks, res.Hunks)
			}
			if res.InsertedLines() != tt.inserted || res.DeletedLines() != tt.deleted {
				t.Errorf("got +%d -%d, want +%d -%d", res.InsertedLines(), res.DeletedLines(), tt.inserted, tt.deleted)
			}
			if res.HasChanges() != (tt.hunks > 0) {
				t.Errorf("HasChanges() = %v", res.HasChanges())
			}
		})
	}
}

func TestDiffHunkContext(t *testing.T) {
	res := Diff("1\n2\n3\n4\n5\n6\n7\n", "1\n2\n3\nfour\n5\n6\n7\n", DiffOptions{ContextLines: 1})
	if len(res.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(res.Hunks))
	}
	h := res.Hunks[0]
	if h.Type != DiffReplace {
		t.Errorf("Type = %v, want replace", h.Type)
	}
	if h.OldStart != 2 || h.OldCount != 3 || h.NewStart != 2 || h.NewCount != 3 {
		t.Errorf("hunk bounds = -%d,%d +%d,%d", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}
	want := []string{" 3", "-4", "+four", " 5"}
	if len(h.Lines) != len(want) {
		t.Fatalf("Lines = %q, want %q", h.Lines, want)
	}
	for i := range want {
		if h.Lines[i] != want[i] {
			t.Errorf("Lines[%d] = %q, want %q", i, h.Lines[i], want[i])
		}
	}
}

func TestUnifiedDiff(t *testing.T) {
	res := Diff("a\nb\n", "a\nc\n", DefaultDiffOptions())
	want := "--- old\n+++ new\n@@ -1,2 +1,2 @@\n a\n-b\n+c\n"
	if got := UnifiedDiff(res, "old", "new"); got != want {
		t.Errorf("UnifiedDiff:\n%s\nwant:\n%s", got, want)
	}
	if got := UnifiedDiff(Diff("a", "a", DefaultDiffOptions()), "old", "new"); got != "" {
		t.Errorf("no changes should render empty, got %q", got)
	}
}

func TestEditsFromDiff(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{"identical", "same", "same"},
		{"insert", "hello world", "hello big world"},
		{"delete", "hello big world", "hello world"},
		{"replace", "the cat sat", "the dog sat"},
		{"several", "alpha beta gamma", "ALPHA beta delta"},
		{"from empty", "", "fresh"},
		{"to empty", "gone", ""},
		{"multibyte", "café au lait", "café noir"},
		{"invalid utf8 before change", "caf\xe9 one\nline two\n", "caf\xe9 one\nline 2\n"},
		{"invalid utf8 inserted", "plain text", "plain \xff\xfe text"},
		{"invalid utf8 removed", "a\x80b\x80c", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := buffer.NewDataFromString(tt.old)
			edits := EditsFromDiff(tt.old, tt.new)
			if tt.old == tt.new && len(edits) != 0 {
				t.Errorf("identical texts should give no edits, got %v", edits)
			}
			if _, err := d.EditMultiple(edits, history.EditOther); err != nil {
				t.Fatalf("EditMultiple: %v", err)
			}
			if d.Text() != tt.new {
				t.Errorf("applying edits gave %q, want %q", d.Text(), tt.new)
			}
		})
	}
}

func TestEditsFromDiffInvalidUTF8IsOneEdit(t *testing.T) {
	edits := EditsFromDiff("caf\xe9 one\nline two\n", "caf\xe9 one\nline 2\n")
	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}
	r := edits[0].Selection.Regions()[0]
	if r.Min() != 15 || r.Max() != 18 || edits[0].Text != "2" {
		t.Errorf("got %v, want [15, 18) replaced by %q", edits[0], "2")
	}
	if edits := EditsFromDiff("\xff", "\xff"); len(edits) != 0 {
		t.Errorf("identical texts should give no edits, got %v", edits)
	}
}
