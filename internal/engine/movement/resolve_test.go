package movement

import (
	"testing"

	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/cursor"
)

func resolver(text string) *Resolver {
	return NewResolver(buffer.NewSnapshot(text, 4))
}

func TestDownUpKeepsColumn(t *testing.T) {
	r := resolver("abcdef\nab\nabcdef")
	region := cursor.Caret(5)

	region = r.MoveRegion(region, MoveDown, 1, false, false)
	if region.End != 9 {
		t.Fatalf("Down into short line: got %d, want 9", region.End)
	}
	if region.Horiz == nil || region.Horiz.Col != 5 {
		t.Fatalf("Down should remember column 5, got %v", region.Horiz)
	}

	down := r.MoveRegion(region, MoveDown, 1, false, false)
	if down.End != 15 {
		t.Errorf("Down through short line: got %d, want 15", down.End)
	}

	region = r.MoveRegion(region, MoveUp, 1, false, false)
	if region.End != 5 {
		t.Errorf("Up back to original column: got %d, want 5", region.End)
	}
}

func TestLeftRightStayOnLine(t *testing.T) {
	r := resolver("ab\ncd")

	tests := []struct {
		name           string
		m              Movement
		offset         int
		includeNewline bool
		want           int
	}{
		{"right at line end", MoveRight, 2, false, 2},
		{"right across newline", MoveRight, 2, true, 3},
		{"left at line start", MoveLeft, 3, false, 3},
		{"left across newline", MoveLeft, 3, true, 2},
		{"right inside line", MoveRight, 0, false, 1},
		{"left at document start", MoveLeft, 0, true, 0},
		{"right at document end", MoveRight, 5, true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.MoveRegion(cursor.Caret(tt.offset), tt.m, 1, tt.includeNewline, false)
			if !got.Equals(cursor.Caret(tt.want)) {
				t.Errorf("got %v, want Caret(%d)", got, tt.want)
			}
		})
	}
}

func TestRightByGrapheme(t *testing.T) {
	r := resolver("e\u0301x")
	if got := r.MoveRegion(cursor.Caret(0), MoveRight, 1, false, false); got.End != 3 {
		t.Errorf("Right over combining mark: got %d, want 3", got.End)
	}
	if got := r.MoveRegion(cursor.Caret(3), MoveLeft, 1, false, false); got.End != 0 {
		t.Errorf("Left over combining mark: got %d, want 0", got.End)
	}
}

func TestMoveRegionCollapse(t *testing.T) {
	r := resolver("abcdef")
	sel := cursor.NewRegion(1, 4)

	tests := []struct {
		name  string
		m     Movement
		count int
		want  cursor.SelRegion
	}{
		{"left collapses to min", MoveLeft, 1, cursor.Caret(1)},
		{"right collapses to max", MoveRight, 1, cursor.Caret(4)},
		{"left count continues", MoveLeft, 2, cursor.Caret(0)},
		{"right count continues", MoveRight, 3, cursor.Caret(6)},
		{"other movements do not collapse", MoveEndOfLine, 1, cursor.Caret(6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.MoveRegion(sel, tt.m, tt.count, false, false)
			if got.Start != tt.want.Start || got.End != tt.want.End {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoveRegionModify(t *testing.T) {
	r := resolver("abcdef")

	got := r.MoveRegion(cursor.Caret(2), MoveRight, 2, false, true)
	if got.Start != 2 || got.End != 4 {
		t.Errorf("extend right: got %v, want [2, 4)", got)
	}

	got = r.MoveRegion(got, MoveLeft, 3, false, true)
	if got.Start != 2 || got.End != 1 {
		t.Errorf("extend back past start: got %v, want backward [2, 1)", got)
	}
}

func TestLineMovements(t *testing.T) {
	r := resolver("  ab\nabcd\n\tx")

	tests := []struct {
		name   string
		m      Movement
		offset int
		want   int
	}{
		{"start of line", MoveStartOfLine, 8, 5},
		{"end of line", MoveEndOfLine, 5, 9},
		{"first non blank", MoveFirstNonBlank, 4, 2},
		{"first non blank after tab", MoveFirstNonBlank, 10, 11},
		{"document start", MoveDocumentStart, 8, 0},
		{"document end", MoveDocumentEnd, 0, 12},
		{"offset", ToOffset(6), 0, 6},
		{"offset clamps", ToOffset(99), 0, 12},
		{"line first", ToLine(LinePosition{Kind: LineFirst}), 7, 2},
		{"line last", ToLine(LinePosition{Kind: LineLast}), 7, 10},
		{"line number", ToLineNumber(2), 1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := r.MoveOffset(tt.offset, nil, tt.m, 1, false)
			if got != tt.want {
				t.Errorf("MoveOffset(%d, %v) = %d, want %d", tt.offset, tt.m, got, tt.want)
			}
		})
	}
}

func TestStickyEndOfLine(t *testing.T) {
	r := resolver("ab\nabcd\nx")

	region := r.MoveRegion(cursor.Caret(0), MoveEndOfLine, 1, false, false)
	if region.End != 2 {
		t.Fatalf("EndOfLine: got %d", region.End)
	}
	region = r.MoveRegion(region, MoveDown, 1, false, false)
	if region.End != 7 {
		t.Errorf("Down after EndOfLine should stay at line end, got %d", region.End)
	}
	region = r.MoveRegion(region, MoveDown, 1, false, false)
	if region.End != 9 {
		t.Errorf("got %d, want 9", region.End)
	}
}

func TestWordMovements(t *testing.T) {
	r := resolver("foo bar.baz  qux")

	tests := []struct {
		name   string
		m      Movement
		offset int
		count  int
		want   int
	}{
		{"forward over word", MoveWordForward, 0, 1, 4},
		{"forward stops at punctuation", MoveWordForward, 4, 1, 7},
		{"forward over punctuation", MoveWordForward, 7, 1, 8},
		{"forward count", MoveWordForward, 0, 3, 8},
		{"forward at end", MoveWordForward, 13, 2, 16},
		{"backward to punctuation", MoveWordBackward, 8, 1, 7},
		{"backward over word", MoveWordBackward, 7, 1, 4},
		{"backward over blanks", MoveWordBackward, 13, 1, 8},
		{"backward at start", MoveWordBackward, 0, 1, 0},
		{"word end", MoveWordEndForward, 0, 1, 2},
		{"word end from word end", MoveWordEndForward, 2, 1, 6},
		{"word end count", MoveWordEndForward, 0, 3, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := r.MoveOffset(tt.offset, nil, tt.m, tt.count, false)
			if got != tt.want {
				t.Errorf("MoveOffset(%d, %v, %d) = %d, want %d", tt.offset, tt.m, tt.count, got, tt.want)
			}
		})
	}
}

func TestBigWords(t *testing.T) {
	w := TextWords{Text: buffer.NewSnapshot("foo bar.baz  qux", 4), BigWord: true}
	if got := w.NextWordStart(4); got != 13 {
		t.Errorf("NextWordStart(4) = %d, want 13", got)
	}
	if got := w.PrevWordStart(13); got != 4 {
		t.Errorf("PrevWordStart(13) = %d, want 4", got)
	}
}

func TestWordSeparators(t *testing.T) {
	w := TextWords{Text: buffer.NewSnapshot("kebab-case", 4), Separators: "-"}
	if got := w.NextWordStart(0); got != 5 {
		t.Errorf("NextWordStart(0) = %d, want 5", got)
	}
}

func TestBracketMovements(t *testing.T) {
	r := resolver("f(a, (b), c)")

	tests := []struct {
		name   string
		m      Movement
		offset int
		want   int
	}{
		{"match open", MoveMatchPairs, 1, 11},
		{"match close", MoveMatchPairs, 11, 1},
		{"match nested", MoveMatchPairs, 5, 7},
		{"match non-bracket", MoveMatchPairs, 0, 0},
		{"next unmatched inside", ToNextUnmatched(')'), 6, 7},
		{"next unmatched skips nested", ToNextUnmatched(')'), 2, 11},
		{"next unmatched after nested", ToNextUnmatched(')'), 9, 11},
		{"previous unmatched skips nested", ToPreviousUnmatched('('), 9, 1},
		{"previous unmatched inside", ToPreviousUnmatched('('), 6, 5},
		{"previous unmatched none", ToPreviousUnmatched('('), 0, 0},
		{"wrong direction", ToNextUnmatched('('), 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := r.MoveOffset(tt.offset, nil, tt.m, 1, false)
			if got != tt.want {
				t.Errorf("MoveOffset(%d, %v) = %d, want %d", tt.offset, tt.m, got, tt.want)
			}
		})
	}
}

func TestParagraphMovements(t *testing.T) {
	r := resolver("a\nb\n\nc\nd\n\ne")

	tests := []struct {
		name   string
		m      Movement
		offset int
		count  int
		want   int
	}{
		{"forward", MoveParagraphForward, 0, 1, 5},
		{"forward count", MoveParagraphForward, 0, 2, 10},
		{"forward into last paragraph", MoveParagraphForward, 7, 1, 10},
		{"backward", MoveParagraphBackward, 10, 1, 9},
		{"backward count", MoveParagraphBackward, 10, 2, 4},
		{"backward to start", MoveParagraphBackward, 2, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := r.MoveOffset(tt.offset, nil, tt.m, tt.count, false)
			if got != tt.want {
				t.Errorf("MoveOffset(%d, %v, %d) = %d, want %d", tt.offset, tt.m, tt.count, got, tt.want)
			}
		})
	}
}

func TestMoveSelectionMerges(t *testing.T) {
	r := resolver("abc")
	sel := cursor.FromRegions(cursor.Caret(0), cursor.Caret(1), cursor.Caret(3))

	got := r.MoveSelection(sel, MoveLeft, 1, false, false)
	want := cursor.FromRegions(cursor.Caret(0), cursor.Caret(2))
	if !got.Equals(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
