package rope

import (
	"strings"
	"testing"
	"testing/quick"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.LineCount() != 1 {
		t.Errorf("New rope should have 1 line, got %d", r.LineCount())
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"with newline", "hello\nworld"},
		{"unicode", "hello 世界 🌍"},
		{"long string", strings.Repeat("abcdefghij", 100)},
		{"very long string", strings.Repeat("x", 10000)},
		{"many lines", strings.Repeat("line\n", 2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if r.Len() != len(tt.input) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.input))
			}
			if r.LineCount() != strings.Count(tt.input, "\n")+1 {
				t.Errorf("LineCount() = %d, want %d", r.LineCount(), strings.Count(tt.input, "\n")+1)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		text       string
		expected   string
	}{
		{"insert at start", "world", 0, 0, "hello ", "hello world"},
		{"insert at end", "hello", 5, 5, " world", "hello world"},
		{"insert in middle", "helloworld", 5, 5, " ", "hello world"},
		{"insert into empty", "", 0, 0, "hello", "hello"},
		{"delete middle", "hello world", 5, 11, "", "hello"},
		{"replace", "hello world", 6, 11, "there", "hello there"},
		{"clamped end", "hello", 3, 99, "", "hel"},
		{"unicode boundary", "世界", 3, 3, "!", "世!界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial).Replace(tt.start, tt.end, tt.text)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSplitConcat(t *testing.T) {
	text := strings.Repeat("The quick brown fox\n", 100)
	r := FromString(text)

	for _, at := range []int{0, 1, 255, 256, 1000, len(text) - 1, len(text)} {
		left, right := r.Split(at)
		if left.String() != text[:at] {
			t.Errorf("Split(%d) left mismatch", at)
		}
		if right.String() != text[at:] {
			t.Errorf("Split(%d) right mismatch", at)
		}
		if joined := left.Concat(right); joined.String() != text {
			t.Errorf("Concat after Split(%d) mismatch", at)
		}
	}
}

func TestSubseq(t *testing.T) {
	r := FromString(strings.Repeat("0123456789", 60))
	if got := r.Subseq(5, 15).String(); got != "5678901234" {
		t.Errorf("Subseq(5, 15) = %q", got)
	}
	if !r.Subseq(10, 10).IsEmpty() {
		t.Error("empty Subseq should be empty")
	}
}

func TestLineQueries(t *testing.T) {
	r := FromString("alpha\nbeta\n\ngamma")

	tests := []struct {
		line      int
		start     int
		end       int
		text      string
		firstByte int
	}{
		{0, 0, 5, "alpha", 0},
		{1, 6, 10, "beta", 6},
		{2, 11, 11, "", 11},
		{3, 12, 17, "gamma", 12},
		{9, 17, 17, "", 17},
	}
	for _, tt := range tests {
		if got := r.OffsetOfLine(tt.line); got != tt.start {
			t.Errorf("OffsetOfLine(%d) = %d, want %d", tt.line, got, tt.start)
		}
		if got := r.LineEndOffset(tt.line); got != tt.end {
			t.Errorf("LineEndOffset(%d) = %d, want %d", tt.line, got, tt.end)
		}
		if got := r.LineText(tt.line); got != tt.text {
			t.Errorf("LineText(%d) = %q, want %q", tt.line, got, tt.text)
		}
	}

	offsets := map[int]int{-3: 0, 0: 0, 5: 0, 6: 1, 10: 1, 11: 2, 12: 3, 17: 3, 99: 3}
	for offset, want := range offsets {
		if got := r.LineOfOffset(offset); got != want {
			t.Errorf("LineOfOffset(%d) = %d, want %d", offset, got, want)
		}
	}
}

func TestLineQueriesLarge(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 3000; i++ {
		sb.WriteString(strings.Repeat("x", i%17))
		sb.WriteByte('\n')
	}
	text := sb.String()
	r := FromString(text)

	lines := strings.Split(text, "\n")
	offset := 0
	for i, line := range lines {
		if got := r.OffsetOfLine(i); got != offset {
			t.Fatalf("OffsetOfLine(%d) = %d, want %d", i, got, offset)
		}
		if got := r.LineOfOffset(offset); got != i {
			t.Fatalf("LineOfOffset(%d) = %d, want %d", offset, got, i)
		}
		offset += len(line) + 1
	}
}

func TestByteAt(t *testing.T) {
	r := FromString("hello")
	if b, ok := r.ByteAt(1); !ok || b != 'e' {
		t.Errorf("ByteAt(1) = %q, %v", b, ok)
	}
	if _, ok := r.ByteAt(5); ok {
		t.Error("ByteAt past end should fail")
	}
}

func TestImmutability(t *testing.T) {
	original := FromString("hello world")
	modified := original.Insert(5, ",")
	_ = original.Delete(0, 6)

	if original.String() != "hello world" {
		t.Errorf("original was modified: %q", original.String())
	}
	if modified.String() != "hello, world" {
		t.Errorf("modified = %q", modified.String())
	}
}

func TestChunks(t *testing.T) {
	text := strings.Repeat("abcdefgh", 200)
	r := FromString(text)

	var sb strings.Builder
	r.Chunks(10, 1000, func(s string) bool {
		sb.WriteString(s)
		return true
	})
	if sb.String() != text[10:1000] {
		t.Error("Chunks did not reproduce the range")
	}

	calls := 0
	r.Chunks(0, r.Len(), func(string) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Errorf("Chunks should stop after false, got %d calls", calls)
	}
}

func TestBuilder(t *testing.T) {
	var b Builder
	b.WriteString("hello ")
	b.WriteRope(FromString("big "))
	b.WriteString("world")
	if b.Len() != 15 {
		t.Errorf("Len() = %d, want 15", b.Len())
	}
	if got := b.Build().String(); got != "hello big world" {
		t.Errorf("Build() = %q", got)
	}
	if b.Len() != 0 {
		t.Error("Build should reset the builder")
	}
}

func TestManyEditsStayBalanced(t *testing.T) {
	r := New()
	var want strings.Builder
	for i := 0; i < 5000; i++ {
		r = r.Insert(r.Len(), "ab\n")
		want.WriteString("ab\n")
	}
	if r.String() != want.String() {
		t.Fatal("content mismatch after appends")
	}
	if r.Height() > 12 {
		t.Errorf("tree too tall after appends: %d", r.Height())
	}
	if r.LineCount() != 5001 {
		t.Errorf("LineCount() = %d, want 5001", r.LineCount())
	}
}

func TestInsertDeleteProperty(t *testing.T) {
	f := func(base, ins string, pos uint16) bool {
		r := FromString(base)
		at := int(pos) % (len(base) + 1)
		for at > 0 && at < len(base) && (base[at]&0xC0) == 0x80 {
			at--
		}
		r2 := r.Insert(at, ins).Delete(at, at+len(ins))
		return r2.String() == base
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestComputeSummary(t *testing.T) {
	tests := []struct {
		input string
		want  TextSummary
	}{
		{"", TextSummary{}},
		{"abc", TextSummary{Bytes: 3, LongestLine: 3, FirstLineLen: 3, LastLineLen: 3}},
		{"ab\ncdef\ng", TextSummary{Bytes: 9, Lines: 2, LongestLine: 4, FirstLineLen: 2, LastLineLen: 1}},
		{"\n", TextSummary{Bytes: 1, Lines: 1}},
	}
	for _, tt := range tests {
		if got := ComputeSummary(tt.input); got != tt.want {
			t.Errorf("ComputeSummary(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestSummaryAdd(t *testing.T) {
	parts := []string{"ab", "c\nlonger line", "", "\n", "x", "yz\nq"}
	var sum TextSummary
	var all string
	for _, p := range parts {
		sum = sum.Add(ComputeSummary(p))
		all += p
	}
	if want := ComputeSummary(all); sum != want {
		t.Errorf("Add = %+v, want %+v", sum, want)
	}
}
