package movement

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Movement
	}{
		{"left", MoveLeft},
		{"Word-Forward", MoveWordForward},
		{"line:first", ToLine(LinePosition{Kind: LineFirst})},
		{"line:last", ToLine(LinePosition{Kind: LineLast})},
		{"line:12", ToLineNumber(12)},
		{"offset:7", ToOffset(7)},
		{"next_unmatched:)", ToNextUnmatched(')')},
		{"previous_unmatched:{", ToPreviousUnmatched('{')},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, m := range []Movement{MoveParagraphBackward, ToLineNumber(3), ToOffset(0), ToNextUnmatched(']')} {
		got, err := Parse(m.String())
		if err != nil || got != m {
			t.Errorf("Parse(%q) = %v, %v", m.String(), got, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{"sideways", ErrUnknownMovement},
		{"line:x", ErrInvalidArgument},
		{"offset:", ErrInvalidArgument},
		{"next_unmatched:))", ErrInvalidArgument},
		{"left:3", ErrInvalidArgument},
	}

	for _, tt := range tests {
		if _, err := Parse(tt.in); !errors.Is(err, tt.err) {
			t.Errorf("Parse(%q): expected %v, got %v", tt.in, tt.err, err)
		}
	}
}

func TestMovementClassification(t *testing.T) {
	tests := []struct {
		m         Movement
		vertical  bool
		jump      bool
		inclusive bool
	}{
		{MoveLeft, false, false, false},
		{MoveDown, true, false, false},
		{ToLineNumber(4), true, true, false},
		{ToOffset(9), false, true, false},
		{MoveWordEndForward, false, false, true},
		{MoveMatchPairs, false, true, true},
		{MoveParagraphForward, false, true, false},
	}

	for _, tt := range tests {
		if got := tt.m.IsVertical(); got != tt.vertical {
			t.Errorf("%v.IsVertical() = %v", tt.m, got)
		}
		if got := tt.m.IsJump(); got != tt.jump {
			t.Errorf("%v.IsJump() = %v", tt.m, got)
		}
		if got := tt.m.IsInclusive(); got != tt.inclusive {
			t.Errorf("%v.IsInclusive() = %v", tt.m, got)
		}
	}
}

func TestUpdateIndex(t *testing.T) {
	tests := []struct {
		name   string
		m      Movement
		index  int
		length int
		count  int
		modulo bool
		want   int
	}{
		{"down", MoveDown, 1, 5, 1, false, 2},
		{"down clamps", MoveDown, 4, 5, 1, false, 4},
		{"down wraps", MoveDown, 4, 5, 1, true, 0},
		{"down wraps by count", MoveDown, 3, 5, 4, true, 2},
		{"up", MoveUp, 3, 5, 2, false, 1},
		{"up clamps", MoveUp, 0, 5, 1, false, 0},
		{"up wraps", MoveUp, 0, 5, 1, true, 4},
		{"up wraps by count", MoveUp, 1, 5, 7, true, 4},
		{"document start", MoveDocumentStart, 3, 5, 1, false, 0},
		{"document end", MoveDocumentEnd, 0, 5, 1, false, 4},
		{"line number", ToLineNumber(2), 0, 5, 1, false, 1},
		{"line past end", ToLineNumber(99), 0, 5, 1, false, 4},
		{"empty list", MoveDown, 3, 0, 1, true, 0},
		{"other movements keep index", MoveWordForward, 2, 5, 1, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.UpdateIndex(tt.index, tt.length, tt.count, tt.modulo); got != tt.want {
				t.Errorf("UpdateIndex(%d, %d, %d, %v) = %d, want %d",
					tt.index, tt.length, tt.count, tt.modulo, got, tt.want)
			}
		})
	}
}
