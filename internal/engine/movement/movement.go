package movement

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies a movement.
type Kind uint8

const (
	Left Kind = iota
	Right
	Up
	Down
	DocumentStart
	DocumentEnd
	StartOfLine
	EndOfLine
	FirstNonBlank
	Line
	Offset
	WordForward
	WordBackward
	WordEndForward
	NextUnmatched
	PreviousUnmatched
	MatchPairs
	ParagraphForward
	ParagraphBackward
)

var kindNames = [...]string{
	Left:              "left",
	Right:             "right",
	Up:                "up",
	Down:              "down",
	DocumentStart:     "document_start",
	DocumentEnd:       "document_end",
	StartOfLine:       "start_of_line",
	EndOfLine:         "end_of_line",
	FirstNonBlank:     "first_non_blank",
	Line:              "line",
	Offset:            "offset",
	WordForward:       "word_forward",
	WordBackward:      "word_backward",
	WordEndForward:    "word_end_forward",
	NextUnmatched:     "next_unmatched",
	PreviousUnmatched: "previous_unmatched",
	MatchPairs:        "match_pairs",
	ParagraphForward:  "paragraph_forward",
	ParagraphBackward: "paragraph_backward",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// LineKind selects the target of a Line movement.
type LineKind uint8

const (
	LineFirst LineKind = iota
	LineLast
	LineNumber
)

// LinePosition is the target line of a Line movement. Number is 1-based
// and only used with LineNumber.
type LinePosition struct {
	Kind   LineKind
	Number int
}

// String returns "first", "last" or the line number.
func (p LinePosition) String() string {
	switch p.Kind {
	case LineFirst:
		return "first"
	case LineLast:
		return "last"
	default:
		return strconv.Itoa(p.Number)
	}
}

// resolve returns the 0-based line for a document of numLines lines.
func (p LinePosition) resolve(numLines int) int {
	last := max(numLines-1, 0)
	switch p.Kind {
	case LineFirst:
		return 0
	case LineLast:
		return last
	default:
		return min(max(p.Number-1, 0), last)
	}
}

// Movement is a cursor movement command. Line, Offset and Char are the
// arguments of the Line, Offset and bracket kinds.
type Movement struct {
	Kind   Kind
	Line   LinePosition
	Offset int
	Char   rune
}

// Movements without arguments.
var (
	MoveLeft              = Movement{Kind: Left}
	MoveRight             = Movement{Kind: Right}
	MoveUp                = Movement{Kind: Up}
	MoveDown              = Movement{Kind: Down}
	MoveDocumentStart     = Movement{Kind: DocumentStart}
	MoveDocumentEnd       = Movement{Kind: DocumentEnd}
	MoveStartOfLine       = Movement{Kind: StartOfLine}
	MoveEndOfLine         = Movement{Kind: EndOfLine}
	MoveFirstNonBlank     = Movement{Kind: FirstNonBlank}
	MoveWordForward       = Movement{Kind: WordForward}
	MoveWordBackward      = Movement{Kind: WordBackward}
	MoveWordEndForward    = Movement{Kind: WordEndForward}
	MoveMatchPairs        = Movement{Kind: MatchPairs}
	MoveParagraphForward  = Movement{Kind: ParagraphForward}
	MoveParagraphBackward = Movement{Kind: ParagraphBackward}
)

// ToLine returns a movement to a line.
func ToLine(pos LinePosition) Movement {
	return Movement{Kind: Line, Line: pos}
}

// ToLineNumber returns a movement to the 1-based line n.
func ToLineNumber(n int) Movement {
	return ToLine(LinePosition{Kind: LineNumber, Number: n})
}

// ToOffset returns a movement to a byte offset.
func ToOffset(offset int) Movement {
	return Movement{Kind: Offset, Offset: offset}
}

// ToNextUnmatched returns a movement to the next c that closes an
// enclosing pair, such as ')'.
func ToNextUnmatched(c rune) Movement {
	return Movement{Kind: NextUnmatched, Char: c}
}

// ToPreviousUnmatched returns a movement to the previous c that opens an
// enclosing pair, such as '('.
func ToPreviousUnmatched(c rune) Movement {
	return Movement{Kind: PreviousUnmatched, Char: c}
}

// String returns the movement in the form accepted by Parse.
func (m Movement) String() string {
	switch m.Kind {
	case Line:
		return m.Kind.String() + ":" + m.Line.String()
	case Offset:
		return m.Kind.String() + ":" + strconv.Itoa(m.Offset)
	case NextUnmatched, PreviousUnmatched:
		return m.Kind.String() + ":" + string(m.Char)
	}
	return m.Kind.String()
}

// Parse parses a movement name as produced by String: a kind name,
// optionally followed by ":" and its argument. Matching ignores case and
// accepts '-' in place of '_'.
func Parse(s string) (Movement, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(s), ":")
	name = strings.ReplaceAll(strings.ToLower(name), "-", "_")

	kind := -1
	for i, n := range kindNames {
		if n == name {
			kind = i
			break
		}
	}
	if kind < 0 {
		return Movement{}, fmt.Errorf("%w: %q", ErrUnknownMovement, s)
	}

	m := Movement{Kind: Kind(kind)}
	switch m.Kind {
	case Line:
		switch strings.ToLower(arg) {
		case "first":
			m.Line = LinePosition{Kind: LineFirst}
		case "last":
			m.Line = LinePosition{Kind: LineLast}
		default:
			n, err := strconv.Atoi(arg)
			if err != nil {
				return Movement{}, fmt.Errorf("%w: line %q", ErrInvalidArgument, arg)
			}
			m.Line = LinePosition{Kind: LineNumber, Number: n}
		}
	case Offset:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Movement{}, fmt.Errorf("%w: offset %q", ErrInvalidArgument, arg)
		}
		m.Offset = n
	case NextUnmatched, PreviousUnmatched:
		r, size := utf8.DecodeRuneInString(arg)
		if size == 0 || size != len(arg) {
			return Movement{}, fmt.Errorf("%w: character %q", ErrInvalidArgument, arg)
		}
		m.Char = r
	default:
		if hasArg {
			return Movement{}, fmt.Errorf("%w: %s takes no argument", ErrInvalidArgument, name)
		}
	}
	return m, nil
}

// IsVertical reports whether the movement keeps the sticky column.
func (m Movement) IsVertical() bool {
	return m.Kind == Up || m.Kind == Down || m.Kind == Line
}

// IsJump reports whether the movement may travel far enough to be worth
// recording in a jump list.
func (m Movement) IsJump() bool {
	switch m.Kind {
	case Line, Offset, DocumentStart, DocumentEnd, ParagraphForward, ParagraphBackward, MatchPairs:
		return true
	}
	return false
}

// IsInclusive reports whether an operator applied over the movement
// includes the character at the destination.
func (m Movement) IsInclusive() bool {
	switch m.Kind {
	case WordEndForward, NextUnmatched, PreviousUnmatched, MatchPairs:
		return true
	}
	return false
}

// UpdateIndex moves index in a list of length items, as used by
// completion and picker lists. With modulo the index wraps around;
// otherwise it clamps to the list bounds.
func (m Movement) UpdateIndex(index, length, count int, modulo bool) int {
	if length <= 0 {
		return 0
	}
	last := length - 1
	count = max(count, 1)
	index = min(max(index, 0), last)

	switch m.Kind {
	case Up, Left:
		if modulo {
			return ((index-count)%length + length) % length
		}
		return max(index-count, 0)
	case Down, Right:
		if modulo {
			return (index + count) % length
		}
		return min(index+count, last)
	case DocumentStart:
		return 0
	case DocumentEnd:
		return last
	case Line:
		return m.Line.resolve(length)
	case Offset:
		return min(max(m.Offset, 0), last)
	}
	return index
}
