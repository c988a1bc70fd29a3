package movement

import "github.com/dshills/inkwell/internal/engine/cursor"

// Resolver applies movements to offsets, regions and selections. It holds
// no state of its own beyond its providers and never modifies text.
type Resolver struct {
	Metrics  Metrics
	Words    WordBoundaries
	Brackets BracketMatcher
}

// Document is the read interface a Resolver built by NewResolver needs.
// *buffer.Snapshot implements it.
type Document interface {
	Metrics
	Slice(start, end int) string
}

// NewResolver returns a resolver over doc using the default text-scanning
// word and bracket providers.
func NewResolver(doc Document) *Resolver {
	return &Resolver{
		Metrics:  doc,
		Words:    NewTextWords(doc),
		Brackets: NewTextBrackets(doc),
	}
}

// MoveSelection moves every region of sel and merges the results.
func (r *Resolver) MoveSelection(sel *cursor.Selection, m Movement, count int, includeNewline, modify bool) *cursor.Selection {
	out := cursor.NewSelection()
	for _, region := range sel.Regions() {
		out.AddRegion(r.MoveRegion(region, m, count, includeNewline, modify))
	}
	return out
}

// MoveRegion moves the End of region. Without modify the result is a caret
// at the new position; with modify, Start is kept and the selection
// extends. A selection moved Left or Up without modify first collapses to
// its lower side, and Right or Down to its upper side; the collapse uses
// up one step of count.
func (r *Resolver) MoveRegion(region cursor.SelRegion, m Movement, count int, includeNewline, modify bool) cursor.SelRegion {
	count = max(count, 1)
	if !modify && !region.IsCaret() {
		switch m.Kind {
		case Left, Up:
			region = cursor.Caret(region.Min()).WithHoriz(region.Horiz)
			count--
		case Right, Down:
			region = cursor.Caret(region.Max()).WithHoriz(region.Horiz)
			count--
		}
	}
	if count == 0 {
		return region
	}

	end, horiz := r.MoveOffset(region.End, region.Horiz, m, count, includeNewline)
	start := end
	if modify {
		start = region.Start
	}
	return cursor.NewRegion(start, end).WithHoriz(horiz)
}

// MoveOffset moves offset count times and returns the new offset and the
// sticky column to remember. Left and Right stay on the current line
// unless includeNewline is set.
func (r *Resolver) MoveOffset(offset int, horiz *cursor.ColPosition, m Movement, count int, includeNewline bool) (int, *cursor.ColPosition) {
	mt := r.Metrics
	count = max(count, 1)
	offset = min(max(offset, 0), mt.Len())
	line := mt.LineOfOffset(offset)
	lastLine := max(mt.NumLines()-1, 0)

	switch m.Kind {
	case Left:
		limit := 0
		if !includeNewline {
			limit = mt.OffsetOfLine(line)
		}
		return mt.PrevGraphemeOffset(offset, count, limit), nil

	case Right:
		limit := mt.Len()
		if !includeNewline {
			limit = mt.LineEndOffset(line)
		}
		return mt.NextGraphemeOffset(offset, count, limit), nil

	case Up:
		horiz = r.stickyColumn(offset, horiz)
		return r.lineHorizCol(max(line-count, 0), horiz), horiz

	case Down:
		horiz = r.stickyColumn(offset, horiz)
		return r.lineHorizCol(min(line+count, lastLine), horiz), horiz

	case Line:
		horiz = r.stickyColumn(offset, horiz)
		return r.lineHorizCol(m.Line.resolve(mt.NumLines()), horiz), horiz

	case DocumentStart:
		return 0, cursor.ColStartPosition()

	case DocumentEnd:
		return mt.Len(), cursor.ColEndPosition()

	case StartOfLine:
		return mt.OffsetOfLine(line), cursor.ColStartPosition()

	case EndOfLine:
		return mt.LineEndOffset(line), cursor.ColEndPosition()

	case FirstNonBlank:
		return mt.FirstNonBlank(line), cursor.ColFirstNonBlankPosition()

	case Offset:
		return min(max(m.Offset, 0), mt.Len()), nil

	case WordForward:
		return repeat(offset, count, r.Words.NextWordStart), nil

	case WordBackward:
		return repeat(offset, count, r.Words.PrevWordStart), nil

	case WordEndForward:
		return repeat(offset, count, r.Words.NextWordEnd), nil

	case NextUnmatched:
		return repeatFound(offset, count, func(o int) (int, bool) {
			return r.Brackets.NextUnmatched(o, m.Char)
		}), nil

	case PreviousUnmatched:
		return repeatFound(offset, count, func(o int) (int, bool) {
			return r.Brackets.PreviousUnmatched(o, m.Char)
		}), nil

	case MatchPairs:
		if match, ok := r.Brackets.MatchingPair(offset); ok {
			return match, nil
		}
		return offset, nil

	case ParagraphForward:
		for i := 0; i < count && line < lastLine; i++ {
			for line < lastLine && !r.isBlankLine(line) {
				line++
			}
			for line < lastLine && r.isBlankLine(line) {
				line++
			}
		}
		return mt.OffsetOfLine(line), nil

	case ParagraphBackward:
		for i := 0; i < count && line > 0; i++ {
			for line > 0 && r.isBlankLine(line) {
				line--
			}
			for line > 0 && !r.isBlankLine(line) {
				line--
			}
		}
		return mt.OffsetOfLine(line), nil
	}
	return offset, horiz
}

// stickyColumn returns horiz, or the display column of offset when no
// column is remembered yet.
func (r *Resolver) stickyColumn(offset int, horiz *cursor.ColPosition) *cursor.ColPosition {
	if horiz != nil {
		return horiz
	}
	return cursor.Col(r.Metrics.ColOfOffset(offset))
}

// lineHorizCol resolves horiz on line.
func (r *Resolver) lineHorizCol(line int, horiz *cursor.ColPosition) int {
	mt := r.Metrics
	switch horiz.Kind {
	case cursor.ColStart:
		return mt.OffsetOfLine(line)
	case cursor.ColEnd:
		return mt.LineEndOffset(line)
	case cursor.ColFirstNonBlank:
		return mt.FirstNonBlank(line)
	}
	return mt.OffsetOfLineCol(line, horiz.Col)
}

func (r *Resolver) isBlankLine(line int) bool {
	return r.Metrics.FirstNonBlank(line) == r.Metrics.LineEndOffset(line)
}

func repeat(offset, count int, step func(int) int) int {
	for range count {
		next := step(offset)
		if next == offset {
			break
		}
		offset = next
	}
	return offset
}

func repeatFound(offset, count int, step func(int) (int, bool)) int {
	for range count {
		next, ok := step(offset)
		if !ok {
			break
		}
		offset = next
	}
	return offset
}
