package buffer

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/rope"
)

// InvalLines describes the lines replaced by a change: InvalCount lines
// starting at StartLine were replaced by NewCount lines.
type InvalLines struct {
	StartLine  int
	InvalCount int
	NewCount   int
}

// String returns a human-readable representation of the range.
func (il InvalLines) String() string {
	return fmt.Sprintf("lines %d+%d -> +%d", il.StartLine, il.InvalCount, il.NewCount)
}

// lineCache holds the line count and the longest line.
type lineCache struct {
	numLines int
	maxLen   int
	maxLine  int
}

// rescan recomputes everything from text.
func (c *lineCache) rescan(text rope.Rope) {
	c.numLines = text.LineCount()
	c.maxLen, c.maxLine = 0, 0
	for line := 0; line < c.numLines; line++ {
		if n := text.LineLen(line); n > c.maxLen {
			c.maxLen, c.maxLine = n, line
		}
	}
}

// update refreshes the cache after a change. Only the new lines are
// scanned unless the cached longest line was among the replaced ones.
func (c *lineCache) update(text rope.Rope, inval InvalLines) {
	c.numLines = text.LineCount()

	if c.maxLine >= inval.StartLine && c.maxLine <= inval.StartLine+inval.InvalCount {
		c.rescan(text)
		return
	}

	maxLen, maxLine := 0, 0
	for line := inval.StartLine; line < inval.StartLine+inval.NewCount; line++ {
		if n := text.LineLen(line); n > maxLen {
			maxLen, maxLine = n, line
		}
	}
	if maxLen > c.maxLen {
		c.maxLen, c.maxLine = maxLen, maxLine
	} else if c.maxLine >= inval.StartLine {
		c.maxLine += inval.NewCount - inval.InvalCount
	}
}
