// Package movement resolves cursor movements.
//
// A Movement names where a cursor should go: a grapheme left or right, a
// line up or down, the next word, the bracket enclosing the cursor. A
// Resolver turns a movement into offsets using three read-only providers:
// Metrics for lines, columns and graphemes, WordBoundaries for words and
// BracketMatcher for brackets. The package never changes text.
//
// Vertical movement remembers a sticky column in the region's Horiz hint,
// so moving down through a short line and back up returns to the column
// the cursor started in:
//
//	r := movement.NewResolver(snapshot)
//	region = r.MoveRegion(region, movement.MoveDown, 1, false, false)
//	region = r.MoveRegion(region, movement.MoveUp, 1, false, false)
//
// Movement also drives list cursors through UpdateIndex, which wraps or
// clamps an index the way Up and Down move through lines.
package movement
