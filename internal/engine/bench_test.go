package engine

import (
	"strings"
	"testing"

	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/find"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/movement"
	"github.com/dshills/inkwell/internal/engine/tracking"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeEngine(b *testing.B, lines int) *Engine {
	b.Helper()
	line := strings.Repeat("x", 80) + "\n"
	return New(WithContent(strings.Repeat(line, lines)))
}

// ============================================================================
// Read Operation Benchmarks
// ============================================================================

func BenchmarkEngineText(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Text()
	}
}

func BenchmarkEngineSlice(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Slice(1000, 2000)
	}
}

func BenchmarkEngineLineOfOffset(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.LineOfOffset(400000)
	}
}

func BenchmarkEngineSnapshot(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Snapshot()
	}
}

// ============================================================================
// Write Operation Benchmarks
// ============================================================================

func BenchmarkEngineInsert(b *testing.B) {
	e := New()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.EditMultiple([]Edit{buffer.NewInsert(e.Len(), "x")}, history.EditInsertChars)
	}
}

func BenchmarkEngineInsertMiddle(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.EditMultiple([]Edit{buffer.NewInsert(e.Len()/2, "x")}, history.EditInsertChars)
	}
}

func BenchmarkEngineMultiCursorEdit(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	sel := cursor.NewSelection()
	for line := 0; line < 1000; line += 10 {
		sel.AddRegion(cursor.Caret(e.OffsetOfLine(line)))
	}
	e.SetSelection(sel)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.EditSelection("x", history.EditInsertChars)
	}
}

func BenchmarkEngineUndoRedo(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	for i := range 100 {
		e.EditMultiple([]Edit{buffer.NewInsert(i*81, "y")}, history.EditOther)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.Undo()
		e.Redo()
	}
}

// ============================================================================
// Movement, Find and Tracking Benchmarks
// ============================================================================

func BenchmarkEngineMoveDown(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.Move(movement.MoveDown, MoveOptions{})
		if e.LineOfOffset(e.Selection().MaxOffset()) >= 9999 {
			e.SetCaret(0)
		}
	}
}

func BenchmarkEngineFindAfterEdit(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	e.SetFind("xxxx", find.Options{})
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.EditMultiple([]Edit{buffer.NewInsert(40000, "x")}, history.EditInsertChars)
	}
}

func BenchmarkEngineDiffSinceSnapshot(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	id := e.CreateSnapshot("base")
	for i := range 10 {
		e.EditMultiple([]Edit{buffer.NewInsert(i*810, "changed ")}, history.EditOther)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.DiffSinceSnapshot(id, tracking.DefaultDiffOptions())
	}
}
