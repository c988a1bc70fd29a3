package engine

import (
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/tracking"
)

// Default configuration values.
const (
	DefaultTabWidth     = buffer.DefaultTabWidth
	DefaultMaxChanges   = tracking.DefaultMaxChanges
	DefaultMaxRevisions = tracking.DefaultMaxRevisions
)

// Logger is the logging the engine needs. *app.Logger implements it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the tab width used for display columns.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithMaxUndoGroups bounds how many undo groups Undo can reach. Zero means
// unbounded.
func WithMaxUndoGroups(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxUndoGroups = n
		}
	}
}

// WithMaxChanges sets the maximum number of tracked changes.
func WithMaxChanges(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxChanges = n
		}
	}
}

// WithMaxRevisions sets the maximum number of stored revisions.
func WithMaxRevisions(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxRevisions = n
		}
	}
}

// WithReadOnly creates a read-only engine. Edits, undo and redo return
// ErrReadOnly or nil; LoadContent still works.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithListener sets the listener that gates and observes changes.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		if l != nil {
			e.listener = l
		}
	}
}

// WithLogger sets the logger for commit, rejection and undo messages.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWordSeparators sets extra runes that end a word for word movements.
func WithWordSeparators(seps string) Option {
	return func(e *Engine) {
		e.wordSeparators = seps
	}
}
