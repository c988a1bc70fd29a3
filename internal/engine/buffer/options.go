package buffer

// DefaultTabWidth is the tab width used for display columns.
const DefaultTabWidth = 4

// Option is a functional option for configuring a Data.
type Option func(*Data)

// WithTabWidth sets the width of a tab stop for display columns.
func WithTabWidth(width int) Option {
	return func(d *Data) {
		if width > 0 {
			d.tabWidth = width
		}
	}
}

// WithMaxUndoGroups bounds the number of undo groups reachable by Undo.
// Zero means unbounded.
func WithMaxUndoGroups(n int) Option {
	return func(d *Data) {
		if n >= 0 {
			d.maxUndoGroups = n
		}
	}
}
