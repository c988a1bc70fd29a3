package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/delta"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/tracking"
)

// Document is an open text with its editing engine.
type Document struct {
	// ID identifies the document; it is the engine's id.
	ID uuid.UUID

	// Path is the absolute file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// Engine is the text buffer and editing engine.
	Engine *engine.Engine

	// modified is set by every applied change and cleared by Save and
	// Reload.
	modified atomic.Bool
}

// NewDocument creates a document for path holding content.
func NewDocument(path string, content []byte, opts ...engine.Option) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	return newDocument(path, name, engine.New(append(opts, engine.WithContent(string(content)))...))
}

// NewScratchDocument creates a document with no file behind it.
func NewScratchDocument(name, content string, opts ...engine.Option) *Document {
	if name == "" {
		name = "Untitled"
	}
	return newDocument("", name, engine.New(append(opts, engine.WithContent(content))...))
}

func newDocument(path, name string, e *engine.Engine) *Document {
	d := &Document{
		ID:     e.ID(),
		Path:   path,
		Name:   name,
		Engine: e,
	}
	d.SetListener(nil)
	return d
}

// SetListener installs l on the engine next to the document's own
// modification tracking. A nil l removes the previous one.
func (d *Document) SetListener(l engine.Listener) {
	mark := engine.ListenerFuncs{
		Applied: func(*buffer.Snapshot, *delta.Delta) { d.modified.Store(true) },
	}
	if l == nil {
		d.Engine.SetListener(mark)
		return
	}
	d.Engine.SetListener(engine.Listeners{l, mark})
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified.Load()
}

// SetModified sets the modified flag.
func (d *Document) SetModified(modified bool) {
	d.modified.Store(modified)
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Content returns the full document content.
func (d *Document) Content() string {
	return d.Engine.Text()
}

// Save writes the content to Path and clears the modified flag.
func (d *Document) Save() error {
	if d.IsScratch() {
		return NewOperationError("save", d.Name, ErrNoPath)
	}
	if err := os.WriteFile(d.Path, []byte(d.Content()), 0o644); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	d.SetModified(false)
	return nil
}

// Reload reads Path again and folds the difference into the engine as one
// undoable edit, so the selection and the history survive. A read-only
// engine replaces its content instead. It returns nil when the file is
// unchanged.
func (d *Document) Reload() (*delta.Delta, error) {
	if d.IsScratch() {
		return nil, NewOperationError("reload", d.Name, ErrNoPath)
	}
	content, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, NewOperationError("reload", d.Path, err).
			WithContext(fmt.Sprintf("buffer kept at revision %d", d.Engine.Revision()))
	}

	edits := tracking.EditsFromDiff(d.Content(), string(content))
	if len(edits) == 0 {
		return nil, nil
	}

	var dl *delta.Delta
	if d.Engine.IsReadOnly() {
		before := d.Engine.Len()
		d.Engine.LoadContent(string(content))
		dl = delta.Simple(0, before, string(content), before)
	} else {
		d.Engine.BreakUndoGroup()
		dl, err = d.Engine.EditMultiple(edits, history.EditOther)
		if err != nil {
			return nil, NewOperationError("reload", d.Path, err).
				WithContext(fmt.Sprintf("%d edits", len(edits)))
		}
	}
	d.SetModified(false)
	return dl, nil
}
