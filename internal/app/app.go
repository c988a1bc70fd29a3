// Package app ties the editing core to its configuration and logging and
// keeps the registry of open documents.
package app

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/config/watcher"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/delta"
)

// Application holds the configuration, the logger and every open document.
// It is safe for concurrent use.
type Application struct {
	mu sync.RWMutex

	cfg    *config.Config
	logger *Logger

	documents map[uuid.UUID]*Document
	paths     map[string]uuid.UUID
	order     []uuid.UUID
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the application's logger.
func WithLogger(l *Logger) Option {
	return func(app *Application) {
		if l != nil {
			app.logger = l
		}
	}
}

// New creates an application for cfg. A nil cfg uses config.Default.
func New(cfg *config.Config, opts ...Option) *Application {
	if cfg == nil {
		cfg = config.Default()
	}
	app := &Application{
		cfg:       cfg,
		documents: make(map[uuid.UUID]*Document),
		paths:     make(map[string]uuid.UUID),
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = GetLogger()
	}
	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	return app
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Config returns the current configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// ApplyConfig makes cfg current. The log level and read-only mode apply to
// open documents at once; tab width and undo limits apply to documents
// opened afterwards.
func (app *Application) ApplyConfig(cfg *config.Config) {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.cfg = cfg
	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	for _, doc := range app.documents {
		doc.Engine.SetReadOnly(cfg.Editor.ReadOnly)
	}
}

// WatchConfig reloads the configuration from l whenever its files change
// and applies it. Failed reloads are logged and leave the current
// configuration in place. The caller stops the returned watcher.
func (app *Application) WatchConfig(l *config.Loader, opts ...watcher.Option) (*watcher.Watcher, error) {
	log := app.logger.WithComponent("config")
	return l.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			log.Warn("reload failed: %v", err)
			return
		}
		app.ApplyConfig(cfg)
		log.Info("configuration reloaded")
	}, opts...)
}

// engineOptions returns the options for a new document's engine. The
// caller holds app.mu.
func (app *Application) engineOptions() []engine.Option {
	return append(app.cfg.EngineOptions(),
		engine.WithLogger(app.logger.WithComponent("engine")),
	)
}

// Open opens the file at path. A file that is already open returns the
// existing document.
func (app *Application) Open(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if id, ok := app.paths[absPath]; ok {
		return app.documents[id], nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, NewOperationError("open", absPath, err)
	}

	doc := NewDocument(absPath, content, app.engineOptions()...)
	app.addLocked(doc)
	app.logger.WithField("doc", doc.ID).Info("opened %s (%d bytes)", absPath, len(content))
	return doc, nil
}

// OpenString opens a scratch document holding content.
func (app *Application) OpenString(name, content string) *Document {
	app.mu.Lock()
	defer app.mu.Unlock()

	doc := NewScratchDocument(name, content, app.engineOptions()...)
	app.addLocked(doc)
	app.logger.WithField("doc", doc.ID).Debug("opened scratch %s", doc.Name)
	return doc
}

func (app *Application) addLocked(doc *Document) {
	app.documents[doc.ID] = doc
	if doc.Path != "" {
		app.paths[doc.Path] = doc.ID
	}
	app.order = append(app.order, doc.ID)
}

// Get returns a document by id.
func (app *Application) Get(id uuid.UUID) (*Document, bool) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	doc, ok := app.documents[id]
	return doc, ok
}

// GetByPath returns the open document for path.
func (app *Application) GetByPath(path string) (*Document, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	app.mu.RLock()
	defer app.mu.RUnlock()
	id, ok := app.paths[absPath]
	if !ok {
		return nil, false
	}
	return app.documents[id], true
}

// Close closes a document. A modified document is only closed with force.
func (app *Application) Close(id uuid.UUID, force bool) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	doc, ok := app.documents[id]
	if !ok {
		return NewOperationError("close", id.String(), ErrDocumentNotFound)
	}
	if doc.IsModified() && !force {
		return NewOperationError("close", doc.Name, ErrUnsavedChanges).WithContext("force discards them")
	}

	delete(app.documents, id)
	if doc.Path != "" {
		delete(app.paths, doc.Path)
	}
	for i, oid := range app.order {
		if oid == id {
			app.order = append(app.order[:i], app.order[i+1:]...)
			break
		}
	}
	app.logger.WithField("doc", id).Debug("closed %s", doc.Name)
	return nil
}

// All returns all open documents in the order they were opened.
func (app *Application) All() []*Document {
	app.mu.RLock()
	defer app.mu.RUnlock()

	docs := make([]*Document, 0, len(app.order))
	for _, id := range app.order {
		docs = append(docs, app.documents[id])
	}
	return docs
}

// Count returns the number of open documents.
func (app *Application) Count() int {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return len(app.documents)
}

// DirtyDocuments returns all documents with unsaved changes.
func (app *Application) DirtyDocuments() []*Document {
	var dirty []*Document
	for _, doc := range app.All() {
		if doc.IsModified() {
			dirty = append(dirty, doc)
		}
	}
	return dirty
}

// Save writes a document to its file.
func (app *Application) Save(id uuid.UUID) error {
	doc, ok := app.Get(id)
	if !ok {
		return NewOperationError("save", id.String(), ErrDocumentNotFound)
	}
	if err := doc.Save(); err != nil {
		return err
	}
	app.logger.WithField("doc", id).Info("saved %s", doc.Path)
	return nil
}

// SaveAll saves every modified document with a path and returns every
// failure.
func (app *Application) SaveAll() error {
	var errs ErrorList
	for _, doc := range app.DirtyDocuments() {
		if doc.IsScratch() {
			continue
		}
		errs.Add(app.Save(doc.ID))
	}
	return errs.AsError()
}

// Reload folds the file's current content into a document. See
// Document.Reload.
func (app *Application) Reload(id uuid.UUID) (*delta.Delta, error) {
	doc, ok := app.Get(id)
	if !ok {
		return nil, NewOperationError("reload", id.String(), ErrDocumentNotFound)
	}
	d, err := doc.Reload()
	if err != nil {
		return nil, err
	}
	if d != nil {
		app.logger.WithField("doc", id).Debug("reloaded %s at revision %d", doc.Path, doc.Engine.Revision())
	}
	return d, nil
}

// ReloadFunc receives the outcome of a reload triggered by Follow. The
// delta is nil when the file did not change.
type ReloadFunc func(doc *Document, d *delta.Delta, err error)

// Follow reloads a document whenever its file is written or recreated and
// reports each reload to fn. The caller stops the returned watcher.
func (app *Application) Follow(id uuid.UUID, fn ReloadFunc, opts ...watcher.Option) (*watcher.Watcher, error) {
	doc, ok := app.Get(id)
	if !ok {
		return nil, NewOperationError("follow", id.String(), ErrDocumentNotFound)
	}
	if doc.IsScratch() {
		return nil, NewOperationError("follow", doc.Name, ErrNoPath)
	}

	w, err := watcher.New(opts...)
	if err != nil {
		return nil, NewOperationError("follow", doc.Path, err)
	}
	if err := w.Watch(doc.Path); err != nil {
		_ = w.Stop()
		return nil, NewOperationError("follow", doc.Path, err)
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op != watcher.OpWrite && ev.Op != watcher.OpCreate {
			return
		}
		d, err := app.Reload(id)
		if fn != nil {
			fn(doc, d, err)
		}
	})
	w.Start()
	return w, nil
}
