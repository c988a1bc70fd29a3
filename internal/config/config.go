package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/inkwell/internal/config/loader"
	"github.com/dshills/inkwell/internal/config/watcher"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/find"
)

// Config holds every setting of the editing core.
type Config struct {
	Editor  EditorConfig  `yaml:"editor" toml:"editor"`
	Find    FindConfig    `yaml:"find" toml:"find"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// EditorConfig holds buffer and movement settings.
type EditorConfig struct {
	// TabWidth is the display width of a tab, used for column positions.
	TabWidth int `yaml:"tabWidth" toml:"tabWidth"`
	// MaxUndoGroups bounds how many undo groups are reachable. Zero means
	// unbounded.
	MaxUndoGroups int `yaml:"maxUndoGroups" toml:"maxUndoGroups"`
	// WordSeparators lists extra runes that end a word.
	WordSeparators string `yaml:"wordSeparators" toml:"wordSeparators"`
	// ReadOnly opens documents without allowing edits.
	ReadOnly bool `yaml:"readOnly" toml:"readOnly"`
}

// FindConfig holds the default search options.
type FindConfig struct {
	CaseSensitive bool `yaml:"caseSensitive" toml:"caseSensitive"`
	WholeWords    bool `yaml:"wholeWords" toml:"wholeWords"`
	Regex         bool `yaml:"regex" toml:"regex"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level" toml:"level"`
}

// MaxTabWidth is the largest accepted tab width.
const MaxTabWidth = 32

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth: engine.DefaultTabWidth,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns the first failure as a
// *ValidationError.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > MaxTabWidth {
		return &ValidationError{
			Path:    "editor.tabWidth",
			Message: fmt.Sprintf("must be between 1 and %d", MaxTabWidth),
			Value:   c.Editor.TabWidth,
		}
	}
	if c.Editor.MaxUndoGroups < 0 {
		return &ValidationError{
			Path:    "editor.maxUndoGroups",
			Message: "must not be negative",
			Value:   c.Editor.MaxUndoGroups,
		}
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return &ValidationError{
			Path:    "logging.level",
			Message: "must be one of " + strings.Join(logLevels, ", "),
			Value:   c.Logging.Level,
		}
	}
	return nil
}

// EngineOptions returns the engine options for the editor settings.
func (c *Config) EngineOptions() []engine.Option {
	opts := []engine.Option{
		engine.WithTabWidth(c.Editor.TabWidth),
		engine.WithMaxUndoGroups(c.Editor.MaxUndoGroups),
		engine.WithWordSeparators(c.Editor.WordSeparators),
	}
	if c.Editor.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	return opts
}

// FindOptions returns the default search options.
func (c *Config) FindOptions() find.Options {
	return find.Options{
		CaseSensitive: c.Find.CaseSensitive,
		WholeWords:    c.Find.WholeWords,
		Regex:         c.Find.Regex,
	}
}

// toMap converts c into the generic form the loaders produce.
func (c *Config) toMap() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// decode converts a merged configuration map into a Config.
func decode(m map[string]any) (*Config, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		var terr *yaml.TypeError
		if errors.As(err, &terr) {
			return nil, fmt.Errorf("%w: %s", ErrTypeMismatch, strings.Join(terr.Errors, "; "))
		}
		return nil, err
	}
	return cfg, nil
}

// DefaultDir returns the user configuration directory for inkwell.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "inkwell")
}

// DefaultFiles returns the configuration files read when none are given:
// config.toml then config.yaml in DefaultDir.
func DefaultFiles() []string {
	dir := DefaultDir()
	if dir == "" {
		return nil
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
	}
}

// Loader reads the configuration layers.
type Loader struct {
	fs        loader.FileSystem
	files     []string
	envPrefix string
	useEnv    bool
}

// LoadOption configures a Loader.
type LoadOption func(*Loader)

// WithFiles sets the configuration files, lowest priority first. Missing
// files are skipped.
func WithFiles(paths ...string) LoadOption {
	return func(l *Loader) {
		l.files = append(l.files, paths...)
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) LoadOption {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithoutEnv disables the environment layer.
func WithoutEnv() LoadOption {
	return func(l *Loader) {
		l.useEnv = false
	}
}

// WithFileSystem sets the file system configuration files are read from.
func WithFileSystem(fs loader.FileSystem) LoadOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// NewLoader creates a configuration loader.
func NewLoader(opts ...LoadOption) *Loader {
	l := &Loader{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		useEnv:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Files returns the configuration files the loader reads.
func (l *Loader) Files() []string {
	return slices.Clone(l.files)
}

// Load reads every layer, merges them over the defaults and returns the
// validated result.
func (l *Loader) Load() (*Config, error) {
	base, err := Default().toMap()
	if err != nil {
		return nil, err
	}

	var layers []loader.Loader
	for _, path := range l.files {
		fl, err := loader.ForFile(l.fs, path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fl)
	}
	if l.useEnv {
		layers = append(layers, loader.NewEnvLoader(l.envPrefix))
	}

	merged, err := loader.Layer(base, layers...)
	if err != nil {
		return nil, err
	}

	cfg, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watch reloads the configuration whenever one of its files changes and
// passes the result to onChange. The returned watcher is running; the
// caller stops it.
func (l *Loader) Watch(onChange func(*Config, error), opts ...watcher.Option) (*watcher.Watcher, error) {
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, err
	}
	for _, path := range l.files {
		if err := w.Watch(path); err != nil {
			_ = w.Stop()
			return nil, fmt.Errorf("watching %s: %w", path, err)
		}
	}
	w.OnChange(func(watcher.Event) {
		onChange(l.Load())
	})
	w.Start()
	return w, nil
}

// Load reads files and the INKWELL_ environment over the defaults.
func Load(files ...string) (*Config, error) {
	return NewLoader(WithFiles(files...)).Load()
}
