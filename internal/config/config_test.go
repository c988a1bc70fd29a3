package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/config/watcher"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/find"
	"github.com/dshills/inkwell/internal/engine/history"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, engine.DefaultTabWidth, cfg.Editor.TabWidth)
	assert.Equal(t, 0, cfg.Editor.MaxUndoGroups)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := NewLoader(WithoutEnv()).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	tomlPath := writeFile(t, dir, "config.toml", `
[editor]
tabWidth = 8
maxUndoGroups = 20

[find]
caseSensitive = true
`)
	yamlPath := writeFile(t, dir, "config.yaml", `
editor:
  tabWidth: 2
  wordSeparators: "-"
logging:
  level: debug
`)
	t.Setenv("INKWELL_FIND_REGEX", "true")
	t.Setenv("INKWELL_LOG_LEVEL", "warn")

	cfg, err := NewLoader(WithFiles(tomlPath, yamlPath)).Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Editor.TabWidth, "YAML overrides TOML")
	assert.Equal(t, 20, cfg.Editor.MaxUndoGroups, "TOML value kept")
	assert.Equal(t, "-", cfg.Editor.WordSeparators)
	assert.True(t, cfg.Find.CaseSensitive)
	assert.True(t, cfg.Find.Regex, "environment layer applied")
	assert.Equal(t, "warn", cfg.Logging.Level, "environment overrides files")
}

func TestLoadMissingFilesSkipped(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewLoader(
		WithoutEnv(),
		WithFiles(filepath.Join(dir, "config.toml"), filepath.Join(dir, "config.yaml")),
	).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "parse error",
			file:    "bad.toml",
			content: "[editor\n",
			check: func(t *testing.T, err error) {
				var perr *ParseError
				assert.True(t, errors.As(err, &perr), "got %v", err)
			},
		},
		{
			name:    "type mismatch",
			file:    "type.yaml",
			content: "editor:\n  tabWidth: wide\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrTypeMismatch)
			},
		},
		{
			name:    "out of range",
			file:    "range.yaml",
			content: "editor:\n  tabWidth: 0\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrValidationFailed)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "editor.tabWidth", verr.Path)
			},
		},
		{
			name:    "bad log level",
			file:    "level.toml",
			content: "[logging]\nlevel = \"loud\"\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrValidationFailed)
			},
		},
		{
			name:    "unsupported format",
			file:    "config.json",
			content: "{}",
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := NewLoader(WithoutEnv(), WithFiles(path)).Load()
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Editor.MaxUndoGroups = -1
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "editor.maxUndoGroups")

	cfg = Default()
	cfg.Logging.Level = "DEBUG"
	assert.NoError(t, cfg.Validate(), "levels are case-insensitive")
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Editor.ReadOnly = true
	cfg.Editor.MaxUndoGroups = 1

	e := engine.New(append(cfg.EngineOptions(), engine.WithContent("abc"))...)
	assert.True(t, e.IsReadOnly())
	_, err := e.EditMultiple([]engine.Edit{buffer.NewInsert(0, "x")}, history.EditInsertChars)
	assert.ErrorIs(t, err, engine.ErrReadOnly)
}

func TestFindOptions(t *testing.T) {
	cfg := Default()
	cfg.Find.WholeWords = true
	cfg.Find.Regex = true
	assert.Equal(t, find.Options{WholeWords: true, Regex: true}, cfg.FindOptions())
}

func TestLoaderWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "editor:\n  tabWidth: 2\n")

	l := NewLoader(WithoutEnv(), WithFiles(path))
	reloaded := make(chan *Config, 4)
	w, err := l.Watch(func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	}, watcher.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("editor:\n  tabWidth: 6\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 6, cfg.Editor.TabWidth)
	case <-time.After(2 * time.Second):
		t.Fatal("configuration was not reloaded")
	}
}
