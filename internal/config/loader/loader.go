// Package loader reads configuration sources into generic maps.
//
// Each source (a TOML file, a YAML file, the environment) produces a
// map[string]any keyed by section and setting name. Maps are layered with
// DeepMerge, later sources overriding earlier ones, before the result is
// decoded into a typed configuration.
package loader

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader is the interface for configuration sources.
type Loader interface {
	// Load reads the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// ReaderLoader is implemented by loaders that parse an io.Reader.
type ReaderLoader interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is an abstraction for file reads, so tests can use an
// in-memory file system.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForFile returns a loader for path chosen by its extension: .toml for
// TOML and .yaml or .yml for YAML.
func ForFile(fsys FileSystem, path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}
}

// readFile reads path, mapping a missing file to nil data and no error.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
