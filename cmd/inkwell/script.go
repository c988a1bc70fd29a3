package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/find"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/movement"
)

var (
	// ErrInvalidStep is returned for a step with no action or more than one.
	ErrInvalidStep = errors.New("step must have exactly one action")

	// ErrUnsupportedScript is returned for a script file that is neither
	// YAML nor TOML.
	ErrUnsupportedScript = errors.New("unsupported script format")
)

// Script is an edit script: the initial text and the steps run on it.
//
//	text: "aaaaa"
//	steps:
//	  - carets: [0, 5]
//	  - insert: "X"
//	  - undo: 1
type Script struct {
	Text  string `yaml:"text" toml:"text"`
	Steps []Step `yaml:"steps" toml:"steps"`
}

// Step is one action of a script. Exactly one action field is set; Type
// qualifies Edits and Insert.
type Step struct {
	Edits    []ScriptEdit  `yaml:"edits,omitempty" toml:"edits,omitempty"`
	Insert   *string       `yaml:"insert,omitempty" toml:"insert,omitempty"`
	Type     string        `yaml:"type,omitempty" toml:"type,omitempty"`
	Carets   []int         `yaml:"carets,omitempty" toml:"carets,omitempty"`
	Select   []ScriptRange `yaml:"select,omitempty" toml:"select,omitempty"`
	Move     *MoveStep     `yaml:"move,omitempty" toml:"move,omitempty"`
	Find     *FindStep     `yaml:"find,omitempty" toml:"find,omitempty"`
	FindNext *FindNextStep `yaml:"findNext,omitempty" toml:"findNext,omitempty"`
	Undo     int           `yaml:"undo,omitempty" toml:"undo,omitempty"`
	Redo     int           `yaml:"redo,omitempty" toml:"redo,omitempty"`
	Break    bool          `yaml:"break,omitempty" toml:"break,omitempty"`
	Snapshot string        `yaml:"snapshot,omitempty" toml:"snapshot,omitempty"`
}

// ScriptRange is a byte range. Start may exceed End for a backward
// selection.
type ScriptRange struct {
	Start int `yaml:"start" toml:"start"`
	End   int `yaml:"end" toml:"end"`
}

// ScriptEdit replaces a byte range with text.
type ScriptEdit struct {
	Start int    `yaml:"start" toml:"start"`
	End   int    `yaml:"end" toml:"end"`
	Text  string `yaml:"text" toml:"text"`
}

// MoveStep moves every region of the selection.
type MoveStep struct {
	// Movement is a movement name such as "down", "word_forward" or
	// "line:3".
	Movement       string `yaml:"movement" toml:"movement"`
	Count          int    `yaml:"count,omitempty" toml:"count,omitempty"`
	Modify         bool   `yaml:"modify,omitempty" toml:"modify,omitempty"`
	IncludeNewline bool   `yaml:"includeNewline,omitempty" toml:"includeNewline,omitempty"`
}

// FindStep starts a search. Unset options take the configured defaults.
type FindStep struct {
	Pattern       string `yaml:"pattern" toml:"pattern"`
	CaseSensitive *bool  `yaml:"caseSensitive,omitempty" toml:"caseSensitive,omitempty"`
	WholeWords    *bool  `yaml:"wholeWords,omitempty" toml:"wholeWords,omitempty"`
	Regex         *bool  `yaml:"regex,omitempty" toml:"regex,omitempty"`
}

// FindNextStep selects the next match of the active search.
type FindNextStep struct {
	Reverse bool `yaml:"reverse,omitempty" toml:"reverse,omitempty"`
	Wrap    bool `yaml:"wrap,omitempty" toml:"wrap,omitempty"`
}

// loadScript reads a script from path, or from stdin when path is "-".
// The format follows the extension; stdin is read as YAML.
func loadScript(path string, stdin io.Reader) (*Script, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	format := strings.ToLower(filepath.Ext(path))
	if path == "-" {
		format = ".yaml"
	}
	return parseScript(data, format)
}

// parseScript decodes a script. Unknown fields are errors so typos in step
// names do not pass silently.
func parseScript(data []byte, format string) (*Script, error) {
	var s Script
	switch format {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScript, format)
	}
	return &s, nil
}

// Run applies every step to e. Each step is reported to trace when it is
// not nil.
func (s *Script) Run(e *engine.Engine, findDefaults find.Options, trace io.Writer) error {
	for i, step := range s.Steps {
		if err := step.apply(e, findDefaults); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.name(), err)
		}
		if trace != nil {
			fmt.Fprintf(trace, "step %d: %-9s revision %d, %d bytes, selection %v\n",
				i+1, step.name(), e.Revision(), e.Len(), e.Selection())
		}
	}
	return nil
}

// name returns the name of the step's action, or "" when the step does
// not have exactly one.
func (st *Step) name() string {
	var names []string
	if len(st.Edits) > 0 {
		names = append(names, "edits")
	}
	if st.Insert != nil {
		names = append(names, "insert")
	}
	if len(st.Carets) > 0 {
		names = append(names, "carets")
	}
	if len(st.Select) > 0 {
		names = append(names, "select")
	}
	if st.Move != nil {
		names = append(names, "move")
	}
	if st.Find != nil {
		names = append(names, "find")
	}
	if st.FindNext != nil {
		names = append(names, "findNext")
	}
	if st.Undo > 0 {
		names = append(names, "undo")
	}
	if st.Redo > 0 {
		names = append(names, "redo")
	}
	if st.Break {
		names = append(names, "break")
	}
	if st.Snapshot != "" {
		names = append(names, "snapshot")
	}
	if len(names) != 1 {
		return ""
	}
	return names[0]
}

func (st *Step) editType(def history.EditType) (history.EditType, error) {
	if st.Type == "" {
		return def, nil
	}
	return history.ParseEditType(st.Type)
}

func (st *Step) apply(e *engine.Engine, findDefaults find.Options) error {
	switch st.name() {
	case "edits":
		typ, err := st.editType(history.EditOther)
		if err != nil {
			return err
		}
		edits := make([]engine.Edit, len(st.Edits))
		for i, ed := range st.Edits {
			edits[i] = buffer.NewReplace(ed.Start, ed.End, ed.Text)
		}
		_, err = e.EditMultiple(edits, typ)
		return err

	case "insert":
		typ, err := st.editType(history.EditInsertChars)
		if err != nil {
			return err
		}
		_, err = e.EditSelection(*st.Insert, typ)
		return err

	case "carets":
		regions := make([]cursor.SelRegion, len(st.Carets))
		for i, off := range st.Carets {
			regions[i] = cursor.Caret(off)
		}
		e.SetSelection(cursor.FromRegions(regions...))

	case "select":
		regions := make([]cursor.SelRegion, len(st.Select))
		for i, r := range st.Select {
			regions[i] = cursor.NewRegion(r.Start, r.End)
		}
		e.SetSelection(cursor.FromRegions(regions...))

	case "move":
		m, err := movement.Parse(st.Move.Movement)
		if err != nil {
			return err
		}
		e.Move(m, engine.MoveOptions{
			Count:          st.Move.Count,
			Modify:         st.Move.Modify,
			IncludeNewline: st.Move.IncludeNewline,
		})

	case "find":
		opts := findDefaults
		if st.Find.CaseSensitive != nil {
			opts.CaseSensitive = *st.Find.CaseSensitive
		}
		if st.Find.WholeWords != nil {
			opts.WholeWords = *st.Find.WholeWords
		}
		if st.Find.Regex != nil {
			opts.Regex = *st.Find.Regex
		}
		return e.SetFind(st.Find.Pattern, opts)

	case "findNext":
		e.FindNext(st.FindNext.Reverse, st.FindNext.Wrap)

	case "undo":
		for range st.Undo {
			if e.Undo() == nil {
				break
			}
		}

	case "redo":
		for range st.Redo {
			if e.Redo() == nil {
				break
			}
		}

	case "break":
		e.BreakUndoGroup()

	case "snapshot":
		e.CreateSnapshot(st.Snapshot)

	default:
		return ErrInvalidStep
	}
	return nil
}
