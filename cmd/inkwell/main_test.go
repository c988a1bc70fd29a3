package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine to write
// while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	noConfig := filepath.Join(t.TempDir(), "none.toml")

	var out, errOut syncBuffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", noConfig}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReplay(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		script string
		want   string
	}{
		{
			name: "multi caret insert",
			file: "carets.yaml",
			script: `text: aaaaa
steps:
  - carets: [0, 5]
  - insert: X
`,
			want: "XaaaaX",
		},
		{
			name: "undo",
			file: "undo.yaml",
			script: `text: aaaaa
steps:
  - carets: [0, 5]
  - insert: X
  - undo: 1
`,
			want: "aaaaa",
		},
		{
			name: "undo then redo",
			file: "redo.yaml",
			script: `text: ab
steps:
  - edits: [{start: 1, end: 1, text: "-"}]
  - undo: 3
  - redo: 1
`,
			want: "a-b",
		},
		{
			name: "find next and replace",
			file: "find.yaml",
			script: `text: foo bar foo
steps:
  - find: {pattern: foo}
  - findNext: {}
  - insert: baz
`,
			want: "foo bar baz",
		},
		{
			name: "move and insert",
			file: "move.yaml",
			script: `text: hello world
steps:
  - move: {movement: word_forward}
  - insert: "big "
`,
			want: "hello big world",
		},
		{
			name: "toml",
			file: "edits.toml",
			script: `text = "abc"

[[steps]]
select = [{start = 0, end = 1}]

[[steps]]
insert = "A"
`,
			want: "Abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, tt.file, tt.script)
			out, _, err := execute(t, "", "replay", path)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestReplayStdin(t *testing.T) {
	out, _, err := execute(t, "text: x\nsteps:\n  - insert: y\n", "replay", "-")
	require.NoError(t, err)
	assert.Equal(t, "y\n", out)
}

func TestReplayDiff(t *testing.T) {
	path := writeScript(t, "diff.yaml", `text: "one\ntwo\n"
steps:
  - select: [{start: 4, end: 7}]
  - insert: TWO
`)
	out, _, err := execute(t, "", "replay", "--diff", path)
	require.NoError(t, err)
	assert.Contains(t, out, "--- initial")
	assert.Contains(t, out, "+++ final")
	assert.Contains(t, out, "-two")
	assert.Contains(t, out, "+TWO")
}

func TestReplayTrace(t *testing.T) {
	path := writeScript(t, "trace.yaml", "text: a\nsteps:\n  - insert: b\n  - break: true\n")
	_, errOut, err := execute(t, "", "replay", "--trace", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "step 1: insert")
	assert.Contains(t, errOut, "step 2: break")
}

func TestReplayErrors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		script string
		target error
		msg    string
	}{
		{"no action", "empty.yaml", "text: a\nsteps:\n  - {}\n", ErrInvalidStep, ""},
		{"two actions", "two.yaml", "text: a\nsteps:\n  - insert: b\n    undo: 1\n", ErrInvalidStep, ""},
		{"unknown field", "typo.yaml", "text: a\nsteps:\n  - insrt: b\n", nil, "insrt"},
		{"unknown toml field", "typo.toml", "text = \"a\"\n[[steps]]\ninsrt = \"b\"\n", nil, "parse script"},
		{"bad movement", "move.yaml", "text: a\nsteps:\n  - move: {movement: sideways}\n", nil, "sideways"},
		{"bad edit type", "type.yaml", "text: a\nsteps:\n  - insert: b\n    type: bogus\n", nil, "bogus"},
		{"unsupported format", "script.json", "{}", ErrUnsupportedScript, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, tt.file, tt.script)
			_, _, err := execute(t, "", "replay", path)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestReplayMissingScript(t *testing.T) {
	_, _, err := execute(t, "", "replay", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "inkwell dev"), out)
}

func TestInvalidLogLevel(t *testing.T) {
	path := writeScript(t, "s.yaml", "text: a\n")
	_, _, err := execute(t, "", "--log-level", "loud", "replay", path)
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\n"), 0o644))

	var out, errOut syncBuffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "none.toml"),
		"watch", "--count", "1", "--debounce", "10ms", path,
	})

	done := make(chan error, 1)
	go func() { done <- cmd.Execute() }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "watching")
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not exit after one reload")
	}
	assert.Regexp(t, `revision \d+: `, out.String())
}
