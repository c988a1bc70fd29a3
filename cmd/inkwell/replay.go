package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/engine/tracking"
)

type replayOptions struct {
	diff  bool
	trace bool
}

func newReplayCmd(c *cli) *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay SCRIPT",
		Short: "Run an edit script and print the resulting text",
		Long: `Run an edit script against a scratch buffer and print the final text.

SCRIPT is a YAML or TOML file, or "-" to read YAML from stdin. It holds the
initial text and a list of steps; each step performs one action:

  edits     replace byte ranges:      [{start: 0, end: 3, text: "x"}]
  insert    replace every selection region with text
  carets    set the selection to carets at the given offsets
  select    set the selection to ranges: [{start: 0, end: 3}]
  move      apply a movement:         {movement: word_forward, count: 2}
  find      start a search:           {pattern: foo, wholeWords: true}
  findNext  select the next match:    {reverse: false, wrap: true}
  undo      undo N groups
  redo      redo N groups
  break     close the current undo group
  snapshot  record a named snapshot

"type" sets the undo grouping of edits and insert (insert_chars, delete,
newline, other, ...).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.replay(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a unified diff against the initial text instead of the final text")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "report every step on stderr")
	return cmd
}

func (c *cli) replay(cmd *cobra.Command, path string, opts *replayOptions) error {
	script, err := loadScript(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	doc := c.app.OpenString(path, script.Text)
	defer func() { _ = c.app.Close(doc.ID, true) }()

	var trace io.Writer
	if opts.trace {
		trace = cmd.ErrOrStderr()
	}
	if err := script.Run(doc.Engine, c.app.Config().FindOptions(), trace); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	final := doc.Engine.Text()
	if opts.diff {
		diff := tracking.Diff(script.Text, final, tracking.DefaultDiffOptions())
		_, err = io.WriteString(out, tracking.UnifiedDiff(diff, "initial", "final"))
		return err
	}
	_, err = fmt.Fprintln(out, final)
	return err
}
