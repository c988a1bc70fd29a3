package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/config/watcher"
	"github.com/dshills/inkwell/internal/engine/delta"
)

type watchOptions struct {
	count    int
	debounce time.Duration
}

func newWatchCmd(c *cli) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Follow a file and report every change as a revision",
		Long: `Open FILE and reload it whenever it changes on disk. Each reload is
applied to the buffer as a minimal undoable edit and reported as a new
revision with a summary of what changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.watch(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.count, "count", 0, "exit after this many reloads (0 runs until interrupted)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 100*time.Millisecond, "quiet period before a change is reloaded")
	return cmd
}

func (c *cli) watch(cmd *cobra.Command, path string, opts *watchOptions) error {
	doc, err := c.app.Open(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	logger := c.app.Logger().WithField("doc", doc.ID)

	var (
		mu       sync.Mutex
		reloads  int
		revision = doc.Engine.Revision()
	)
	report := func(doc *app.Document, d *delta.Delta, err error) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			logger.Error("reload failed: %v", err)
			return
		}
		if d == nil {
			return
		}
		changes := doc.Engine.Tracker().BuildChangeSet(revision)
		revision = doc.Engine.Revision()
		fmt.Fprintf(out, "revision %d: %s\n", revision, changes.Summary())

		reloads++
		if opts.count > 0 && reloads >= opts.count {
			cancel()
		}
	}

	w, err := c.app.Follow(doc.ID, report, watcher.WithDebounce(opts.debounce))
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	fmt.Fprintf(out, "watching %s (revision %d)\n", doc.Path, revision)
	<-ctx.Done()
	return nil
}
