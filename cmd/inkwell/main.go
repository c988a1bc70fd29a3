// Package main is the entry point for the inkwell command.
//
// inkwell drives the editing core from the command line: it replays edit
// scripts against a buffer and follows files on disk, folding each change
// into the buffer as an undoable edit.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
