package engine

import (
	"context"
	"fmt"
)

// Background runs fn on a snapshot of the current content in a new
// goroutine. The returned channel receives fn's error, ctx's error if ctx
// ended first, or ErrStaleRevision if the document changed before fn
// returned. A result computed by fn should only be used when the error is
// nil.
func (e *Engine) Background(ctx context.Context, fn func(ctx context.Context, snap *Snapshot) error) <-chan error {
	snap := e.Snapshot()
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		if err := fn(ctx, snap); err != nil {
			errc <- err
			return
		}
		if err := ctx.Err(); err != nil {
			errc <- err
			return
		}
		if e.IsStale(snap.Revision()) {
			errc <- fmt.Errorf("revision %d, now %d: %w", snap.Revision(), e.Revision(), ErrStaleRevision)
			return
		}
		errc <- nil
	}()
	return errc
}

// IsStale reports whether work done at revision rev is out of date.
func (e *Engine) IsStale(rev uint64) bool {
	return e.Revision() != rev
}
