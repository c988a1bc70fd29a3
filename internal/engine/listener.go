package engine

import (
	"github.com/dshills/inkwell/internal/engine/buffer"
	"github.com/dshills/inkwell/internal/engine/delta"
)

// Listener is told about every change to the document. ShouldApplyEdit is
// asked before an edit, undo or redo is committed; returning false drops
// the change. OnEditApplied is called after the commit with the new state
// and the delta against the previous one.
//
// Both callbacks run on the writer's goroutine while the engine lock is
// held, so they must not call back into the engine.
type Listener interface {
	ShouldApplyEdit() bool
	OnEditApplied(snap *buffer.Snapshot, d *delta.Delta)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields accept
// every edit and ignore notifications.
type ListenerFuncs struct {
	ShouldApply func() bool
	Applied     func(snap *buffer.Snapshot, d *delta.Delta)
}

func (f ListenerFuncs) ShouldApplyEdit() bool {
	if f.ShouldApply == nil {
		return true
	}
	return f.ShouldApply()
}

func (f ListenerFuncs) OnEditApplied(snap *buffer.Snapshot, d *delta.Delta) {
	if f.Applied != nil {
		f.Applied(snap, d)
	}
}

// Listeners fans out to several listeners. An edit is applied only if
// every listener accepts it.
type Listeners []Listener

func (ls Listeners) ShouldApplyEdit() bool {
	for _, l := range ls {
		if !l.ShouldApplyEdit() {
			return false
		}
	}
	return true
}

func (ls Listeners) OnEditApplied(snap *buffer.Snapshot, d *delta.Delta) {
	for _, l := range ls {
		l.OnEditApplied(snap, d)
	}
}

type nopListener struct{}

func (nopListener) ShouldApplyEdit() bool                      { return true }
func (nopListener) OnEditApplied(*buffer.Snapshot, *delta.Delta) {}

// NopListener accepts every edit and ignores notifications.
var NopListener Listener = nopListener{}
