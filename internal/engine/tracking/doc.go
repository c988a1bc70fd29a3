// Package tracking records the changes committed to a document.
//
// A Tracker observes a document through OnEditApplied and splits every
// committed delta into Changes: contiguous replacements carrying the
// removed and inserted text. It keeps a bounded history of changes and of
// recent revisions, and named snapshots that can be diffed against each
// other or against the current state:
//
//	tr := tracking.NewTracker(data.Snapshot())
//	id := tr.CreateSnapshot("before")
//	// ... edits, each followed by tr.OnEditApplied(snap, delta) ...
//	res, err := tr.DiffSinceSnapshot(id, tracking.DefaultDiffOptions())
//	fmt.Print(tracking.UnifiedDiff(res, "before", "now"))
//
// Diff computes line diffs and EditsFromDiff turns a character diff into
// buffer edits, both on top of diff-match-patch.
//
// All Tracker operations are thread-safe. Snapshots hold immutable text
// and can be shared across goroutines.
package tracking
