// Package find keeps track of search matches in a document.
//
// A Find holds one pattern, literal or regular expression, and the
// occurrences found for it. Occurrences are kept as a distinct Selection:
// adjacent matches are never merged. Searching is lazy; UpdateFind
// searches only the range it is given, typically the visible lines.
//
// After each edit, UpdateHighlights maps the known occurrences through the
// edit's delta and searches again only the lines the edit touched:
//
//	f := find.New()
//	f.Set("todo", find.Options{WholeWords: true})
//	f.UpdateFind(snap, 0, snap.Len())
//	// ... edit ...
//	f.UpdateHighlights(newSnap, delta)
package find
