// Package index provides read-only access to the library's persistent
// bleve full-text index.
//
// A [Handle] is opened once at startup and shared by every search for
// the life of the process; it is never written through. Opening a path
// that does not contain a valid index is the one fatal failure in the
// system, so [Open] returns an error the composition root must treat
// as terminal.
//
// # Searchers
//
// Each request obtains a [Searcher], a point-in-time read view used for
// one parse/execute/fetch cycle:
//
//	s := handle.Searcher()
//	hits, err := s.Search(ctx, q, 10)
//	fields, err := s.Fetch(ctx, hits[0].ID)
//
// Searchers share no mutable state; any number may be used
// concurrently.
//
// # Health
//
// [Handle.Validate] is the non-fatal counterpart to Open: it strictly
// parses the match-all query and runs a one-result search, reporting
// plain false on any failure. It backs the /healthz probe.
package index
