// Package query parses the library's search syntax into bleve queries.
//
// The syntax follows the classic full-text search grammar the calling
// agent is instructed to use: field-scoped terms, boolean AND/OR with
// AND binding tighter, +required/-excluded prefixes, quoted phrases
// with slop and prefix markers, single (?) and multi (*) character
// wildcards, term boosting, parenthesized grouping, and the standalone
// match-all token (*).
//
// # Parse Modes
//
// Two explicitly named modes are supported:
//
//   - [ModeStrict] fails on the first malformed fragment. Used by the
//     index health probe, where a parse failure is a meaningful signal.
//   - [ModeLenient] never fails on odd input. Fragments that cannot be
//     interpreted are dropped and reported back to the caller, and a
//     query with nothing usable left degrades to match-none. The search
//     path always parses leniently.
//
// The two modes share one grammar; collapsing them into a single mode
// with a post-hoc error check is deliberately avoided so callers state
// their tolerance at the call site:
//
//	q, dropped, err := query.Parse(`text:שלום AND (topics:הלכה OR topics:מדרש)`, query.ModeLenient)
//
// # Mapping to bleve
//
// Terms become match queries (analyzed, so Hebrew and other non-Latin
// scripts work), wildcard terms become wildcard queries, phrases become
// match-phrase queries, and groups become conjunction, disjunction, or
// boolean queries depending on connectives and +/- occurrence markers.
// A phrase with slop is approximated by an all-terms match query, since
// bleve has no positional slop; see DESIGN.md.
package query
