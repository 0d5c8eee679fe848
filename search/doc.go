// Package search executes queries against the library index and
// assembles display-ready results.
//
// The central type is [Agent]. It owns a bounded worker pool so the
// potentially blocking index operations (snapshot, parse, execute,
// fetch) never run on the caller's goroutine, and it absorbs query
// failures: a malformed query or a failed execution degrades to an
// empty result list, never an error. The absorbed outcomes are still
// distinguished internally (ok, parse-degraded, execution-failed) and
// surface through logs and metrics rather than the API.
//
//	agent, err := search.NewAgent(handle, search.Config{})
//	defer agent.Close()
//
//	results := agent.Search(ctx, `text:שלום`, 10)
//
// Each result carries the document's stored fields plus highlighted
// snippets derived from the raw query by the highlight package.
package search
