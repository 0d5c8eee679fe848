package search

// Status classifies how a search attempt concluded. Failures below the
// executor boundary never escape it as errors; the status is what
// remains of them for logs and metrics.
type Status int

const (
	// StatusOK: the query parsed cleanly and executed.
	StatusOK Status = iota
	// StatusParseDegraded: lenient parsing dropped fragments, the rest ran.
	StatusParseDegraded
	// StatusExecutionFailed: execution or dispatch failed; results are empty.
	StatusExecutionFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusParseDegraded:
		return "parse_degraded"
	case StatusExecutionFailed:
		return "execution_failed"
	default:
		return "unknown"
	}
}

// outcome is the executor's internal result: the absorbed failure
// taxonomy plus whatever results survived. It collapses to a bare
// result slice only at the public boundary.
type outcome struct {
	status  Status
	results []SearchResult
}
