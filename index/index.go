package index

import (
	"context"
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"

	"github.com/seforimlab/libsearch/query"
)

// Hit is one ranked result of query execution: a non-negative score
// and the opaque address of the matching document.
type Hit struct {
	ID    string
	Score float64
}

// Handle is a shared, read-only handle to a persistent index.
type Handle struct {
	idx    bleve.Index
	path   string
	logger *zap.Logger
}

// Option configures a Handle.
type Option func(*Handle)

// WithLogger sets the logger used for accessor diagnostics.
// Default is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handle) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Open opens the index at path read-only. The returned handle is safe
// for unrestricted concurrent reads and stays valid until Close.
//
// An error here means the path does not contain a usable index; the
// caller is expected to abort startup rather than continue without one.
func Open(path string, opts ...Option) (*Handle, error) {
	idx, err := bleve.OpenUsing(path, map[string]interface{}{
		"read_only": true,
	})
	if err != nil {
		return nil, fmt.Errorf("open index at %s: %w", path, err)
	}

	h := &Handle{idx: idx, path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	h.logger.Info("opened index", zap.String("path", path))
	return h, nil
}

// Path returns the filesystem path the handle was opened from, or ""
// for in-memory handles.
func (h *Handle) Path() string {
	return h.path
}

// Close releases the underlying index. The handle must not be used
// afterwards.
func (h *Handle) Close() error {
	return h.idx.Close()
}

// DocCount returns the number of documents in the index.
func (h *Handle) DocCount() (uint64, error) {
	return h.idx.DocCount()
}

// Searcher returns a point-in-time read view for one request.
func (h *Handle) Searcher() *Searcher {
	return &Searcher{idx: h.idx, at: time.Now()}
}

// Validate probes whether the handle is still queryable: it obtains a
// searcher, strictly parses the match-all query, and executes a
// one-result search. Any failure yields false, never an error or a
// panic. Unlike Open, a failed probe is not fatal.
func (h *Handle) Validate(ctx context.Context) (ok bool) {
	defer func() {
		// A torn or concurrently closed index can surface as a panic
		// inside bleve; the probe must still answer false.
		if r := recover(); r != nil {
			ok = false
		}
	}()

	s := h.Searcher()
	q, _, err := query.Parse("*", query.ModeStrict)
	if err != nil {
		h.logger.Error("index validation failed", zap.Error(err))
		return false
	}
	if _, err := s.Search(ctx, q, 1); err != nil {
		h.logger.Error("index validation failed", zap.Error(err))
		return false
	}
	return true
}
