package search

import (
	"context"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/seforimlab/libsearch/index"
	"github.com/seforimlab/libsearch/metrics"
	"github.com/seforimlab/libsearch/query"
)

// Config tunes an Agent. Zero values select the defaults.
type Config struct {
	// Workers is the worker pool size. Default: runtime.NumCPU().
	Workers int
	// QueueDepth bounds how many searches may wait for a worker before
	// dispatch fails open to an empty result. Default: 64.
	QueueDepth int
	// MaxResults caps the per-search hit limit. Default: 100.
	MaxResults int
	// Timeout bounds how long a caller waits for a dispatched search.
	// The search itself runs to completion either way. Default: 30s.
	Timeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.QueueDepth <= 0 {
		c.QueueDepth = 64
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 100
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets a custom logger. Default is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Agent executes raw queries against a shared index handle. All index
// work runs on a bounded worker pool; failures below the executor
// boundary are absorbed into empty results and never surface as
// errors.
type Agent struct {
	handle *index.Handle
	pool   *ants.Pool
	logger *zap.Logger
	cfg    Config
}

// NewAgent creates an Agent over handle. Close must be called to
// release the worker pool.
func NewAgent(handle *index.Handle, cfg Config, opts ...Option) (*Agent, error) {
	cfg.applyDefaults()

	pool, err := ants.NewPool(cfg.Workers, ants.WithMaxBlockingTasks(cfg.QueueDepth))
	if err != nil {
		return nil, err
	}

	a := &Agent{
		handle: handle,
		pool:   pool,
		logger: zap.NewNop(),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Close releases the worker pool. In-flight searches finish first.
func (a *Agent) Close() {
	a.pool.Release()
}

// Search runs rawQuery and returns up to limit assembled results in
// descending score order. It never returns an error: parse and
// execution failures degrade to an empty slice, logged and counted but
// not propagated. The raw query is handed to the lenient parser
// unvalidated.
func (a *Agent) Search(ctx context.Context, rawQuery string, limit int) []SearchResult {
	start := time.Now()

	if limit < 0 {
		limit = 0
	}
	if limit > a.cfg.MaxResults {
		limit = a.cfg.MaxResults
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	out := a.dispatch(ctx, rawQuery, limit)

	metrics.ObserveSearch(out.status.String(), len(out.results), time.Since(start))
	return out.results
}

// dispatch hands the search to the worker pool and waits, bounded by
// ctx. A saturated pool or an expired deadline both fail open.
func (a *Agent) dispatch(ctx context.Context, rawQuery string, limit int) outcome {
	ch := make(chan outcome, 1)
	err := a.pool.Submit(func() {
		ch <- a.run(ctx, rawQuery, limit)
	})
	if err != nil {
		a.logger.Error("search dispatch failed",
			zap.String("query", rawQuery),
			zap.Error(err),
		)
		return outcome{status: StatusExecutionFailed}
	}

	select {
	case out := <-ch:
		return out
	case <-ctx.Done():
		a.logger.Error("search abandoned",
			zap.String("query", rawQuery),
			zap.Error(ctx.Err()),
		)
		return outcome{status: StatusExecutionFailed}
	}
}

// run is the in-pool body: snapshot, lenient parse, execute, and
// per-hit fetch + assembly.
func (a *Agent) run(ctx context.Context, rawQuery string, limit int) outcome {
	searcher := a.handle.Searcher()

	q, dropped, err := query.Parse(rawQuery, query.ModeLenient)
	if err != nil {
		a.logger.Error("lenient query parsing failed",
			zap.String("query", rawQuery),
			zap.Error(err),
		)
		return outcome{status: StatusExecutionFailed}
	}

	status := StatusOK
	if len(dropped) > 0 {
		status = StatusParseDegraded
		a.logger.Warn("query fragments dropped",
			zap.String("query", rawQuery),
			zap.Strings("dropped", dropped),
		)
	}

	hits, err := searcher.Search(ctx, q, limit)
	if err != nil {
		a.logger.Error("search execution failed",
			zap.String("query", rawQuery),
			zap.Error(err),
		)
		return outcome{status: StatusExecutionFailed}
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		fields, err := searcher.Fetch(ctx, hit.ID)
		if err != nil {
			// One unfetchable document must not sink the batch.
			a.logger.Warn("document fetch failed",
				zap.String("id", hit.ID),
				zap.Error(err),
			)
			continue
		}
		results = append(results, assemble(hit, fields, rawQuery))
	}

	a.logger.Info("search completed",
		zap.String("query", rawQuery),
		zap.Int("results", len(results)),
		zap.String("status", status.String()),
	)
	return outcome{status: status, results: results}
}
