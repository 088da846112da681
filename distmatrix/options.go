// SPDX-License-Identifier: MIT

package distmatrix

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/katalvlaran/dtwmatrix/budget"
	"github.com/katalvlaran/dtwmatrix/dtw"
	"github.com/katalvlaran/dtwmatrix/schedule"
)

// Func computes the distance between two 1-D sequences. It must be pure and
// safe for concurrent use. dtw.Distance satisfies it.
type Func func(a, b []float64, s *dtw.Settings) (float64, error)

// NdimFunc computes the distance between two flat length×ndim sequences.
// dtw.DistanceNdim satisfies it.
type NdimFunc func(a, b []float64, ndim int, s *dtw.Settings) (float64, error)

// ProgressFunc receives the number of output slots written so far and the total.
// Calls are serialized but may come from any worker goroutine.
type ProgressFunc func(done, total int)

// Defaults (single source of truth).
const (
	// DefaultPolicy balances the triangular cost profile with shrinking batches.
	DefaultPolicy = schedule.Guided

	// DefaultMinBatch is the smallest number of rows a worker claims at once.
	DefaultMinBatch = 1

	// DefaultProgressInterval throttles progress callbacks and debug logs.
	DefaultProgressInterval = 500 * time.Millisecond
)

const (
	panicWorkersInvalid  = "distmatrix: WithWorkers: workers must be >= 1"
	panicMinBatchInvalid = "distmatrix: WithMinBatch: minBatch must be >= 1"
	panicIntervalInvalid = "distmatrix: WithProgressInterval: interval must be > 0"
	panicNilFunc         = "distmatrix: distance function must be non-nil"
	panicNilLogger       = "distmatrix: WithLogger: logger must be non-nil"
)

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*options)

type options struct {
	workers  int
	policy   schedule.Policy
	minBatch int
	logger   *slog.Logger
	budget   *budget.Budget
	dist     Func
	ndimDist NdimFunc
	progress ProgressFunc
	interval time.Duration
}

// WithWorkers sets the number of worker goroutines (default GOMAXPROCS).
// One worker runs the fan-out on the caller's goroutine.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithSchedule selects the batch policy (default schedule.Guided).
func WithSchedule(p schedule.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithMinBatch sets the smallest batch of rows a worker claims.
func WithMinBatch(n int) Option {
	if n < 1 {
		panic(panicMinBatchInvalid)
	}

	return func(o *options) { o.minBatch = n }
}

// WithLogger enables structured logging; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *options) { o.logger = l }
}

// WithBudget charges the planner's index arrays against b.
func WithBudget(b *budget.Budget) Option {
	return func(o *options) { o.budget = b }
}

// WithDistance replaces the 1-D kernel (default dtw.Distance).
func WithDistance(fn Func) Option {
	if fn == nil {
		panic(panicNilFunc)
	}

	return func(o *options) { o.dist = fn }
}

// WithNdimDistance replaces the n-D kernel (default dtw.DistanceNdim).
func WithNdimDistance(fn NdimFunc) Option {
	if fn == nil {
		panic(panicNilFunc)
	}

	return func(o *options) { o.ndimDist = fn }
}

// WithProgress registers a throttled progress callback. A final call with
// done == total is made when the computation succeeds.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

// WithProgressInterval sets the minimum time between progress callbacks.
func WithProgressInterval(d time.Duration) Option {
	if d <= 0 {
		panic(panicIntervalInvalid)
	}

	return func(o *options) { o.interval = d }
}

// gatherOptions applies defaults, then user setters in order.
func gatherOptions(user ...Option) options {
	o := options{
		workers:  runtime.GOMAXPROCS(0),
		policy:   DefaultPolicy,
		minBatch: DefaultMinBatch,
		logger:   slog.New(slog.DiscardHandler),
		dist:     dtw.Distance,
		ndimDist: dtw.DistanceNdim,
		interval: DefaultProgressInterval,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
