// SPDX-License-Identifier: MIT

package distmatrix

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sys/cpu"
	"golang.org/x/time/rate"
)

// progress counts written slots across workers and reports them at most once
// per interval. The counter sits on its own cache line; every worker bumps it
// once per row.
type progress struct {
	_     cpu.CacheLinePad
	done  atomic.Int64
	_     cpu.CacheLinePad
	total int
	every rate.Sometimes
	fn    ProgressFunc
	log   *slog.Logger
}

func newProgress(total int, o *options) *progress {
	return &progress{
		total: total,
		every: rate.Sometimes{Interval: o.interval},
		fn:    o.progress,
		log:   o.logger,
	}
}

// add records k written slots.
func (p *progress) add(ctx context.Context, k int) {
	p.done.Add(int64(k))
	p.every.Do(func() {
		done := int(p.done.Load())
		if p.fn != nil {
			p.fn(done, p.total)
		}
		p.log.DebugContext(ctx, "distmatrix: progress", "done", done, "length", p.total)
	})
}

// written returns the slots recorded so far.
func (p *progress) written() int {
	return int(p.done.Load())
}

// finish reports the final count once the fan-out has joined.
func (p *progress) finish() {
	if p.fn != nil {
		p.fn(p.written(), p.total)
	}
}
