// SPDX-License-Identifier: MIT

package plan

import (
	"log/slog"

	"github.com/katalvlaran/dtwmatrix/budget"
)

// DefaultWideCount selects wide (int-range) pair counting by default.
const DefaultWideCount = true

const panicNilLogger = "plan: WithLogger: logger must be non-nil"

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*options)

type options struct {
	wide   bool           // DefaultWideCount
	budget *budget.Budget // nil ⇒ unlimited
	logger *slog.Logger   // discard by default
}

// WithWideCount selects the counting width used for Plan.Length.
func WithWideCount(wide bool) Option {
	return func(o *options) { o.wide = wide }
}

// WithBudget charges the index arrays against b. A nil b is unlimited.
func WithBudget(b *budget.Budget) Option {
	return func(o *options) { o.budget = b }
}

// WithLogger routes allocation diagnostics to l.
// Panics on a nil logger (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *options) { o.logger = l }
}

// gatherOptions applies defaults, then user setters in order.
func gatherOptions(user ...Option) options {
	o := options{
		wide:   DefaultWideCount,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
