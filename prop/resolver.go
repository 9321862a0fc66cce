package prop

import (
	"context"
	"time"

	"github.com/ardnew/openr/log"
)

// Default pass limits.
const (
	DefaultMaxTemplatePasses = 20
	DefaultMaxActionPasses   = 16
)

// Clock provides the current time to the timestamp verb.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to [Clock].
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the [Clock] backed by [time.Now].
var SystemClock Clock = ClockFunc(time.Now)

// Resolver expands templates and evaluates action tokens.
// A Resolver holds no per-run state and may be reused.
type Resolver struct {
	logger            log.Logger
	clock             Clock
	maxTemplatePasses int
	maxActionPasses   int
}

// Option configures a [Resolver].
type Option func(*Resolver)

// New returns a [Resolver] with the default pass limits, the system clock
// and the package-level logger, overridden by opts.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		logger:            log.Default(),
		clock:             SystemClock,
		maxTemplatePasses: DefaultMaxTemplatePasses,
		maxActionPasses:   DefaultMaxActionPasses,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithLogger sets the logger used to report progress.
func WithLogger(logger log.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// WithClock sets the clock read by the timestamp verb.
// A nil clock selects [SystemClock].
func WithClock(clock Clock) Option {
	return func(r *Resolver) {
		if clock == nil {
			clock = SystemClock
		}

		r.clock = clock
	}
}

// WithMaxTemplatePasses limits the number of template expansion passes.
// Values below 1 select [DefaultMaxTemplatePasses].
func WithMaxTemplatePasses(n int) Option {
	return func(r *Resolver) {
		if n < 1 {
			n = DefaultMaxTemplatePasses
		}

		r.maxTemplatePasses = n
	}
}

// WithMaxActionPasses limits the number of action evaluation passes.
// Values below 1 select [DefaultMaxActionPasses].
func WithMaxActionPasses(n int) Option {
	return func(r *Resolver) {
		if n < 1 {
			n = DefaultMaxActionPasses
		}

		r.maxActionPasses = n
	}
}

// RunAllActions resolves dest against sources with a default [Resolver]
// and returns dest.
func RunAllActions(sources, dest any) any {
	return New().Run(context.Background(), sources, dest)
}
