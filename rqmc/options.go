package rqmc

import (
	"github.com/hupe1980/hups"
	"github.com/hupe1980/hups/resource"
)

type options struct {
	workers       int
	numPoints     int
	seed          uint64
	controller    *resource.Controller
	randomization func(hups.Stream) hups.PointSetRandomization
	logger        *hups.Logger
	metrics       hups.MetricsCollector
}

func defaultOptions() options {
	return options{
		workers: 1,
		randomization: func(s hups.Stream) hups.PointSetRandomization {
			return &hups.RandomPermutation{S: s}
		},
		logger:  hups.NoopLogger(),
		metrics: hups.NoopMetricsCollector{},
	}
}

// Option configures a Runner.
type Option func(*options)

// WithWorkers sets the number of replications run at once (default 1).
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithNumPoints uses the first n points of each replication. By default
// all points are used, which requires a finite point set.
func WithNumPoints(n int) Option {
	return func(o *options) { o.numPoints = n }
}

// WithSeed sets the base seed of the replication streams.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithController makes every worker hold a worker slot of rc while it runs.
func WithController(rc *resource.Controller) Option {
	return func(o *options) { o.controller = rc }
}

// WithRandomShift randomizes replications with a digital shift only. The
// default is the point set's own randomization (hups.Randomize).
func WithRandomShift() Option {
	return func(o *options) {
		o.randomization = func(s hups.Stream) hups.PointSetRandomization {
			return &hups.RandomShift{S: s, Logger: o.logger, Metrics: o.metrics}
		}
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *hups.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = hups.NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed, a
// no-op collector is used.
func WithMetricsCollector(mc hups.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = hups.NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}
