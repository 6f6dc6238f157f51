package netfile

import (
	"github.com/hupe1980/hups"
	"github.com/hupe1980/hups/blobstore"
	"github.com/hupe1980/hups/resource"
)

type options struct {
	rows       int
	resolution int
	dim        int
	store      blobstore.BlobStore
	controller *resource.Controller
	noCache    bool
	logger     *hups.Logger
	metrics    hups.MetricsCollector
}

func defaultOptions() options {
	return options{
		rows:       -1,
		resolution: hups.MaxBits,
		dim:        -1,
		logger:     hups.NoopLogger(),
		metrics:    hups.NoopMetricsCollector{},
	}
}

// Option configures Load.
type Option func(*options)

// WithRows keeps the r most significant rows of the generator matrices.
// By default all rows of the resource are kept.
func WithRows(r int) Option {
	return func(o *options) { o.rows = r }
}

// WithResolution sets the number of output digits w (default 31).
func WithResolution(w int) Option {
	return func(o *options) { o.resolution = w }
}

// WithDimension keeps the first s coordinates. By default all coordinates
// of the resource are kept.
func WithDimension(s int) Option {
	return func(o *options) { o.dim = s }
}

// WithStore reads the location as a name inside store instead of resolving
// it.
func WithStore(store blobstore.BlobStore) Option {
	return func(o *options) { o.store = store }
}

// WithController limits the download rate of http(s) locations.
func WithController(rc *resource.Controller) Option {
	return func(o *options) { o.controller = rc }
}

// WithoutCache bypasses the process-wide cache of remote resources.
func WithoutCache() Option {
	return func(o *options) { o.noCache = true }
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
