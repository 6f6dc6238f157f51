package rqmc

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hups"
)

// Factory builds a fresh point set for one replication.
type Factory func() (hups.PointSet, error)

// Integrand is evaluated at every point. It must be safe for concurrent use.
type Integrand func(point []float64) float64

// checkEvery is the number of points between context checks.
const checkEvery = 1024

// Runner runs randomized replications of a point set.
type Runner struct {
	factory Factory
	dim     int
	opts    options
}

// New returns a runner evaluating integrands of dimension dim on point sets
// built by factory.
func New(factory Factory, dim int, opts ...Option) (*Runner, error) {
	const op = "rqmc.New"
	if factory == nil {
		return nil, &hups.ArgumentError{Op: op, Reason: "nil factory"}
	}
	if dim < 1 {
		return nil, &hups.ArgumentError{Op: op, Param: "dim", Value: dim, Reason: "must be >= 1"}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.numPoints < 0 {
		return nil, &hups.ArgumentError{Op: op, Param: "numPoints", Value: o.numPoints, Reason: "must be >= 0"}
	}
	return &Runner{factory: factory, dim: dim, opts: o}, nil
}

// Result summarizes the replications of one Run.
type Result struct {
	// Estimates holds one average per replication, in replication order.
	Estimates []float64
	// NumPoints is the number of points per replication.
	NumPoints int
	Mean      float64
	// Variance is the sample variance of Estimates (0 for one replication).
	Variance float64
	// StdErr is the standard error of Mean.
	StdErr float64
}

// String formats the mean and its standard error.
func (r *Result) String() string {
	return fmt.Sprintf("%d replications of %d points: mean %g, std. error %g",
		len(r.Estimates), r.NumPoints, r.Mean, r.StdErr)
}

// Stream returns the stream of replication rep. It is what Run uses, so a
// single replication can be reproduced on its own.
func (r *Runner) Stream(rep int) *hups.RandStream {
	return hups.NewStream(r.opts.seed + uint64(rep)*0x9e3779b97f4a7c15)
}

// Run evaluates f on reps independent randomizations. The first error
// stops the remaining replications.
func (r *Runner) Run(ctx context.Context, f Integrand, reps int) (*Result, error) {
	if f == nil {
		return nil, &hups.ArgumentError{Op: "rqmc.Run", Reason: "nil integrand"}
	}
	if reps < 1 {
		return nil, &hups.ArgumentError{Op: "rqmc.Run", Param: "reps", Value: reps, Reason: "must be >= 1"}
	}

	estimates := make([]float64, reps)
	counts := make([]int, reps)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.workers)
	for rep := range reps {
		g.Go(func() error {
			if err := r.opts.controller.AcquireWorker(gctx); err != nil {
				return err
			}
			defer r.opts.controller.ReleaseWorker()

			start := time.Now()
			est, n, err := r.replicate(gctx, f, rep)
			r.opts.logger.LogReplication(gctx, rep, est, time.Since(start), err)
			r.opts.metrics.RecordReplication(n, time.Since(start), err)
			if err != nil {
				return fmt.Errorf("replication %d: %w", rep, err)
			}
			estimates[rep], counts[rep] = est, n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Estimates: estimates, NumPoints: counts[0]}
	res.Mean, res.Variance = meanVariance(estimates)
	res.StdErr = math.Sqrt(res.Variance / float64(reps))
	return res, nil
}

func (r *Runner) replicate(ctx context.Context, f Integrand, rep int) (float64, int, error) {
	ps, err := r.factory()
	if err != nil {
		return 0, 0, err
	}
	if ps.Dimension() < r.dim {
		return 0, 0, &hups.ArgumentError{Op: "rqmc.Run", Param: "dimension", Value: ps.Dimension(),
			Reason: fmt.Sprintf("point set has fewer than %d coordinates", r.dim)}
	}

	n := r.opts.numPoints
	if n == 0 {
		if ps.NumPoints() == hups.Infinite {
			return 0, 0, fmt.Errorf("number of points: %w", hups.ErrInfinite)
		}
		n = ps.NumPoints()
	}

	if err := r.opts.randomization(r.Stream(rep)).Apply(ps); err != nil {
		return 0, 0, err
	}

	it := ps.Iterator()
	point := make([]float64, r.dim)
	var sum float64
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, i, err
			}
		}
		if _, err := it.NextPoint(point); err != nil {
			return 0, i, err
		}
		sum += f(point)
	}
	return sum / float64(n), n, nil
}

func meanVariance(xs []float64) (mean, variance float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	return mean, variance / float64(len(xs)-1)
}
