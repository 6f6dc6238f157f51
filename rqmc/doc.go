// Package rqmc estimates integrals over the unit hypercube by randomized
// quasi-Monte Carlo: independent randomizations of a point set, each giving
// one estimate, whose spread measures the error.
//
// Point sets are not safe for concurrent randomization, so every
// replication builds its own instance from a Factory, randomizes it with its
// own stream and reads it through its own iterator. Stream seeds depend only
// on the base seed and the replication index, so results do not depend on
// the number of workers.
//
//	r, err := rqmc.New(func() (hups.PointSet, error) {
//	    return niederreiter.New(12, 31, 5)
//	}, 5, rqmc.WithWorkers(4), rqmc.WithSeed(42))
//	res, err := r.Run(ctx, f, 32)
package rqmc
