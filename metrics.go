package hups

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after each resource load (generator matrices,
	// static tables). bytes is the raw resource size.
	RecordLoad(source string, bytes int64, duration time.Duration, err error)

	// RecordRandomize is called after each randomization of a point set.
	RecordRandomize(kind string, duration time.Duration, err error)

	// RecordReplication is called after each randomized replication.
	RecordReplication(points int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(string, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordRandomize(string, time.Duration, error)   {}
func (NoopMetricsCollector) RecordReplication(int, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount             atomic.Int64
	LoadErrors            atomic.Int64
	LoadBytes             atomic.Int64
	LoadTotalNanos        atomic.Int64
	RandomizeCount        atomic.Int64
	RandomizeErrors       atomic.Int64
	ReplicationCount      atomic.Int64
	ReplicationErrors     atomic.Int64
	ReplicationPoints     atomic.Int64
	ReplicationTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ string, bytes int64, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadBytes.Add(bytes)
}

// RecordRandomize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRandomize(_ string, _ time.Duration, err error) {
	b.RandomizeCount.Add(1)
	if err != nil {
		b.RandomizeErrors.Add(1)
	}
}

// RecordReplication implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReplication(points int, duration time.Duration, err error) {
	b.ReplicationCount.Add(1)
	b.ReplicationTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReplicationErrors.Add(1)
		return
	}
	b.ReplicationPoints.Add(int64(points))
}

// MetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type MetricsStats struct {
	LoadCount          int64
	LoadErrors         int64
	LoadBytes          int64
	LoadAvgNanos       int64
	RandomizeCount     int64
	RandomizeErrors    int64
	ReplicationCount   int64
	ReplicationErrors  int64
	ReplicationPoints  int64
	ReplicationAvgNano int64
}

// GetStats returns a snapshot of the collected counters.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	s := MetricsStats{
		LoadCount:         b.LoadCount.Load(),
		LoadErrors:        b.LoadErrors.Load(),
		LoadBytes:         b.LoadBytes.Load(),
		RandomizeCount:    b.RandomizeCount.Load(),
		RandomizeErrors:   b.RandomizeErrors.Load(),
		ReplicationCount:  b.ReplicationCount.Load(),
		ReplicationErrors: b.ReplicationErrors.Load(),
		ReplicationPoints: b.ReplicationPoints.Load(),
	}
	if s.LoadCount > 0 {
		s.LoadAvgNanos = b.LoadTotalNanos.Load() / s.LoadCount
	}
	if s.ReplicationCount > 0 {
		s.ReplicationAvgNano = b.ReplicationTotalNanos.Load() / s.ReplicationCount
	}
	return s
}
