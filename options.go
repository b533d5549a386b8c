package roi

import "sync/atomic"

// QueryOption configures a membership query.
//
// Example:
//
//	// Default: parallel over all CPUs.
//	pixels, err := roi.Membership(geom, q, q.FullRect())
//
//	// Serial, with instrumentation:
//	var stats roi.QueryStats
//	pixels, err := roi.Membership(geom, q, q.FullRect(),
//	    roi.WithWorkers(1), roi.WithStats(&stats))
type QueryOption func(*queryConfig)

// queryConfig holds optional knobs of one membership query.
type queryConfig struct {
	workers int
	stats   *QueryStats
}

// defaultQueryConfig returns the default query configuration.
func defaultQueryConfig() queryConfig {
	return queryConfig{
		workers: 0, // resolved to GOMAXPROCS at query time
	}
}

// WithWorkers caps the number of worker goroutines a query may fan out
// to. One worker forces fully serial execution; zero or negative
// restores the default.
func WithWorkers(n int) QueryOption {
	return func(c *queryConfig) {
		c.workers = n
	}
}

// WithStats attaches counters that the query increments as it works.
// The same QueryStats may be shared by several queries; counters are
// atomic and accumulate until Reset.
func WithStats(s *QueryStats) QueryOption {
	return func(c *queryConfig) {
		c.stats = s
	}
}

// QueryStats counts rasterizer work, exposing how a query resolved:
// how many rectangles were examined, how many polygon differences were
// computed, and how the rectangles fell into the inside, outside and
// per-cell boundary cases.
type QueryStats struct {
	// Rects counts rectangles taken off the work stack.
	Rects atomic.Int64
	// DiffOps counts polygon difference evaluations.
	DiffOps atomic.Int64
	// InsideRects counts rectangles resolved as fully covered.
	InsideRects atomic.Int64
	// OutsideRects counts rectangles resolved as fully clear.
	OutsideRects atomic.Int64
	// BoundaryPixels counts single cells decided by majority coverage.
	BoundaryPixels atomic.Int64
}

// Reset zeroes all counters.
func (s *QueryStats) Reset() {
	s.Rects.Store(0)
	s.DiffOps.Store(0)
	s.InsideRects.Store(0)
	s.OutsideRects.Store(0)
	s.BoundaryPixels.Store(0)
}
