package system

import "sync/atomic"

// Counter issues strictly increasing system identifiers. The zero value is
// ready to use. A process-wide default is used by New and NewFromPhases;
// tests needing isolated id sequences pass their own Counter through
// NewWithCounter.
type Counter struct {
	n atomic.Uint64
}

// Next atomically reserves and returns the next identifier. Concurrent
// callers never observe the same value.
func (c *Counter) Next() uint64 {
	return c.n.Add(1)
}

// Current returns the last issued identifier without reserving one.
func (c *Counter) Current() uint64 {
	return c.n.Load()
}

var defaultCounter Counter
