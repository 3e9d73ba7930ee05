package roster

import (
	"sync/atomic"
	"time"
)

// IDGenerator hands out candidate record ids. Collection re-asks on collision,
// so an implementation only has to avoid repeating itself.
type IDGenerator interface {
	NextID() int64
}

// Clock derives ids from the wall clock in milliseconds. Two calls inside the
// same tick (or after the clock steps backwards) get previous+1 instead.
type Clock struct {
	now  func() time.Time
	last atomic.Int64
}

// NewClock returns a Clock reading time from now. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// NextID implements IDGenerator.
func (c *Clock) NextID() int64 {
	for {
		last := c.last.Load()
		id := c.now().UnixMilli()
		if id <= last {
			id = last + 1
		}
		if c.last.CompareAndSwap(last, id) {
			return id
		}
	}
}

// Counter is a plain incrementing id source.
type Counter struct {
	n atomic.Int64
}

// NewCounter returns a Counter whose first id is start+1.
func NewCounter(start int64) *Counter {
	c := &Counter{}
	c.n.Store(start)
	return c
}

// NextID implements IDGenerator.
func (c *Counter) NextID() int64 {
	return c.n.Add(1)
}
