package store

import "sync/atomic"

// Clock hands out creation sequence numbers.
//
// Every category and item is stamped with a strictly increasing seq when it
// is allocated. Unfiltered loads order by seq, which pins "insertion order"
// across loads and process restarts.
type Clock struct {
	seq atomic.Int64
}

// NewClockAt creates a clock whose next value is start+1.
// Open seeds it with the highest seq already stored.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last sequence number handed out.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
