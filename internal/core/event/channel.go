package event

import "sync"

// ReaderID is a private read cursor into a Channel. A reader must not be
// shared between goroutines.
type ReaderID struct {
	cursor uint64
	closed bool
}

// Channel is an append-only broadcast log with independent reader cursors.
// Each registered reader observes every event written after its
// registration exactly once, in write order. Events consumed by every
// reader are dropped.
type Channel[T any] struct {
	mu      sync.RWMutex
	events  []T
	base    uint64 // absolute index of events[0]
	readers []*ReaderID
}

func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{events: make([]T, 0, 64)}
}

// RegisterReader returns a cursor positioned at the current end of the log.
func (c *Channel[T]) RegisterReader() *ReaderID {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := &ReaderID{cursor: c.base + uint64(len(c.events))}
	c.readers = append(c.readers, r)
	return r
}

// Unregister detaches a reader so it no longer holds back compaction.
func (c *Channel[T]) Unregister(r *ReaderID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, other := range c.readers {
		if other == r {
			c.readers = append(c.readers[:i], c.readers[i+1:]...)
			break
		}
	}
	r.closed = true
	c.compact()
}

// Write appends a single event.
func (c *Channel[T]) Write(ev T) {
	c.mu.Lock()
	if len(c.readers) > 0 {
		c.events = append(c.events, ev)
	} else {
		c.base++ // nobody listening
	}
	c.mu.Unlock()
}

// WriteAll appends events in order.
func (c *Channel[T]) WriteAll(evs []T) {
	c.mu.Lock()
	if len(c.readers) > 0 {
		c.events = append(c.events, evs...)
	} else {
		c.base += uint64(len(evs))
	}
	c.mu.Unlock()
}

// Read returns the events written since r's last read and advances r.
// The returned slice is owned by the caller.
func (c *Channel[T]) Read(r *ReaderID) []T {
	c.mu.RLock()
	if r.closed {
		c.mu.RUnlock()
		return nil
	}
	start := int(r.cursor - c.base)
	out := make([]T, len(c.events)-start)
	copy(out, c.events[start:])
	r.cursor = c.base + uint64(len(c.events))
	c.mu.RUnlock()

	if len(out) > 0 {
		c.mu.Lock()
		c.compact()
		c.mu.Unlock()
	}
	return out
}

// Len returns the number of retained events.
func (c *Channel[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}

// compact drops the prefix every reader has consumed. Caller holds mu.
func (c *Channel[T]) compact() {
	lowest := c.base + uint64(len(c.events))
	for _, r := range c.readers {
		if r.cursor < lowest {
			lowest = r.cursor
		}
	}
	drop := int(lowest - c.base)
	if drop == 0 {
		return
	}
	n := copy(c.events, c.events[drop:])
	clear(c.events[n:]) // vacated slots must not pin old events
	c.events = c.events[:n]
	c.base = lowest
}
