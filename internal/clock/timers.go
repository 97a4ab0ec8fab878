// Package clock drives the simulation: a virtual-time queue of one-shot
// timers with cancellation handles, and a frame loop that can be started
// and stopped. Nothing here spawns goroutines; the platform advances time
// from its own tick source, which keeps every callback on one thread.
package clock

import (
	"sort"
	"time"
)

// Handle identifies a scheduled timer. The zero Handle is never issued
// and is safe to Cancel.
type Handle uint64

type timer struct {
	id  Handle
	due time.Duration
	fn  func()
}

// Queue holds one-shot timers ordered by due time. Timers due at the same
// instant fire in scheduling order.
type Queue struct {
	now     time.Duration
	nextID  Handle
	pending []timer
}

// NewQueue creates an empty queue at virtual time zero.
func NewQueue() *Queue {
	return &Queue{}
}

// Now returns the virtual time elapsed since the queue was created.
func (q *Queue) Now() time.Duration {
	return q.now
}

// After schedules fn to run once d has elapsed. Negative delays fire on the
// next Advance.
func (q *Queue) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	q.nextID++
	t := timer{id: q.nextID, due: q.now + d, fn: fn}

	// Insert after every timer due at or before t.due to keep FIFO order for ties
	i := sort.Search(len(q.pending), func(i int) bool {
		return q.pending[i].due > t.due
	})
	q.pending = append(q.pending, timer{})
	copy(q.pending[i+1:], q.pending[i:])
	q.pending[i] = t
	return t.id
}

// Cancel removes a pending timer. Returns false if it already fired, was
// already cancelled, or h is zero.
func (q *Queue) Cancel(h Handle) bool {
	for i, t := range q.pending {
		if t.id == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending timer.
func (q *Queue) CancelAll() {
	q.pending = q.pending[:0]
}

// Pending reports whether h is still waiting to fire.
func (q *Queue) Pending(h Handle) bool {
	_, ok := q.Remaining(h)
	return ok
}

// Remaining returns how long until h fires.
func (q *Queue) Remaining(h Handle) (time.Duration, bool) {
	for _, t := range q.pending {
		if t.id == h {
			return t.due - q.now, true
		}
	}
	return 0, false
}

// Len returns the number of pending timers.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Advance moves virtual time forward by d, firing every timer that comes
// due in order. Timers scheduled by a callback fire in the same call if
// they fall inside the window. Returns the number of timers fired.
func (q *Queue) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := q.now + d
	fired := 0
	for len(q.pending) > 0 && q.pending[0].due <= target {
		t := q.pending[0]
		q.pending = q.pending[1:]
		q.now = t.due
		t.fn()
		fired++
	}
	q.now = target
	return fired
}
