// Package timer schedules deferred callbacks against wall-clock time.
//
// Nothing here starts goroutines. The owner calls Fire with the current time
// from its frame tick, so callbacks always run on the UI goroutine and keep
// running while the simulation is paused.
package timer

import (
	"sort"
	"time"
)

// Token identifies a scheduled callback. The zero Token is never issued.
type Token uint64

type entry struct {
	token Token
	due   time.Time
	fn    func()
}

// Queue holds pending callbacks.
type Queue struct {
	next    Token
	pending map[Token]entry
	stopped bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		pending: make(map[Token]entry),
	}
}

// After schedules fn to run once Fire is called with a time at or past now+d.
// After returns 0 and drops fn if the queue has been stopped.
func (q *Queue) After(now time.Time, d time.Duration, fn func()) Token {
	if q.stopped {
		return 0
	}
	q.next++
	q.pending[q.next] = entry{token: q.next, due: now.Add(d), fn: fn}
	return q.next
}

// Cancel removes a pending callback. It reports whether one was removed.
func (q *Queue) Cancel(t Token) bool {
	if _, ok := q.pending[t]; !ok {
		return false
	}
	delete(q.pending, t)
	return true
}

// Pending reports whether t is still scheduled.
func (q *Queue) Pending(t Token) bool {
	_, ok := q.pending[t]
	return ok
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Fire runs every callback due at now, earliest first, and returns how many ran.
// Callbacks may schedule or cancel others.
func (q *Queue) Fire(now time.Time) int {
	var due []entry
	for _, e := range q.pending {
		if !now.Before(e.due) {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].token < due[j].token
		}
		return due[i].due.Before(due[j].due)
	})

	ran := 0
	for _, e := range due {
		// An earlier callback may have canceled this one.
		if _, ok := q.pending[e.token]; !ok {
			continue
		}
		delete(q.pending, e.token)
		e.fn()
		ran++
	}
	return ran
}

// Stopped reports whether Stop has been called.
func (q *Queue) Stopped() bool {
	return q.stopped
}

// Stop cancels everything and refuses new callbacks. Used on screen teardown.
func (q *Queue) Stop() {
	q.stopped = true
	clear(q.pending)
}
