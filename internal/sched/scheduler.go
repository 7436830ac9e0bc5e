// Package sched provides the simulated clock and delayed-callback queue that
// drive every timed behaviour in the arena: reload completion, burst shots,
// the equip grace delay. Time is float64 seconds of simulated game time and
// only moves when the game loop calls Advance, so tests control it exactly.
package sched

import (
	"container/heap"
	"math"
)

// Token identifies a scheduled callback. The zero Token is never issued.
type Token uint64

type timer struct {
	at    float64
	seq   uint64
	token Token
	fn    func()
	index int
}

// timerQueue orders timers by fire time, then by scheduling order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler is a single-threaded clock plus a priority queue of callbacks.
type Scheduler struct {
	now   float64
	seq   uint64
	queue timerQueue
	byTok map[Token]*timer
}

// New creates a scheduler with the clock at zero.
func New() *Scheduler {
	return &Scheduler{byTok: make(map[Token]*timer)}
}

// Now returns the current simulated time in seconds.
// While a callback runs, Now reports that callback's fire time.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run delay seconds from now. Negative and NaN delays
// are treated as zero.
func (s *Scheduler) After(delay float64, fn func()) Token {
	if delay < 0 || math.IsNaN(delay) {
		delay = 0
	}
	s.seq++
	t := &timer{
		at:    s.now + delay,
		seq:   s.seq,
		token: Token(s.seq),
		fn:    fn,
	}
	heap.Push(&s.queue, t)
	s.byTok[t.token] = t
	return t.token
}

// Cancel removes a pending callback. It reports whether anything was removed;
// cancelling a token that already fired or was cancelled is a no-op.
func (s *Scheduler) Cancel(tok Token) bool {
	t, ok := s.byTok[tok]
	if !ok {
		return false
	}
	delete(s.byTok, tok)
	heap.Remove(&s.queue, t.index)
	return true
}

// Pending reports whether the callback behind tok has yet to run.
func (s *Scheduler) Pending(tok Token) bool {
	_, ok := s.byTok[tok]
	return ok
}

// Len returns the number of pending callbacks.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Advance moves the clock forward to now, running every callback due at or
// before it in (fire time, scheduling order). Callbacks scheduled by other
// callbacks run in the same call if they fall due. Moving backwards is
// ignored. It returns the number of callbacks run.
func (s *Scheduler) Advance(now float64) int {
	if now < s.now {
		return 0
	}
	ran := 0
	for len(s.queue) > 0 && s.queue[0].at <= now {
		t := heap.Pop(&s.queue).(*timer)
		delete(s.byTok, t.token)
		if t.at > s.now {
			s.now = t.at
		}
		t.fn()
		ran++
	}
	s.now = now
	return ran
}

// Step advances the clock by dt seconds.
func (s *Scheduler) Step(dt float64) int {
	return s.Advance(s.now + dt)
}

// Reset drops every pending callback and rewinds the clock to zero.
// Tokens issued before Reset stay invalid.
func (s *Scheduler) Reset() {
	s.queue = s.queue[:0]
	s.byTok = make(map[Token]*timer)
	s.now = 0
}
