// Package events is the arena's observer registry. Producers Emit into a
// queue; the game loop calls Flush once per tick to deliver everything in
// emission order. Subscriptions are explicit values that are closed when
// their owner is torn down.
package events

import (
	"io"

	"github.com/charmbracelet/log"
)

// maxFlushPasses bounds how many times Flush re-drains events that handlers
// emitted while it was delivering.
const maxFlushPasses = 16

// Handler receives events delivered by Flush.
type Handler func(Event)

// Subscription is a registered handler. Close removes it.
type Subscription struct {
	bus    *Bus
	fn     Handler
	closed bool
}

// Close unsubscribes. It is safe to call more than once and from inside a
// handler; a closed subscription receives nothing further.
func (s *Subscription) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	if s.bus != nil {
		s.bus.dirty = true
	}
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool {
	return s == nil || s.closed
}

// Bus queues events and delivers them to subscribers.
// A nil *Bus accepts Emit and drops the event.
type Bus struct {
	subs   []*Subscription
	queue  []Event
	dirty  bool
	logger *log.Logger
}

// NewBus creates an empty bus. A nil logger discards output.
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bus{logger: logger}
}

// Subscribe registers fn for every event.
func (b *Bus) Subscribe(fn Handler) *Subscription {
	sub := &Subscription{bus: b, fn: fn}
	b.subs = append(b.subs, sub)
	return sub
}

// On registers fn for events of type T only.
func On[T Event](b *Bus, fn func(T)) *Subscription {
	return b.Subscribe(func(e Event) {
		if ev, ok := e.(T); ok {
			fn(ev)
		}
	})
}

// Emit queues an event for the next Flush. It never calls handlers directly.
func (b *Bus) Emit(e Event) {
	if b == nil || e == nil {
		return
	}
	b.queue = append(b.queue, e)
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	if b == nil {
		return 0
	}
	return len(b.queue)
}

// Flush delivers queued events in FIFO order, including events emitted by
// handlers during delivery. It returns the number of events delivered.
func (b *Bus) Flush() int {
	if b == nil {
		return 0
	}
	delivered := 0
	for pass := 0; len(b.queue) > 0; pass++ {
		if pass == maxFlushPasses {
			b.logger.Warn("event flush did not settle, dropping events", "dropped", len(b.queue))
			b.queue = b.queue[:0]
			break
		}
		batch := b.queue
		b.queue = nil
		for _, e := range batch {
			// Handlers subscribed during delivery start with the next event.
			subs := b.subs
			for _, sub := range subs {
				if !sub.closed {
					sub.fn(e)
				}
			}
			delivered++
		}
	}
	b.prune()
	return delivered
}

// Len returns the number of open subscriptions.
func (b *Bus) Len() int {
	n := 0
	for _, sub := range b.subs {
		if !sub.closed {
			n++
		}
	}
	return n
}

func (b *Bus) prune() {
	if !b.dirty {
		return
	}
	kept := b.subs[:0]
	for _, sub := range b.subs {
		if !sub.closed {
			kept = append(kept, sub)
		}
	}
	for i := len(kept); i < len(b.subs); i++ {
		b.subs[i] = nil
	}
	b.subs = kept
	b.dirty = false
}

// Scope groups subscriptions that share a lifetime.
type Scope struct {
	subs []*Subscription
}

// Add tracks sub and returns it.
func (s *Scope) Add(sub *Subscription) *Subscription {
	s.subs = append(s.subs, sub)
	return sub
}

// Close closes every tracked subscription.
func (s *Scope) Close() {
	for _, sub := range s.subs {
		sub.Close()
	}
	s.subs = nil
}
