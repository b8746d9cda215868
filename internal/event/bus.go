package event

import (
	"sync"
	"sync/atomic"
)

// HandlerFunc receives a delivered envelope.
type HandlerFunc func(Envelope)

// Subscription is a handle for one registered handler.
type Subscription struct {
	id      uint64
	pattern Topic
	handler HandlerFunc
}

// Pattern returns the topic pattern the subscription matches.
func (s *Subscription) Pattern() Topic { return s.pattern }

// Bus delivers events synchronously, in subscription order, to every
// handler whose pattern matches the event topic. Subscription
// management is safe for concurrent use; delivery follows the
// engine's single-threaded model.
type Bus struct {
	mu   sync.RWMutex
	subs []*Subscription
	next uint64

	// Stats
	published atomic.Uint64
	delivered atomic.Uint64
	panics    atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeFunc registers a handler for every topic matching pattern.
func (b *Bus) SubscribeFunc(pattern Topic, fn HandlerFunc) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if pattern == "" {
		return nil, ErrInvalidTopic
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	sub := &Subscription{id: b.next, pattern: pattern, handler: fn}
	b.subs = append(b.subs, sub)
	return sub, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// PublishSync delivers the envelope to every matching handler before
// returning. A panicking handler is recovered and counted; remaining
// handlers still run.
func (b *Bus) PublishSync(env Envelope) {
	if env.Topic == "" {
		return
	}

	b.mu.RLock()
	subs := make([]*Subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	b.published.Add(1)

	for _, sub := range subs {
		if !env.Topic.Match(sub.pattern) {
			continue
		}
		b.deliver(sub, env)
	}
}

func (b *Bus) deliver(sub *Subscription, env Envelope) {
	defer func() {
		if recover() != nil {
			b.panics.Add(1)
		}
	}()
	sub.handler(env)
	b.delivered.Add(1)
}

// Stats reports bus counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	HandlerPanics uint64
	Subscribers   int
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerPanics: b.panics.Load(),
		Subscribers:   n,
	}
}
