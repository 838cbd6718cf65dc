// Package pubsub provides a minimal generic broker for fan-out of
// domain events to interested subscribers (the TUI, mostly).
package pubsub

import (
	"context"
	"sync"
)

// EventType describes what happened to the payload.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event wraps a payload with its event type.
type Event[T any] struct {
	Type    EventType
	Payload T
}

// subscriber buffer size. Slow consumers drop events rather than block
// publishers; every event here is a "refresh yourself" hint, so a drop
// is recovered by the next event.
const subscriberBufferSize = 64

// Broker fans events out to all active subscribers.
type Broker[T any] struct {
	mu       sync.RWMutex
	subs     map[chan Event[T]]struct{}
	done     chan struct{}
	shutOnce sync.Once
}

// NewBroker creates an empty broker ready for subscriptions.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[chan Event[T]]struct{}),
		done: make(chan struct{}),
	}
}

// Subscribe registers a new subscriber. The returned channel is closed
// when ctx is canceled or the broker shuts down, whichever comes first.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	ch := make(chan Event[T], subscriberBufferSize)

	b.mu.Lock()
	select {
	case <-b.done:
		b.mu.Unlock()
		close(ch)
		return ch
	default:
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Publish delivers an event to every subscriber. Subscribers whose
// buffers are full miss the event instead of blocking the publisher.
func (b *Broker[T]) Publish(t EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	select {
	case <-b.done:
		return
	default:
	}

	evt := Event[T]{Type: t, Payload: payload}
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Shutdown closes all subscriber channels and stops accepting new
// subscriptions. Safe to call more than once.
func (b *Broker[T]) Shutdown() {
	b.shutOnce.Do(func() {
		close(b.done)
	})
}
