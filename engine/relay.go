package engine

import (
	"context"
	"sync"
	"sync/atomic"
)

// Relay hands values from one producer to one consumer keeping only the
// newest. A producer that outpaces the consumer overwrites pending values
// instead of blocking.
type Relay[T any] struct {
	mu      sync.Mutex
	pending T
	full    bool
	closed  bool
	signal  chan struct{}
	dropped atomic.Uint64
}

func NewRelay[T any]() *Relay[T] {
	return &Relay[T]{signal: make(chan struct{}, 1)}
}

// Send publishes v, replacing an unread value. It reports false after Close.
func (r *Relay[T]) Send(v T) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	if r.full {
		r.dropped.Add(1)
	}
	r.pending = v
	r.full = true
	r.mu.Unlock()

	r.notify()
	return true
}

// Close marks the end of the stream. A pending value can still be drained.
func (r *Relay[T]) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.notify()
}

// Drain takes the pending value, if any.
func (r *Relay[T]) Drain() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.pending, r.full
	var zero T
	r.pending = zero
	r.full = false
	return v, ok
}

// Receive blocks until a value is pending, the relay is closed or ctx is
// done. ok is false on close or cancellation with nothing pending.
func (r *Relay[T]) Receive(ctx context.Context) (v T, ok bool) {
	for {
		r.mu.Lock()
		if r.full {
			v = r.pending
			var zero T
			r.pending = zero
			r.full = false
			r.mu.Unlock()
			return v, true
		}
		closed := r.closed
		r.mu.Unlock()

		if closed {
			return v, false
		}

		select {
		case <-r.signal:
		case <-ctx.Done():
			return v, false
		}
	}
}

// Dropped counts values overwritten before the consumer read them.
func (r *Relay[T]) Dropped() uint64 {
	return r.dropped.Load()
}

func (r *Relay[T]) notify() {
	select {
	case r.signal <- struct{}{}:
	default:
	}
}

// Consumer is a goroutine draining a Relay.
type Consumer struct {
	done     chan struct{}
	err      error
	received atomic.Uint64
}

// RunRenderer starts a goroutine calling fn with every value received from
// relay until the relay is closed, ctx is done or fn fails.
func RunRenderer[T any](ctx context.Context, relay *Relay[T], fn func(T) error) *Consumer {
	c := &Consumer{done: make(chan struct{})}
	go func() {
		defer close(c.done)
		for {
			v, ok := relay.Receive(ctx)
			if !ok {
				return
			}
			c.received.Add(1)
			if err := fn(v); err != nil {
				c.err = err
				return
			}
		}
	}()
	return c
}

// Wait joins the consumer and returns the error that stopped it.
func (c *Consumer) Wait() error {
	<-c.done
	return c.err
}

// Received counts the values handed to the consumer function.
func (c *Consumer) Received() uint64 {
	return c.received.Load()
}
