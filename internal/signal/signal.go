// Package signal provides a latest-value broadcast primitive.
//
// A Signal holds one current value. Every subscriber receives the current
// value immediately and then each subsequent change. Delivery is
// "latest wins": each subscriber owns a single-slot buffer that is
// overwritten on publish, so a slow reader skips superseded values instead
// of queueing them.
package signal

import (
	"context"
	"sync"
)

// Signal is safe for concurrent use. The zero value is not usable; call New.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[chan T]struct{}
}

// New returns a Signal holding initial.
func New[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, subs: make(map[chan T]struct{})}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores v and publishes it to all subscribers.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.publish(v)
}

// Update atomically replaces the current value with fn(current), publishes
// the result and returns it.
func (s *Signal[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = fn(s.value)
	s.publish(s.value)
	return s.value
}

// Subscribe returns a channel that yields the current value right away and
// every later value. The channel is closed once ctx is done.
func (s *Signal[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	s.mu.Lock()
	ch <- s.value
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// publish must be called with mu held. Only publishers write to the
// buffers and they are serialized by mu, so the send after the drain
// never blocks.
func (s *Signal[T]) publish(v T) {
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}
