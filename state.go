package floating

import (
	"sync"
	"sync/atomic"

	"github.com/grindlemire/go-floating/internal/debug"
)

// globalBindingID is a global counter for generating unique binding IDs.
var globalBindingID atomic.Uint64

// State wraps a value and notifies bindings when it changes.
//
// Thread Safety Rules:
//   - Get() is safe to call from any goroutine
//   - Set() must only be called from the document loop
//   - For background updates, use Loop.Post
type State[T comparable] struct {
	mu       sync.RWMutex
	value    T
	bindings []*binding[T]
}

// binding represents a registered callback that fires when state changes.
type binding[T any] struct {
	id     uint64
	fn     func(T)
	active bool
}

// Unbind is a handle to remove a binding or listener.
type Unbind func()

// NewState creates a new state with the given initial value.
func NewState[T comparable](initial T) *State[T] {
	return &State[T]{value: initial}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies all bindings. Setting the value it
// already holds is a no-op, so bindings only observe real changes.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return
	}
	s.value = v
	// Drop unbound entries while holding the lock.
	active := make([]*binding[T], 0, len(s.bindings))
	for _, b := range s.bindings {
		if b.active {
			active = append(active, b)
		}
	}
	s.bindings = active
	s.mu.Unlock()

	debug.Log("State.Set: executing %d bindings", len(active))
	for _, b := range active {
		s.mu.RLock()
		live := b.active
		s.mu.RUnlock()
		if live {
			b.fn(v)
		}
	}
}

// Update applies a function to the current value and sets the result.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Bind registers a function to be called when the value changes.
// Bindings are executed in registration order.
func (s *State[T]) Bind(fn func(T)) Unbind {
	id := globalBindingID.Add(1)

	s.mu.Lock()
	b := &binding[T]{id: id, fn: fn, active: true}
	s.bindings = append(s.bindings, b)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		b.active = false
		s.mu.Unlock()
	}
}

// Subscribe registers a value-less change callback, which lets a State act
// as an effect dependency.
func (s *State[T]) Subscribe(fn func()) Unbind {
	return s.Bind(func(T) { fn() })
}

// Dependency is anything an Effect can re-run on.
type Dependency interface {
	Subscribe(fn func()) Unbind
}
