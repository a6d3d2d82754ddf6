package assets

import (
	"context"
	"fmt"
	"sync"
)

// State of an asynchronous load. Resolved and Failed are terminal.
type State int

const (
	Pending State = iota
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Handle is the result of a load that finishes at some later point. The frame loop polls it
// and never blocks on it. It is safe to use from several goroutines.
type Handle[T any] struct {
	mu    sync.Mutex
	state State
	value T
	err   error
	done  chan struct{}
}

func NewHandle[T any]() *Handle[T] {
	return &Handle[T]{done: make(chan struct{})}
}

// Resolve moves a pending handle to Resolved. Returns false if it had already finished.
func (h *Handle[T]) Resolve(v T) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Pending {
		return false
	}
	h.state = Resolved
	h.value = v
	close(h.done)
	return true
}

// Fail moves a pending handle to Failed. Returns false if it had already finished.
func (h *Handle[T]) Fail(err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Pending {
		return false
	}
	h.state = Failed
	h.err = err
	close(h.done)
	return true
}

// Poll returns the current state with the value (Resolved) or the error (Failed).
func (h *Handle[T]) Poll() (T, State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value, h.state, h.err
}

func (h *Handle[T]) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Done is closed once the handle reaches a terminal state.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// LoadAsync runs load on its own goroutine and returns a handle for its result. A panic in
// load fails the handle instead of crashing the process.
func LoadAsync[T any](ctx context.Context, load func(ctx context.Context) (T, error)) *Handle[T] {
	h := NewHandle[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.Fail(fmt.Errorf("load panicked: %v", r))
			}
		}()
		v, err := load(ctx)
		if err != nil {
			h.Fail(err)
			return
		}
		if err := ctx.Err(); err != nil {
			h.Fail(err)
			return
		}
		h.Resolve(v)
	}()
	return h
}
