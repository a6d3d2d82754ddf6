// Package loop runs the per-frame tick: posted events, input, one physics step, render sync
// and present. It has no rendering dependency so it runs headless.
package loop

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// DefaultQueueSize bounds the events waiting for the next tick.
const DefaultQueueSize = 256

// Presenter is the presentation surface.
type Presenter interface {
	Present()
	ShouldClose() bool
}

// Stepper advances the simulation by one nominal step.
type Stepper interface {
	Advance()
}

// Syncer copies simulation state into render state.
type Syncer interface {
	Sync()
}

// Loop drives one tick per display frame: run posted events, poll input, advance physics
// once, sync render state, present. Everything the loop touches is owned by the goroutine
// running it; other goroutines hand work over with Post.
type Loop struct {
	sim       Stepper
	sync      Syncer
	presenter Presenter

	// Input runs after posted events and before the physics step.
	Input func()
	// Interval paces Run when the presenter does not block on vsync. Zero runs flat out.
	Interval time.Duration

	events  chan func()
	done    chan struct{}
	ticks   uint64
	dropped atomic.Uint64
}

func New(sim Stepper, sync Syncer, presenter Presenter, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Loop{
		sim:       sim,
		sync:      sync,
		presenter: presenter,
		events:    make(chan func(), queueSize),
		done:      make(chan struct{}),
	}
}

// Post queues fn to run on the loop goroutine at the start of the next tick. It blocks while
// the queue is full and returns false once the loop has stopped. Do not call it from the
// loop goroutine itself.
func (l *Loop) Post(fn func()) bool {
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// TryPost queues fn unless the queue is full. Use it for events that are superseded by the
// next one, like sensor samples.
func (l *Loop) TryPost(fn func()) bool {
	select {
	case l.events <- fn:
		return true
	default:
		l.dropped.Add(1)
		return false
	}
}

// Tick runs one frame.
func (l *Loop) Tick() {
	l.drain()
	if l.Input != nil {
		l.Input()
	}
	l.sim.Advance()
	l.sync.Sync()
	l.presenter.Present()
	l.ticks++
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.events:
			fn()
		default:
			return
		}
	}
}

// Run ticks until ctx is done or the presenter asks to close.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	var pace <-chan time.Time
	if l.Interval > 0 {
		ticker := time.NewTicker(l.Interval)
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("Loop: stopped after %d ticks", l.ticks)
			return ctx.Err()
		default:
		}
		if l.presenter.ShouldClose() {
			log.Printf("Loop: window closed after %d ticks", l.ticks)
			return nil
		}

		l.Tick()

		if pace != nil {
			select {
			case <-ctx.Done():
			case <-pace:
			}
		}
	}
}

// Dropped is the number of events refused by TryPost.
func (l *Loop) Dropped() uint64 {
	return l.dropped.Load()
}

// Ticks is the number of completed ticks.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}
