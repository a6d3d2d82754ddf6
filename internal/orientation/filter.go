package orientation

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Orientable receives the orientation built from each applied sample.
type Orientable interface {
	SetOrientation(q mgl64.Quat)
}

// OrientationState is the last applied tilt. The filter writes it; the game loop reads it.
type OrientationState struct {
	Angles      Angles
	Orientation mgl64.Quat
	Applied     int
	LastApplied time.Time
}

// Filter turns raw sensor events into throttled orientation updates on a target.
//
// It starts disabled. RequestMotionAccess asks the Gate once; samples are applied only
// after access is granted (or the platform needs no consent). A denial disables the
// filter for the rest of the session.
type Filter struct {
	target   Orientable
	gate     Gate
	dispatch Dispatcher
	throttle *Throttle
	order    AxisOrder

	mu         sync.Mutex
	permission Permission
	waiters    []chan Permission

	state   OrientationState
	dropped int
}

// NewFilter creates a filter applying to target. gate may be nil on platforms without a
// consent step; dispatch may be nil to deliver the decision on the gate's goroutine.
func NewFilter(target Orientable, gate Gate, dispatch Dispatcher, throttle *Throttle, order AxisOrder) *Filter {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	if throttle == nil {
		throttle = NewThrottle(0, nil)
	}
	if order != OrderYXZ {
		order = OrderXYZ
	}
	return &Filter{
		target:   target,
		gate:     gate,
		dispatch: dispatch,
		throttle: throttle,
		order:    order,
		state:    OrientationState{Orientation: mgl64.QuatIdent()},
	}
}

// RequestMotionAccess starts the consent flow. Only the first call reaches the gate; every
// call gets a channel that receives the decision once and is then closed.
func (f *Filter) RequestMotionAccess(ctx context.Context) <-chan Permission {
	out := make(chan Permission, 1)

	f.mu.Lock()
	switch f.permission {
	case PermissionUnknown:
		if f.gate == nil {
			f.mu.Unlock()
			f.decide(PermissionNotRequired)
			out <- PermissionNotRequired
			close(out)
			return out
		}
		f.permission = PermissionPending
		f.waiters = append(f.waiters, out)
		f.mu.Unlock()
		go f.ask(ctx)
		return out
	case PermissionPending:
		f.waiters = append(f.waiters, out)
		f.mu.Unlock()
		return out
	default:
		p := f.permission
		f.mu.Unlock()
		out <- p
		close(out)
		return out
	}
}

func (f *Filter) ask(ctx context.Context) {
	p, err := f.gate.RequestPermission(ctx)
	if err != nil {
		if !errors.Is(err, ErrDenied) {
			log.Printf("Sensor: permission request failed: %v", err)
		}
		p = PermissionDenied
	}
	if !p.Allowed() {
		p = PermissionDenied
	}
	f.dispatch(func() { f.decide(p) })
}

func (f *Filter) decide(p Permission) {
	f.mu.Lock()
	f.permission = p
	waiters := f.waiters
	f.waiters = nil
	f.mu.Unlock()

	log.Printf("Sensor: motion access %s", p)
	for _, w := range waiters {
		w <- p
		close(w)
	}
}

// Permission is the current consent state.
func (f *Filter) Permission() Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.permission
}

// Enabled reports whether samples are being applied.
func (f *Filter) Enabled() bool {
	return f.Permission().Allowed()
}

// OnSample applies raw to the target unless the filter is disabled or the throttle is
// cooling down. Reports whether the sample was applied. An axis missing from raw keeps its
// last applied value; a sample with no usable axis is ignored without using the throttle.
func (f *Filter) OnSample(raw RawSample) bool {
	if !f.Enabled() || raw.Empty() {
		return false
	}
	if !f.throttle.Allow() {
		f.dropped++
		return false
	}

	angles := f.state.Angles.Update(raw)
	q := angles.Quat(f.order)
	f.state.Angles = angles
	f.state.Orientation = q
	f.state.Applied++
	f.state.LastApplied = f.throttle.LastApplied()
	if f.state.Applied == 1 {
		log.Printf("Sensor: first sample applied (beta %.1f°, gamma %.1f°, alpha %.1f°)",
			mgl64.RadToDeg(angles.Beta), mgl64.RadToDeg(angles.Gamma), mgl64.RadToDeg(angles.Alpha))
	}

	if f.target != nil {
		f.target.SetOrientation(q)
	}
	return true
}

// State returns a copy of the last applied tilt.
func (f *Filter) State() OrientationState {
	return f.state
}

// Dropped is the number of samples refused by the throttle.
func (f *Filter) Dropped() int {
	return f.dropped
}
