package physics

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultFixedTimeStep is the nominal step used by FixedStep.
const DefaultFixedTimeStep = 1.0 / 60.0

// DefaultMaxSubSteps bounds the catch-up work done by a single Step call.
const DefaultMaxSubSteps = 10

// World owns gravity, the bodies and the contact materials, and advances time in
// fixed increments.
//
// Contacts are sphere against plane only: every dynamic sphere is tested against
// every plane of every static body. Planes have zero thickness, so a sphere that
// moves further than its radius plus the plane distance in one step can end up on
// the far side of a finite wall. The planes here are infinite, which pushes such a
// sphere back, but a sphere crossing two planes in one step is not recovered.
type World struct {
	Gravity       mgl64.Vec3
	FixedTimeStep float64
	MaxSubSteps   int

	bodies           []*Body
	contactMaterials []*ContactMaterial

	accumulator float64
	time        float64
	steps       uint64
	dt          float64 // size of the step in progress

	// Contact tracking for callbacks
	activeContacts   map[contactKey]bool // contacts from last step
	currentContacts  map[contactKey]bool // contacts this step
	contactListeners []func(ContactEvent)
}

func NewWorld(gravity mgl64.Vec3, fixedTimeStep float64) *World {
	if fixedTimeStep <= 0 {
		fixedTimeStep = DefaultFixedTimeStep
	}
	return &World{
		Gravity:         gravity,
		FixedTimeStep:   fixedTimeStep,
		MaxSubSteps:     DefaultMaxSubSteps,
		bodies:          make([]*Body, 0),
		activeContacts:  make(map[contactKey]bool),
		currentContacts: make(map[contactKey]bool),
	}
}

func (w *World) AddBody(b *Body) {
	w.bodies = append(w.bodies, b)
}

func (w *World) AddContactMaterial(cm *ContactMaterial) {
	w.contactMaterials = append(w.contactMaterials, cm)
}

// ContactMaterial returns the pairing for a and b, or DefaultContactMaterial.
func (w *World) ContactMaterial(a, b *Material) ContactMaterial {
	for _, cm := range w.contactMaterials {
		if cm.Matches(a, b) {
			return *cm
		}
	}
	return DefaultContactMaterial
}

// OnContact registers a listener for contact begin/end events.
func (w *World) OnContact(fn func(ContactEvent)) {
	if fn == nil {
		return
	}
	w.contactListeners = append(w.contactListeners, fn)
}

// Time is the simulated time in seconds.
func (w *World) Time() float64 {
	return w.time
}

// StepCount is the number of internal steps taken so far.
func (w *World) StepCount() uint64 {
	return w.steps
}

// FixedStep advances the world by one nominal step.
func (w *World) FixedStep() {
	w.Step(w.FixedTimeStep, w.FixedTimeStep, w.MaxSubSteps)
}

// Step adds elapsed seconds to the accumulator and runs as many dt-sized steps as
// fit, at most maxSubSteps. Time that still does not fit is dropped so a long stall
// does not turn into a spiral of catch-up work. Returns the number of steps run.
func (w *World) Step(dt, elapsed float64, maxSubSteps int) int {
	if dt <= 0 || elapsed < 0 || math.IsNaN(elapsed) {
		return 0
	}
	if maxSubSteps < 1 {
		maxSubSteps = 1
	}

	w.accumulator += elapsed
	substeps := 0
	// small epsilon so that elapsed == dt always produces exactly one step
	for w.accumulator >= dt-1e-12 && substeps < maxSubSteps {
		w.internalStep(dt)
		w.accumulator -= dt
		substeps++
	}
	if w.accumulator < 0 {
		w.accumulator = 0
	}
	if w.accumulator >= dt-1e-12 {
		log.Printf("Physics: dropped %.3fs of simulation time (max %d substeps)", w.accumulator, maxSubSteps)
		w.accumulator = 0
	}
	return substeps
}

func (w *World) internalStep(dt float64) {
	w.dt = dt
	w.currentContacts = make(map[contactKey]bool)

	// 1. Apply gravity and damping, then integrate
	for _, b := range w.bodies {
		if b.IsStatic() {
			continue
		}

		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		b.Velocity = b.Velocity.Mul(math.Pow(1-b.LinearDamping, dt))
		b.AngularVelocity = b.AngularVelocity.Mul(math.Pow(1-b.AngularDamping, dt))

		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		b.Orientation = integrateOrientation(b.Orientation, b.AngularVelocity, dt)
	}

	// 2. Dynamic spheres vs static planes
	for _, b := range w.bodies {
		if b.IsStatic() {
			continue
		}
		sphere, ok := b.Shape.(*Sphere)
		if !ok {
			continue
		}
		for _, static := range w.bodies {
			if !static.IsStatic() {
				continue
			}
			w.resolveSphereVsStatic(b, sphere, static)
		}
	}

	// 3. Dispatch contact callbacks
	w.dispatchContactCallbacks()

	w.time += dt
	w.steps++
}

// restingSpeed is the approach speed below which a contact does not bounce:
// twice the speed gravity adds in one step, so a ball at rest stays at rest.
func (w *World) restingSpeed() float64 {
	return math.Max(minRestingSpeed, 2*w.Gravity.Len()*w.dt)
}

// integrateOrientation advances q by angular velocity omega over dt.
func integrateOrientation(q mgl64.Quat, omega mgl64.Vec3, dt float64) mgl64.Quat {
	if omega.Len() == 0 {
		return q
	}
	spin := mgl64.Quat{W: 0, V: omega}.Mul(q).Scale(0.5 * dt)
	return q.Add(spin).Normalize()
}
