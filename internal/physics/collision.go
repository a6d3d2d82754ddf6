package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minRestingSpeed is the floor of World.restingSpeed.
const minRestingSpeed = 0.5

// ContactEvent is sent to OnContact listeners when a sphere starts or stops
// touching a plane.
type ContactEvent struct {
	Body        *Body  // dynamic body
	Other       *Body  // static body
	Part        string // compound child name, empty for a bare plane
	Normal      mgl64.Vec3
	ImpactSpeed float64 // approach speed along the normal, 0 on end
	Began       bool
}

type contactKey struct {
	body  *Body
	other *Body
	part  int
}

// WorldPlane is a plane resolved to world space.
type WorldPlane struct {
	Name   string
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// Distance is the signed distance of p from the plane, positive on the normal side.
func (p WorldPlane) Distance(point mgl64.Vec3) float64 {
	return point.Sub(p.Point).Dot(p.Normal)
}

// WorldPlanes returns the planes of a body in world space, in shape order.
func WorldPlanes(b *Body) []WorldPlane {
	switch s := b.Shape.(type) {
	case *Plane:
		return []WorldPlane{{
			Point:  b.Position,
			Normal: b.VectorToWorld(PlaneNormal),
		}}
	case *Compound:
		planes := make([]WorldPlane, 0, len(s.Children))
		for _, child := range s.Children {
			if _, ok := child.Shape.(*Plane); !ok {
				continue
			}
			planes = append(planes, WorldPlane{
				Name:   child.Name,
				Point:  b.PointToWorld(child.Offset),
				Normal: b.VectorToWorld(child.Orientation.Rotate(PlaneNormal)).Normalize(),
			})
		}
		return planes
	}
	return nil
}

func (w *World) resolveSphereVsStatic(b *Body, sphere *Sphere, static *Body) {
	for i, plane := range WorldPlanes(static) {
		w.resolveSphereVsPlane(b, sphere, static, plane, i)
	}
}

// resolveSphereVsPlane pushes the sphere out of the plane and applies the normal
// and friction impulses of the material pair.
func (w *World) resolveSphereVsPlane(b *Body, sphere *Sphere, static *Body, plane WorldPlane, part int) {
	dist := plane.Distance(b.Position)
	if dist >= sphere.Radius {
		return
	}

	normal := plane.Normal
	penetration := sphere.Radius - dist

	// Push out (static doesn't move)
	b.Position = b.Position.Add(normal.Mul(penetration))

	// Contact point relative to the sphere center
	rel := normal.Mul(-sphere.Radius)
	vel := b.VelocityAt(rel)
	velAlongNormal := vel.Dot(normal)

	key := contactKey{body: b, other: static, part: part}
	if !w.activeContacts[key] {
		impact := 0.0
		if velAlongNormal < 0 {
			impact = -velAlongNormal
		}
		w.notify(ContactEvent{Body: b, Other: static, Part: plane.Name, Normal: normal, ImpactSpeed: impact, Began: true})
	}
	w.currentContacts[key] = true

	if velAlongNormal >= 0 {
		return
	}

	cm := w.ContactMaterial(b.Material, static.Material)
	e := cm.Restitution
	if -velAlongNormal < w.restingSpeed() {
		e = 0
	}

	// Normal impulse. rel is parallel to the normal so there is no angular term.
	jn := -(1 + e) * velAlongNormal / b.invMass
	b.ApplyImpulse(normal.Mul(jn), rel)

	// Friction impulse, clamped by the Coulomb cone
	vel = b.VelocityAt(rel)
	tangent := vel.Sub(normal.Mul(vel.Dot(normal)))
	slip := tangent.Len()
	if slip < 1e-9 || cm.Friction == 0 {
		return
	}
	tangent = tangent.Mul(1 / slip)
	k := b.invMass + b.invInertia*sphere.Radius*sphere.Radius
	jt := math.Min(slip/k, cm.Friction*jn)
	b.ApplyImpulse(tangent.Mul(-jt), rel)
}

func (w *World) notify(ev ContactEvent) {
	for _, listener := range w.contactListeners {
		listener(ev)
	}
}

// dispatchContactCallbacks sends end events for contacts that ended this step.
// Begin events are sent while resolving, once per new contact.
func (w *World) dispatchContactCallbacks() {
	for key := range w.activeContacts {
		if w.currentContacts[key] {
			continue
		}
		ev := ContactEvent{Body: key.body, Other: key.other, Began: false}
		planes := WorldPlanes(key.other)
		if key.part < len(planes) {
			ev.Part = planes[key.part].Name
			ev.Normal = planes[key.part].Normal
		}
		w.notify(ev)
	}

	// Swap buffers
	w.activeContacts = w.currentContacts
}
