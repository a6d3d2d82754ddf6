package physics

import "github.com/go-gl/mathgl/mgl64"

// Default damping, applied per second.
const (
	DefaultLinearDamping  = 0.01
	DefaultAngularDamping = 0.01
)

// Body is a rigid body. Mass 0 makes it static: gravity and impulses never move it,
// only explicit SetPosition/SetOrientation calls do.
type Body struct {
	Name            string
	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3 // radians per second
	Mass            float64
	Shape           Shape
	Material        *Material
	LinearDamping   float64
	AngularDamping  float64

	invMass    float64
	invInertia float64 // scalar, bodies are spheres or static
}

func NewBody(name string, mass float64, shape Shape, material *Material) *Body {
	b := &Body{
		Name:           name,
		Orientation:    mgl64.QuatIdent(),
		Mass:           mass,
		Shape:          shape,
		Material:       material,
		LinearDamping:  DefaultLinearDamping,
		AngularDamping: DefaultAngularDamping,
	}
	b.updateMassProperties()
	return b
}

func (b *Body) updateMassProperties() {
	if b.Mass <= 0 {
		b.Mass = 0
		b.invMass = 0
		b.invInertia = 0
		return
	}
	b.invMass = 1 / b.Mass
	if s, ok := b.Shape.(*Sphere); ok && s.Radius > 0 {
		// solid sphere
		b.invInertia = 1 / (0.4 * b.Mass * s.Radius * s.Radius)
	}
}

func (b *Body) IsStatic() bool {
	return b.Mass == 0
}

func (b *Body) SetPosition(p mgl64.Vec3) {
	b.Position = p
}

// SetOrientation replaces the orientation. The quaternion is normalized; a zero
// quaternion is ignored.
func (b *Body) SetOrientation(q mgl64.Quat) {
	if q.Len() == 0 {
		return
	}
	b.Orientation = q.Normalize()
}

// PointToWorld converts a point in body space to world space.
func (b *Body) PointToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return b.Position.Add(b.Orientation.Rotate(local))
}

// VectorToWorld rotates a direction from body space to world space.
func (b *Body) VectorToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return b.Orientation.Rotate(local)
}

// PointToLocal converts a world point to body space.
func (b *Body) PointToLocal(world mgl64.Vec3) mgl64.Vec3 {
	return b.Orientation.Conjugate().Rotate(world.Sub(b.Position))
}

// ApplyImpulse changes velocity by impulse applied at rel (relative to the center of mass).
func (b *Body) ApplyImpulse(impulse, rel mgl64.Vec3) {
	if b.IsStatic() {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(b.invMass))
	b.AngularVelocity = b.AngularVelocity.Add(rel.Cross(impulse).Mul(b.invInertia))
}

// VelocityAt returns the velocity of a point rel from the center of mass.
func (b *Body) VelocityAt(rel mgl64.Vec3) mgl64.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(rel))
}

// Speed is the linear speed.
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}
