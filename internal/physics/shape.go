package physics

import "github.com/go-gl/mathgl/mgl64"

type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapePlane
	ShapeCompound
)

func (t ShapeType) String() string {
	switch t {
	case ShapeSphere:
		return "sphere"
	case ShapePlane:
		return "plane"
	case ShapeCompound:
		return "compound"
	}
	return "unknown"
}

// Shape is the collision geometry attached to a Body.
type Shape interface {
	Type() ShapeType
}

// Sphere is centered on the body origin.
type Sphere struct {
	Radius float64
}

func (s *Sphere) Type() ShapeType { return ShapeSphere }

// PlaneNormal is the local normal of every Plane. Contacts are generated on the +Z side.
var PlaneNormal = mgl64.Vec3{0, 0, 1}

// Plane is an infinite plane through the local origin facing +Z.
type Plane struct{}

func (p *Plane) Type() ShapeType { return ShapePlane }

// Child is one sub-shape of a Compound, placed relative to the parent body.
type Child struct {
	Name        string
	Offset      mgl64.Vec3
	Orientation mgl64.Quat
	Shape       Shape
}

// Compound groups sub-shapes that share one body transform. Order of Add is preserved.
type Compound struct {
	Children []Child
}

func (c *Compound) Type() ShapeType { return ShapeCompound }

// Add attaches a sub-shape with its own local offset and orientation.
func (c *Compound) Add(name string, offset mgl64.Vec3, orientation mgl64.Quat, shape Shape) {
	c.Children = append(c.Children, Child{
		Name:        name,
		Offset:      offset,
		Orientation: orientation.Normalize(),
		Shape:       shape,
	})
}

// Find returns the child with the given name.
func (c *Compound) Find(name string) (Child, bool) {
	for _, child := range c.Children {
		if child.Name == name {
			return child, true
		}
	}
	return Child{}, false
}
