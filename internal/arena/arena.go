package arena

import (
	"math"

	"tiltbox/internal/config"
	"tiltbox/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane names, in the order they are attached to the compound.
const (
	Floor   = "floor"
	Ceiling = "ceiling"
	Left    = "left"
	Right   = "right"
	Top     = "top"
	Bottom  = "bottom"
)

// PlaneNames lists the six planes in attachment order.
var PlaneNames = []string{Floor, Ceiling, Left, Right, Top, Bottom}

// Geometry is the inner size of the box. The floor sits at z=0 and the ceiling at z=Depth;
// X and Y are centered on the origin.
type Geometry struct {
	Width  float64
	Height float64
	Depth  float64
}

// GeometryFor derives the box size from the viewport, arena percent, ball radius and
// ceiling margin.
func GeometryFor(cfg config.Config) Geometry {
	return Geometry{
		Width:  cfg.ArenaWidth(),
		Height: cfg.ArenaHeight(),
		Depth:  cfg.ArenaDepth(),
	}
}

// Center is the middle of the box in the enclosure frame.
func (g Geometry) Center() mgl64.Vec3 {
	return mgl64.Vec3{0, 0, g.Depth / 2}
}

// Enclosure is the six-sided box: one static body whose compound shape holds a plane per
// side. Every plane normal points into the box, so rotating the body rotates the whole
// volume without opening seams.
type Enclosure struct {
	Geometry Geometry
	body     *physics.Body
	compound *physics.Compound
}

// New builds the enclosure body. It is static and starts with identity orientation.
func New(geom Geometry, material *physics.Material) *Enclosure {
	halfW := geom.Width / 2
	halfH := geom.Height / 2
	xAxis := mgl64.Vec3{1, 0, 0}
	yAxis := mgl64.Vec3{0, 1, 0}

	c := &physics.Compound{}
	c.Add(Floor, mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent(), &physics.Plane{})
	c.Add(Ceiling, mgl64.Vec3{0, 0, geom.Depth}, mgl64.QuatRotate(math.Pi, xAxis), &physics.Plane{})
	c.Add(Left, mgl64.Vec3{-halfW, 0, 0}, mgl64.QuatRotate(math.Pi/2, yAxis), &physics.Plane{})
	c.Add(Right, mgl64.Vec3{halfW, 0, 0}, mgl64.QuatRotate(-math.Pi/2, yAxis), &physics.Plane{})
	c.Add(Top, mgl64.Vec3{0, halfH, 0}, mgl64.QuatRotate(math.Pi/2, xAxis), &physics.Plane{})
	c.Add(Bottom, mgl64.Vec3{0, -halfH, 0}, mgl64.QuatRotate(-math.Pi/2, xAxis), &physics.Plane{})

	return &Enclosure{
		Geometry: geom,
		body:     physics.NewBody("enclosure", 0, c, material),
		compound: c,
	}
}

// Body is the static body to add to the physics world.
func (e *Enclosure) Body() *physics.Body {
	return e.body
}

// SetOrientation turns the whole box. This is the only change made after construction.
func (e *Enclosure) SetOrientation(q mgl64.Quat) {
	e.body.SetOrientation(q)
}

func (e *Enclosure) Orientation() mgl64.Quat {
	return e.body.Orientation
}

// Offset returns the local offset of the named plane.
func (e *Enclosure) Offset(name string) (mgl64.Vec3, bool) {
	child, ok := e.compound.Find(name)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return child.Offset, true
}

// Parts returns the six planes in the enclosure frame, in attachment order.
func (e *Enclosure) Parts() []physics.Child {
	return e.compound.Children
}

// Planes returns the six planes in world space.
func (e *Enclosure) Planes() []physics.WorldPlane {
	return physics.WorldPlanes(e.body)
}

// Center is the middle of the box in world space.
func (e *Enclosure) Center() mgl64.Vec3 {
	return e.body.PointToWorld(e.Geometry.Center())
}

// ToLocal converts a world point into the enclosure frame.
func (e *Enclosure) ToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return e.body.PointToLocal(p)
}

// Contains reports whether a sphere of the given radius centered at world point p lies
// inside the box, allowing tolerance of overlap with any wall.
func (e *Enclosure) Contains(p mgl64.Vec3, radius, tolerance float64) bool {
	local := e.ToLocal(p)
	halfW := e.Geometry.Width / 2
	halfH := e.Geometry.Height / 2
	limit := func(v, lo, hi float64) bool {
		return v-radius >= lo-tolerance && v+radius <= hi+tolerance
	}
	return limit(local.X(), -halfW, halfW) &&
		limit(local.Y(), -halfH, halfH) &&
		limit(local.Z(), 0, e.Geometry.Depth)
}
