package components

import (
	"tiltbox/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera looks from its object's world position at a fixed target.
type Camera struct {
	engine.BaseComponent
	Target     rl.Vector3
	Up         rl.Vector3
	FOV        float32
	Projection rl.CameraProjection

	// Orbit swings the camera around Target about the Up axis, OrbitSpeed radians per second.
	Orbit      bool
	OrbitSpeed float32
}

func NewCamera(target rl.Vector3, fov float32) *Camera {
	return &Camera{
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		FOV:        fov,
		Projection: rl.CameraPerspective,
	}
}

func (c *Camera) Update(deltaTime float32) {
	g := c.GetGameObject()
	if !c.Orbit || g == nil || deltaTime <= 0 {
		return
	}
	turn := rl.QuaternionFromAxisAngle(c.Up, c.OrbitSpeed*deltaTime)
	offset := rl.Vector3Subtract(g.Transform.Position, c.Target)
	g.Transform.Position = rl.Vector3Add(c.Target, rl.Vector3RotateByQuaternion(offset, turn))
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}

	return rl.Camera3D{
		Position:   g.WorldPosition(),
		Target:     c.Target,
		Up:         c.Up,
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
