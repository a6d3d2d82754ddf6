package world

import (
	"github.com/go-gl/mathgl/mgl64"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Physics runs in float64 and raylib in float32. The frames are the same: Z is up out of the
// floor and the camera looks down -Z.

func toVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())}
}

func toQuaternion(q mgl64.Quat) rl.Quaternion {
	return rl.Quaternion{X: float32(q.V.X()), Y: float32(q.V.Y()), Z: float32(q.V.Z()), W: float32(q.W)}
}
