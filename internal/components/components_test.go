package components

import (
	"math"
	"testing"

	"tiltbox/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestCameraFollowsObject(t *testing.T) {
	obj := engine.NewGameObject("Camera")
	obj.Transform.Position = rl.Vector3{X: 0, Y: 0, Z: 300}
	cam := NewCamera(rl.Vector3{}, 30)
	obj.AddComponent(cam)

	rc := cam.GetRaylibCamera()
	if rc.Position != obj.Transform.Position {
		t.Errorf("Expected camera at %v, got %v", obj.Transform.Position, rc.Position)
	}
	if rc.Fovy != 30 {
		t.Errorf("Expected fov 30, got %v", rc.Fovy)
	}
	if rc.Target != (rl.Vector3{}) {
		t.Errorf("Expected target at origin, got %v", rc.Target)
	}
}

func TestCameraWithoutObject(t *testing.T) {
	cam := NewCamera(rl.Vector3{}, 45)
	if rc := cam.GetRaylibCamera(); rc.Fovy != 0 {
		t.Errorf("Expected zero camera when detached, got %+v", rc)
	}
}

func TestRenderersStartUnloaded(t *testing.T) {
	m := NewModelRendererFromFile("assets/ball.glb", rl.White)
	if m.Loaded() {
		t.Error("Expected model renderer to defer loading until Draw")
	}

	obj := engine.NewGameObject("Ball")
	mesh := NewMeshRenderer(MeshSphere, rl.Red, rl.Vector3{X: 10})
	obj.AddComponent(mesh)
	if engine.GetComponent[*MeshRenderer](obj) != mesh {
		t.Error("Expected mesh renderer to be attached")
	}
	// Unload before the first Draw must not touch the GPU
	mesh.Unload()
}

func TestCameraOrbit(t *testing.T) {
	obj := engine.NewGameObject("Camera")
	obj.Transform.Position = rl.Vector3{X: 0, Y: 0, Z: 300}
	cam := NewCamera(rl.Vector3{}, 30)
	obj.AddComponent(cam)

	cam.Update(1)
	if obj.Transform.Position != (rl.Vector3{X: 0, Y: 0, Z: 300}) {
		t.Errorf("Expected a still camera with orbit off, got %v", obj.Transform.Position)
	}

	cam.Orbit = true
	cam.OrbitSpeed = math.Pi / 2
	cam.Update(1)

	// a quarter turn about +Y takes +Z to +X
	got := obj.Transform.Position
	if rl.Vector3Distance(got, rl.Vector3{X: 300, Y: 0, Z: 0}) > 1e-2 {
		t.Errorf("Expected camera at (300,0,0), got %v", got)
	}
	if d := rl.Vector3Length(got); math.Abs(float64(d)-300) > 1e-2 {
		t.Errorf("Expected orbit to keep distance 300, got %v", d)
	}
}
