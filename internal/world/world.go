package world

import (
	"tiltbox/internal/arena"
	"tiltbox/internal/assets"
	"tiltbox/internal/components"
	"tiltbox/internal/config"
	"tiltbox/internal/engine"
	"tiltbox/internal/sim"

	"github.com/go-gl/mathgl/mgl64"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera placement: straight above the box looking down at the floor.
const (
	CameraDistance = 300.0
	CameraFOV      = 30.0
)

// PanelThickness is the visual thickness of each wall. Collision planes have none.
const PanelThickness = 2.0

// Scene node names
const (
	NodeEnclosure = "Enclosure"
	NodeFallback  = "BallFallback"
	NodeDetailed  = "BallModel"
	NodeCamera    = "Camera"
)

// BallTag marks the scene nodes that mirror the ball body.
const BallTag = "ball"

// World is the render side of a Simulation: the scene graph plus the bridge that keeps it
// in step with the bodies.
type World struct {
	Scene  *engine.Scene
	Bridge *Bridge
	Camera *components.Camera

	sim *sim.Simulation
}

// New builds the scene for s. model may be nil to run with the fallback sphere only.
func New(s *sim.Simulation, model *assets.Handle[assets.ModelFile]) *World {
	cfg := s.Config
	w := &World{
		Scene: engine.NewScene("Tiltbox"),
		sim:   s,
	}

	enclosure := w.createEnclosure(s.Enclosure)

	fallback := engine.NewGameObject(NodeFallback)
	fallback.Tags = []string{BallTag}
	fallback.AddComponent(components.NewMeshRenderer(components.MeshSphere, assets.LookupColor(cfg.BallColor), rl.Vector3{X: float32(cfg.BallRadius)}))
	w.Scene.AddGameObject(fallback)

	w.createCamera(cfg)

	w.Bridge = NewBridge(w.Scene, s.Ball, s.Enclosure.Body(), enclosure, model, w.detailedBallFactory(cfg))
	w.Bridge.Sync()
	w.Scene.Start()
	return w
}

// createEnclosure adds the box node with one thin panel per plane. The panels are children,
// so turning the box node turns them all.
func (w *World) createEnclosure(e *arena.Enclosure) *engine.GameObject {
	box := engine.NewGameObject(NodeEnclosure)
	w.Scene.AddGameObject(box)

	g := e.Geometry
	for _, part := range e.Parts() {
		panel := engine.NewGameObject(part.Name)
		size, lift := panelExtent(part.Name, g)

		// push the slab behind the plane so its inner face is the collision surface
		back := part.Orientation.Rotate(mgl64.Vec3{0, 0, -PanelThickness / 2})
		panel.Transform.Position = toVector3(part.Offset.Add(back).Add(lift))
		panel.Transform.Rotation = toQuaternion(part.Orientation)

		color := rl.NewColor(200, 200, 210, 255)
		wireframe := false
		if part.Name == arena.Ceiling {
			// the camera looks through the ceiling
			color = rl.DarkGray
			wireframe = true
		}
		renderer := components.NewMeshRenderer(components.MeshCube, color, rl.Vector3{X: size[0], Y: size[1], Z: PanelThickness})
		renderer.Wireframe = wireframe
		panel.AddComponent(renderer)

		box.AddChild(panel)
		w.Scene.AddGameObject(panel)
	}
	return box
}

// panelExtent returns the panel size in its local XY plane and how far it must be lifted to
// span the box height. Wall planes sit at z=0 in the enclosure frame.
func panelExtent(name string, g arena.Geometry) ([2]float32, mgl64.Vec3) {
	width, height, depth := float32(g.Width), float32(g.Height), float32(g.Depth)
	lift := mgl64.Vec3{0, 0, g.Depth / 2}
	switch name {
	case arena.Left, arena.Right:
		return [2]float32{depth, height}, lift
	case arena.Top, arena.Bottom:
		return [2]float32{width, depth}, lift
	}
	return [2]float32{width, height}, mgl64.Vec3{}
}

func (w *World) createCamera(cfg config.Config) {
	cam := engine.NewGameObject(NodeCamera)
	cam.Transform.Position = rl.Vector3{X: 0, Y: 0, Z: CameraDistance}
	w.Camera = components.NewCamera(rl.Vector3{}, CameraFOV)
	w.Camera.Orbit = cfg.CameraOrbit
	w.Camera.OrbitSpeed = float32(cfg.CameraOrbitSpeed)
	cam.AddComponent(w.Camera)
	w.Scene.AddGameObject(cam)
}

func (w *World) detailedBallFactory(cfg config.Config) NodeFactory {
	return func(file assets.ModelFile) *engine.GameObject {
		node := engine.NewGameObject(NodeDetailed)
		node.Tags = []string{BallTag}
		scale := float32(cfg.ModelScale)
		node.Transform.Scale = rl.Vector3{X: scale, Y: scale, Z: scale}
		node.AddComponent(components.NewModelRendererFromFile(file.Path, rl.White))
		return node
	}
}

// Sync mirrors the simulation into the scene, then lets components advance by one
// physics step of time.
func (w *World) Sync() {
	w.Bridge.Sync()
	w.Scene.Update(float32(w.sim.Config.FixedTimeStep))
}

func (w *World) Unload() {
	w.Scene.Unload()
	assets.Unload()
}
