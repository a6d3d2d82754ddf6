package components

import (
	"tiltbox/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
)

// MeshRenderer draws a generated primitive at its object's world transform, so it turns with
// the object. The mesh is generated on the first Draw.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType  MeshType
	Color     rl.Color
	Size      rl.Vector3 // cube extents; X is the radius for a sphere
	Wireframe bool

	model  rl.Model
	loaded bool
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

func (m *MeshRenderer) load() {
	var mesh rl.Mesh
	switch m.MeshType {
	case MeshSphere:
		mesh = rl.GenMeshSphere(m.Size.X, 16, 16)
	default:
		mesh = rl.GenMeshCube(m.Size.X, m.Size.Y, m.Size.Z)
	}
	m.model = rl.LoadModelFromMesh(mesh)
	m.loaded = true
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}
	if !m.loaded {
		m.load()
	}

	m.model.Transform = g.WorldMatrix()
	if m.Wireframe {
		rl.DrawModelWires(m.model, rl.Vector3Zero(), 1.0, m.Color)
		return
	}
	rl.DrawModel(m.model, rl.Vector3Zero(), 1.0, m.Color)
}

func (m *MeshRenderer) Unload() {
	if m.loaded {
		rl.UnloadModel(m.model)
		m.loaded = false
	}
}
