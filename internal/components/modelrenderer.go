package components

import (
	"tiltbox/internal/assets"
	"tiltbox/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModelRenderer draws a model file at its object's world transform. The file is uploaded on
// the first Draw, so the renderer can be created before the window exists.
type ModelRenderer struct {
	engine.BaseComponent
	Path   string
	Model  rl.Model
	Color  rl.Color
	loaded bool
}

func NewModelRendererFromFile(path string, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Path:  path,
		Color: color,
	}
}

func (m *ModelRenderer) Loaded() bool {
	return m.loaded
}

func (m *ModelRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	if !m.loaded {
		m.Model = assets.LoadModel(m.Path)
		m.loaded = true
	}

	m.Model.Transform = g.WorldMatrix()
	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, m.Color)
}

// Unload is a no-op: the asset manager owns file models.
func (m *ModelRenderer) Unload() {}
