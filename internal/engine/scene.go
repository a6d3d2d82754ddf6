package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	started     bool
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
	}
}

// AddGameObject adds g to the scene. Objects added after Start are started right away.
func (s *Scene) AddGameObject(g *GameObject) {
	s.GameObjects = append(s.GameObjects, g)
	if s.started {
		g.Start()
	}
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// FindByTag returns every object carrying tag, in the order they were added.
func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
	s.started = true
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}

// Draw draws every active root object and its children, parents first.
func (s *Scene) Draw() {
	for _, g := range s.GameObjects {
		if g.Parent == nil {
			drawTree(g)
		}
	}
}

func drawTree(g *GameObject) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		if d, ok := c.(Drawable); ok {
			d.Draw()
		}
	}
	for _, child := range g.Children {
		drawTree(child)
	}
}

// Unload releases GPU resources held by components.
func (s *Scene) Unload() {
	var walk func(g *GameObject)
	walk = func(g *GameObject) {
		for _, c := range g.components {
			if u, ok := c.(Unloader); ok {
				u.Unload()
			}
		}
		for _, child := range g.Children {
			walk(child)
		}
	}
	for _, g := range s.GameObjects {
		if g.Parent == nil {
			walk(g)
		}
	}
}
