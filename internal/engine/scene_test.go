package engine

import "testing"

type countingComponent struct {
	BaseComponent
	starts  int
	updates int
	elapsed float32
}

func (c *countingComponent) Start() { c.starts++ }

func (c *countingComponent) Update(deltaTime float32) {
	c.updates++
	c.elapsed += deltaTime
}

func TestSceneFindByName(t *testing.T) {
	scene := NewScene("Tiltbox")
	box := NewGameObject("Enclosure")
	ball := NewGameObject("BallFallback")
	scene.AddGameObject(box)
	scene.AddGameObject(ball)

	if got := scene.FindByName("BallFallback"); got != ball {
		t.Errorf("Expected ball node, got %v", got)
	}
	if got := scene.FindByName("Missing"); got != nil {
		t.Errorf("Expected nil for a missing name, got %v", got)
	}
}

func TestSceneFindByTagKeepsInsertionOrder(t *testing.T) {
	scene := NewScene("Tiltbox")
	fallback := NewGameObject("BallFallback")
	fallback.Tags = []string{"ball"}
	panel := NewGameObject("floor")
	detailed := NewGameObject("BallModel")
	detailed.Tags = []string{"ball", "model"}

	scene.AddGameObject(fallback)
	scene.AddGameObject(panel)
	scene.AddGameObject(detailed)

	balls := scene.FindByTag("ball")
	if len(balls) != 2 || balls[0] != fallback || balls[1] != detailed {
		t.Errorf("Expected [BallFallback BallModel], got %v", balls)
	}
	if len(scene.FindByTag("wall")) != 0 {
		t.Error("Expected no objects for an unused tag")
	}
}

func TestSceneStartsLateObjects(t *testing.T) {
	scene := NewScene("Tiltbox")
	early := &countingComponent{}
	obj := NewGameObject("Early")
	obj.AddComponent(early)
	scene.AddGameObject(obj)

	if early.starts != 0 {
		t.Errorf("Expected no Start before Scene.Start, got %d", early.starts)
	}
	scene.Start()
	scene.Start()
	if early.starts != 1 {
		t.Errorf("Expected one Start, got %d", early.starts)
	}

	late := &countingComponent{}
	lateObj := NewGameObject("Late")
	lateObj.AddComponent(late)
	scene.AddGameObject(lateObj)
	if late.starts != 1 {
		t.Errorf("Expected an object added after Start to be started, got %d", late.starts)
	}
}

func TestSceneUpdateSkipsInactive(t *testing.T) {
	scene := NewScene("Tiltbox")
	active := &countingComponent{}
	inactive := &countingComponent{}

	a := NewGameObject("Active")
	a.AddComponent(active)
	b := NewGameObject("Inactive")
	b.AddComponent(inactive)
	b.Active = false
	scene.AddGameObject(a)
	scene.AddGameObject(b)

	scene.Update(0.5)
	scene.Update(0.25)

	if active.updates != 2 || active.elapsed != 0.75 {
		t.Errorf("Expected 2 updates over 0.75s, got %d over %v", active.updates, active.elapsed)
	}
	if inactive.updates != 0 {
		t.Errorf("Expected inactive object not updated, got %d", inactive.updates)
	}
}

type countingDrawable struct {
	BaseComponent
	draws   int
	unloads int
}

func (c *countingDrawable) Draw()   { c.draws++ }
func (c *countingDrawable) Unload() { c.unloads++ }

func TestSceneDrawVisitsTreeOnce(t *testing.T) {
	scene := NewScene("Test")
	parent := NewGameObject("Box")
	child := NewGameObject("Wall")
	hidden := NewGameObject("Hidden")

	parentDraw := &countingDrawable{}
	childDraw := &countingDrawable{}
	hiddenDraw := &countingDrawable{}
	parent.AddComponent(parentDraw)
	child.AddComponent(childDraw)
	hidden.AddComponent(hiddenDraw)
	hidden.Active = false

	parent.AddChild(child)
	scene.AddGameObject(parent)
	scene.AddGameObject(child)
	scene.AddGameObject(hidden)

	scene.Draw()

	if parentDraw.draws != 1 {
		t.Errorf("Expected parent drawn once, got %d", parentDraw.draws)
	}
	if childDraw.draws != 1 {
		t.Errorf("Expected child drawn once, got %d", childDraw.draws)
	}
	if hiddenDraw.draws != 0 {
		t.Errorf("Expected inactive object not drawn, got %d", hiddenDraw.draws)
	}

	scene.Unload()
	if parentDraw.unloads != 1 || childDraw.unloads != 1 || hiddenDraw.unloads != 1 {
		t.Errorf("Expected every component unloaded once, got %d %d %d",
			parentDraw.unloads, childDraw.unloads, hiddenDraw.unloads)
	}
}
