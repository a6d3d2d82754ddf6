package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("Enclosure")

	if obj.Name != "Enclosure" {
		t.Errorf("Expected name 'Enclosure', got '%s'", obj.Name)
	}
	if !obj.Active {
		t.Error("New objects should be active")
	}
	if obj.components == nil {
		t.Error("components slice should be initialized")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"enemy", "ai", "dangerous"}

	if !obj.HasTag("enemy") {
		t.Error("HasTag should return true for existing tag")
	}

	if !obj.HasTag("ai") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("player") {
		t.Error("HasTag should return false for non-existent tag")
	}

	// Test empty tags
	obj2 := NewGameObject("Test2")
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child, got %d", len(parent.Children))
	}

	if parent.Children[0] != child {
		t.Error("Child not added to parent's Children slice")
	}
}

func TestGameObjectAddComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if len(obj.components) != 1 {
		t.Errorf("Expected 1 component, got %d", len(obj.components))
	}

	if comp.gameObject != obj {
		t.Error("Component.gameObject should be set")
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	found := GetComponent[*BaseComponent](obj)
	if found != comp {
		t.Error("GetComponent failed to find component")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")

	// First call should set started = true
	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}

	// Second call should be a no-op (no panic, no re-initialization)
	obj.Start() // Should not panic or cause issues
}

func TestNewGameObjectIdentityTransform(t *testing.T) {
	obj := NewGameObject("Test")

	if obj.Transform.Rotation != rl.QuaternionIdentity() {
		t.Errorf("Expected identity rotation, got %v", obj.Transform.Rotation)
	}
	if obj.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}
}

func TestGameObjectSetPose(t *testing.T) {
	obj := NewGameObject("Ball")
	pos := rl.Vector3{X: 1, Y: 2, Z: 3}
	rot := rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 0, Z: 1}, math.Pi/2)

	obj.SetPose(pos, rot)

	if obj.Transform.Position != pos {
		t.Errorf("Expected position %v, got %v", pos, obj.Transform.Position)
	}
	if obj.Transform.Rotation != rot {
		t.Errorf("Expected rotation %v, got %v", rot, obj.Transform.Rotation)
	}
}

func TestGameObjectWorldTransformFollowsParent(t *testing.T) {
	parent := NewGameObject("Box")
	child := NewGameObject("Wall")
	parent.AddChild(child)

	parent.Transform.Position = rl.Vector3{X: 10, Y: 0, Z: 0}
	parent.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 0, Z: 1}, math.Pi/2)
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	child.Transform.Position = rl.Vector3{X: 1, Y: 0, Z: 0}

	// scaled to (2,0,0), turned to (0,2,0), moved to (10,2,0)
	got := child.WorldPosition()
	want := rl.Vector3{X: 10, Y: 2, Z: 0}
	if rl.Vector3Distance(got, want) > 1e-4 {
		t.Errorf("Expected world position %v, got %v", want, got)
	}

	if s := child.WorldScale(); s != (rl.Vector3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("Expected world scale (2,2,2), got %v", s)
	}

	child.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 0, Z: 1}, math.Pi/2)
	dir := rl.Vector3RotateByQuaternion(rl.Vector3{X: 1, Y: 0, Z: 0}, child.WorldRotation())
	if rl.Vector3Distance(dir, rl.Vector3{X: -1, Y: 0, Z: 0}) > 1e-4 {
		t.Errorf("Expected combined 180° turn to map +X to -X, got %v", dir)
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{
		Position: rl.Vector3{X: 5, Y: 0, Z: 0},
		Rotation: rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 1, Z: 0}, math.Pi/2),
		Scale:    rl.Vector3{X: 3, Y: 3, Z: 3},
	}

	// (0,0,1) scaled to (0,0,3), turned about Y to (3,0,0), moved to (8,0,0)
	got := rl.Vector3Transform(rl.Vector3{X: 0, Y: 0, Z: 1}, tr.Matrix())
	want := rl.Vector3{X: 8, Y: 0, Z: 0}
	if rl.Vector3Distance(got, want) > 1e-4 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
