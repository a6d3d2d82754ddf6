package world

import (
	"log"

	"tiltbox/internal/assets"
	"tiltbox/internal/engine"
	"tiltbox/internal/physics"
)

// NodeFactory builds the scene node for a loaded ball model.
type NodeFactory func(assets.ModelFile) *engine.GameObject

// Bridge copies physics poses onto scene nodes once per frame. It only reads the bodies.
//
// Every scene node tagged BallTag mirrors the ball: the fallback sphere from the start and the
// detailed node once the model handle resolves. The detailed node is never removed after that; if the load fails
// the fallback stays the only ball.
type Bridge struct {
	Scene *engine.Scene

	ball          *physics.Body
	enclosure     *physics.Body
	enclosureNode *engine.GameObject

	model      *assets.Handle[assets.ModelFile]
	newNode    NodeFactory
	detailed   *engine.GameObject
	failLogged bool

	// DetailedLoaded fires once, on the Sync that adds the detailed node.
	DetailedLoaded engine.EventWithArg[*engine.GameObject]
}

// NewBridge mirrors ball onto the ball nodes of scene and enclosure onto enclosureNode. model
// may be nil when no detailed model is configured. newNode must tag its node with BallTag.
func NewBridge(scene *engine.Scene, ball, enclosure *physics.Body, enclosureNode *engine.GameObject,
	model *assets.Handle[assets.ModelFile], newNode NodeFactory) *Bridge {
	return &Bridge{
		Scene:         scene,
		ball:          ball,
		enclosure:     enclosure,
		enclosureNode: enclosureNode,
		model:         model,
		newNode:       newNode,
	}
}

// Sync picks up a finished model load, then copies the ball pose into every ball node and
// the enclosure orientation into the enclosure node.
func (b *Bridge) Sync() {
	b.pollModel()

	pos := toVector3(b.ball.Position)
	rot := toQuaternion(b.ball.Orientation)
	for _, node := range b.BallNodes() {
		node.SetPose(pos, rot)
	}

	if b.enclosureNode != nil {
		b.enclosureNode.SetPose(toVector3(b.enclosure.Position), toQuaternion(b.enclosure.Orientation))
	}
}

func (b *Bridge) pollModel() {
	if b.model == nil || b.detailed != nil || b.failLogged {
		return
	}

	file, state, err := b.model.Poll()
	switch state {
	case assets.Resolved:
		node := b.newNode(file)
		b.detailed = node
		b.Scene.AddGameObject(node)
		log.Printf("Assets: ball model ready (%s, %d bytes)", file.Path, file.Size)
		b.DetailedLoaded.Invoke(node)
	case assets.Failed:
		b.failLogged = true
		log.Printf("Assets: ball model unavailable, keeping the fallback sphere: %v", err)
	}
}

// Detailed returns the detailed ball node, or nil while it is not loaded.
func (b *Bridge) Detailed() *engine.GameObject {
	return b.detailed
}

// BallNodes returns every node mirroring the ball, fallback first.
func (b *Bridge) BallNodes() []*engine.GameObject {
	return b.Scene.FindByTag(BallTag)
}
