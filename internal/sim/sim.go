package sim

import (
	"fmt"
	"log"

	"tiltbox/internal/arena"
	"tiltbox/internal/config"
	"tiltbox/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
)

// Simulation wires the ball, the enclosure and the physics world from one config.
type Simulation struct {
	Config    config.Config
	World     *physics.World
	Enclosure *arena.Enclosure
	Ball      *physics.Body

	bounces int
}

// New validates cfg and builds the world: gravity along -Z, the enclosure as the only
// static body, and the ball resting above the floor.
func New(cfg config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new simulation: %w", err)
	}

	world := physics.NewWorld(mgl64.Vec3{0, 0, -cfg.GravityMagnitude()}, cfg.FixedTimeStep)
	world.MaxSubSteps = cfg.MaxSubSteps

	groundMat := physics.NewMaterial("ground")
	ballMat := physics.NewMaterial("ball")
	world.AddContactMaterial(physics.NewContactMaterial(groundMat, ballMat, cfg.Restitution, cfg.Friction))

	enclosure := arena.New(arena.GeometryFor(cfg), groundMat)
	world.AddBody(enclosure.Body())

	ball := physics.NewBody("ball", cfg.BallMass, &physics.Sphere{Radius: cfg.BallRadius}, ballMat)
	world.AddBody(ball)

	s := &Simulation{
		Config:    cfg,
		World:     world,
		Enclosure: enclosure,
		Ball:      ball,
	}
	s.ResetBall()

	world.OnContact(func(ev physics.ContactEvent) {
		if ev.Began && ev.Body == ball {
			s.bounces++
		}
	})

	geom := enclosure.Geometry
	log.Printf("Sim: enclosure %.0fx%.0fx%.0f, ball r=%.1f, gravity %.1f, restitution %.2f",
		geom.Width, geom.Height, geom.Depth, cfg.BallRadius, cfg.GravityMagnitude(), cfg.Restitution)
	return s, nil
}

// SpawnPosition is where the ball starts, in the enclosure frame.
func (s *Simulation) SpawnPosition() mgl64.Vec3 {
	return mgl64.Vec3{0, 0, s.Config.BallRadius + s.Config.SpawnOffset}
}

// ResetBall puts the ball back at the spawn point, at rest and unrotated.
func (s *Simulation) ResetBall() {
	s.Ball.SetPosition(s.Enclosure.Body().PointToWorld(s.SpawnPosition()))
	s.Ball.Orientation = mgl64.QuatIdent()
	s.Ball.Velocity = mgl64.Vec3{}
	s.Ball.AngularVelocity = mgl64.Vec3{}
}

// SetOrientation turns the enclosure. It lets a Simulation be the target of an
// orientation filter.
func (s *Simulation) SetOrientation(q mgl64.Quat) {
	s.Enclosure.SetOrientation(q)
}

// Advance runs one nominal physics step.
func (s *Simulation) Advance() {
	s.World.FixedStep()
}

// Contained reports whether the ball is inside the enclosure, allowing tolerance of overlap.
func (s *Simulation) Contained(tolerance float64) bool {
	return s.Enclosure.Contains(s.Ball.Position, s.Config.BallRadius, tolerance)
}

// Bounces counts contacts the ball has started since creation.
func (s *Simulation) Bounces() int {
	return s.bounces
}
