package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"tiltbox/internal/config"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BallRadius = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}

	// a NaN tuning value would turn the ball position into NaN on the first step
	cfg = config.Default()
	cfg.Restitution = math.NaN()
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for NaN restitution, got %v", err)
	}
}

func TestBallSpawn(t *testing.T) {
	s, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := mgl64.Vec3{0, 0, 30}
	if s.Ball.Position != want {
		t.Errorf("Expected spawn at %v, got %v", want, s.Ball.Position)
	}
	if s.Ball.Velocity != (mgl64.Vec3{}) {
		t.Errorf("Expected zero velocity, got %v", s.Ball.Velocity)
	}
	if s.Ball.Orientation != mgl64.QuatIdent() {
		t.Errorf("Expected identity orientation, got %v", s.Ball.Orientation)
	}
	if s.Ball.IsStatic() {
		t.Error("Expected ball to be dynamic")
	}
	if !s.Contained(0) {
		t.Error("Expected spawn point to be inside the enclosure")
	}
}

func TestGravityScale(t *testing.T) {
	cfg := config.Default()
	cfg.GravityScale = 20
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	want := -config.StandardGravity * 20
	if math.Abs(s.World.Gravity.Z()-want) > 1e-9 {
		t.Errorf("Expected gravity z = %v, got %v", want, s.World.Gravity.Z())
	}
}

func TestContainmentStaticEnclosure(t *testing.T) {
	for _, margin := range []float64{config.CeilingMargin40, config.CeilingMargin70, config.CeilingMargin100} {
		cfg := config.Default()
		cfg.CeilingMargin = margin
		cfg.Restitution = 0.9
		s, err := New(cfg)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		for step := range 5000 {
			s.Advance()
			if !s.Contained(1e-6) {
				t.Fatalf("margin %v: ball escaped at step %d: %v", margin, step, s.Ball.Position)
			}
		}

		// settled on the floor
		if math.Abs(s.Ball.Position.Z()-cfg.BallRadius) > 0.1 {
			t.Errorf("margin %v: expected ball to settle at z = %v, got %v", margin, cfg.BallRadius, s.Ball.Position.Z())
		}
	}
}

func TestContainmentUnderTilt(t *testing.T) {
	s, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	rng := rand.New(rand.NewSource(42))

	for step := range 6000 {
		if step%6 == 0 {
			s.SetOrientation(mgl64.AnglesToQuat(
				mgl64.DegToRad(rng.Float64()*180-90),
				mgl64.DegToRad(rng.Float64()*180-90),
				mgl64.DegToRad(rng.Float64()*360),
				mgl64.XYZ,
			))
		}
		s.Advance()
		if !s.Contained(1e-6) {
			t.Fatalf("Ball escaped at step %d: %v", step, s.Ball.Position)
		}
	}
	if s.Bounces() == 0 {
		t.Error("Expected the ball to hit the walls")
	}
}

func TestTiltRollsBall(t *testing.T) {
	s, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for range 120 {
		s.Advance()
	}

	// turning about +Y lowers the +X side of the floor
	s.SetOrientation(mgl64.QuatRotate(mgl64.DegToRad(20), mgl64.Vec3{0, 1, 0}))
	for range 120 {
		s.Advance()
	}

	local := s.Enclosure.ToLocal(s.Ball.Position)
	if local.X() < 10 {
		t.Errorf("Expected ball to roll toward the low wall, local x = %v", local.X())
	}
}

func TestResetBall(t *testing.T) {
	s, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for range 60 {
		s.Advance()
	}
	s.ResetBall()
	if s.Ball.Position != s.SpawnPosition() {
		t.Errorf("Expected ball at %v, got %v", s.SpawnPosition(), s.Ball.Position)
	}
	if s.Ball.Speed() != 0 {
		t.Errorf("Expected ball at rest, got speed %v", s.Ball.Speed())
	}
}
