package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file, relative to the process working directory.
const ConfigPath = "config/tiltbox.yaml"

// StandardGravity is the reference gravity magnitude the scale factor multiplies.
const StandardGravity = 9.82

// Ceiling margins used by the known tunings. Depth = 2*radius + margin.
const (
	CeilingMargin40  = 40.0
	CeilingMargin70  = 70.0
	CeilingMargin100 = 100.0
)

// Sample throttle intervals used by the known tunings.
const (
	ThrottleFast = 100 * time.Millisecond
	ThrottleSlow = 500 * time.Millisecond
)

// Arena scale as a percentage of the viewport.
const (
	ArenaPercentOriginal = 15.0
	ArenaPercentCompact  = 17.0
)

// Gravity scale bounds relative to StandardGravity.
const (
	MinGravityScale = 10.0
	MaxGravityScale = 30.0
)

// Axis orders accepted by AxisOrder.
const (
	AxisOrderXYZ = "xyz" // beta->X, gamma->Y, alpha->Z
	AxisOrderYXZ = "yxz" // gamma->X, beta->Y, alpha->Z
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds every setup-time constant of the toy. Nothing here changes at runtime.
type Config struct {
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
	ArenaPercent   float64 `yaml:"arena_percent"`

	BallRadius    float64 `yaml:"ball_radius"`
	BallMass      float64 `yaml:"ball_mass"`
	CeilingMargin float64 `yaml:"ceiling_margin"`
	SpawnOffset   float64 `yaml:"spawn_offset"` // gap between ball and floor at start

	GravityScale float64 `yaml:"gravity_scale"`
	Restitution  float64 `yaml:"restitution"`
	Friction     float64 `yaml:"friction"`

	FixedTimeStep float64 `yaml:"fixed_time_step"` // seconds
	MaxSubSteps   int     `yaml:"max_sub_steps"`

	ThrottleInterval time.Duration `yaml:"throttle_interval"`
	AxisOrder        string        `yaml:"axis_order"`

	ListenAddr string  `yaml:"listen_addr"`
	ModelPath  string  `yaml:"model_path"`
	ModelScale float64 `yaml:"model_scale"`
	BallColor  string  `yaml:"ball_color"` // raylib color name for the fallback sphere
	TargetFPS  int     `yaml:"target_fps"`

	CameraOrbit      bool    `yaml:"camera_orbit"`       // swing the camera around the box
	CameraOrbitSpeed float64 `yaml:"camera_orbit_speed"` // radians per second
}

// Default returns the compact tuning: 17% arena of a 1000x1000 viewport, margin 40, 100 ms throttle.
func Default() Config {
	return Config{
		ViewportWidth:    1000,
		ViewportHeight:   1000,
		ArenaPercent:     ArenaPercentCompact,
		BallRadius:       10,
		BallMass:         5,
		CeilingMargin:    CeilingMargin40,
		SpawnOffset:      20,
		GravityScale:     10,
		Restitution:      0.5,
		Friction:         0.3,
		FixedTimeStep:    1.0 / 60.0,
		MaxSubSteps:      10,
		ThrottleInterval: ThrottleFast,
		AxisOrder:        AxisOrderXYZ,
		ListenAddr:       ":8080",
		ModelPath:        "assets/ball.glb",
		ModelScale:       100,
		BallColor:        "Orange",
		TargetFPS:        60,
		CameraOrbitSpeed: 0.3,
	}
}

// Load reads a YAML config from path on top of Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ArenaWidth is the viewport width scaled by ArenaPercent.
func (c Config) ArenaWidth() float64 {
	return c.ViewportWidth / 100 * c.ArenaPercent
}

// ArenaHeight is the viewport height scaled by ArenaPercent.
func (c Config) ArenaHeight() float64 {
	return c.ViewportHeight / 100 * c.ArenaPercent
}

// ArenaDepth is the floor-to-ceiling distance.
func (c Config) ArenaDepth() float64 {
	return 2*c.BallRadius + c.CeilingMargin
}

// GravityMagnitude is StandardGravity times GravityScale.
func (c Config) GravityMagnitude() float64 {
	return StandardGravity * c.GravityScale
}

// Validate checks the geometry leaves room for the ball and the tuning values are in range.
func (c Config) Validate() error {
	if name, v, ok := c.firstNonFinite(); ok {
		return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalid, name, v)
	}

	switch {
	case c.BallRadius <= 0:
		return fmt.Errorf("%w: ball_radius must be positive, got %v", ErrInvalid, c.BallRadius)
	case c.BallMass <= 0:
		return fmt.Errorf("%w: ball_mass must be positive, got %v", ErrInvalid, c.BallMass)
	case c.ArenaPercent <= 0:
		return fmt.Errorf("%w: arena_percent must be positive, got %v", ErrInvalid, c.ArenaPercent)
	case c.ArenaWidth() < 2*c.BallRadius || c.ArenaHeight() < 2*c.BallRadius:
		return fmt.Errorf("%w: arena %vx%v cannot hold a ball of radius %v", ErrInvalid, c.ArenaWidth(), c.ArenaHeight(), c.BallRadius)
	case c.CeilingMargin < 0:
		return fmt.Errorf("%w: ceiling_margin must not be negative, got %v", ErrInvalid, c.CeilingMargin)
	case c.SpawnOffset < 0 || 2*c.BallRadius+c.SpawnOffset > c.ArenaDepth():
		return fmt.Errorf("%w: spawn_offset %v puts the ball outside depth %v", ErrInvalid, c.SpawnOffset, c.ArenaDepth())
	case c.GravityScale < MinGravityScale || c.GravityScale > MaxGravityScale:
		return fmt.Errorf("%w: gravity_scale must be within [%v, %v], got %v", ErrInvalid, MinGravityScale, MaxGravityScale, c.GravityScale)
	case c.Restitution < 0 || c.Restitution > 1:
		return fmt.Errorf("%w: restitution must be within [0, 1], got %v", ErrInvalid, c.Restitution)
	case c.Friction < 0:
		return fmt.Errorf("%w: friction must not be negative, got %v", ErrInvalid, c.Friction)
	case c.FixedTimeStep <= 0:
		return fmt.Errorf("%w: fixed_time_step must be positive, got %v", ErrInvalid, c.FixedTimeStep)
	case c.MaxSubSteps < 1:
		return fmt.Errorf("%w: max_sub_steps must be at least 1, got %d", ErrInvalid, c.MaxSubSteps)
	case c.ThrottleInterval < 0:
		return fmt.Errorf("%w: throttle_interval must not be negative, got %v", ErrInvalid, c.ThrottleInterval)
	case c.AxisOrder != AxisOrderXYZ && c.AxisOrder != AxisOrderYXZ:
		return fmt.Errorf("%w: axis_order must be %q or %q, got %q", ErrInvalid, AxisOrderXYZ, AxisOrderYXZ, c.AxisOrder)
	}
	return nil
}

func (c Config) firstNonFinite() (string, float64, bool) {
	fields := []struct {
		name  string
		value float64
	}{
		{"viewport_width", c.ViewportWidth},
		{"viewport_height", c.ViewportHeight},
		{"arena_percent", c.ArenaPercent},
		{"ball_radius", c.BallRadius},
		{"ball_mass", c.BallMass},
		{"ceiling_margin", c.CeilingMargin},
		{"spawn_offset", c.SpawnOffset},
		{"gravity_scale", c.GravityScale},
		{"restitution", c.Restitution},
		{"friction", c.Friction},
		{"fixed_time_step", c.FixedTimeStep},
		{"model_scale", c.ModelScale},
		{"camera_orbit_speed", c.CameraOrbitSpeed},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return f.name, f.value, true
		}
	}
	return "", 0, false
}
