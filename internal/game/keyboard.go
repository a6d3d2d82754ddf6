package game

import (
	"math"

	"tiltbox/internal/orientation"
)

// Keyboard tilt limits and speed, in degrees.
const (
	KeyboardMaxTilt   = 45.0
	KeyboardTiltSpeed = 60.0 // per second
)

// TiltKeys is the keyboard state read once per frame.
type TiltKeys struct {
	Up, Down, Left, Right bool
	SpinLeft, SpinRight   bool
	Level                 bool // snap back to flat
}

// KeyboardTilt turns held keys into orientation samples, for desktops without a phone.
// Arrow keys tilt (beta, gamma); Q and E turn the heading (alpha).
type KeyboardTilt struct {
	Beta, Gamma, Alpha float64 // degrees
}

// Step moves the tilt by dt seconds of key input and returns it as a sample. The second
// result is false when nothing changed, so idle frames do not feed the filter.
func (k *KeyboardTilt) Step(dt float64, keys TiltKeys) (orientation.RawSample, bool) {
	before := *k
	delta := KeyboardTiltSpeed * dt

	if keys.Level {
		k.Beta, k.Gamma, k.Alpha = 0, 0, 0
	}
	if keys.Up {
		k.Beta -= delta
	}
	if keys.Down {
		k.Beta += delta
	}
	if keys.Left {
		k.Gamma -= delta
	}
	if keys.Right {
		k.Gamma += delta
	}
	if keys.SpinLeft {
		k.Alpha += delta
	}
	if keys.SpinRight {
		k.Alpha -= delta
	}

	k.Beta = clamp(k.Beta, -KeyboardMaxTilt, KeyboardMaxTilt)
	k.Gamma = clamp(k.Gamma, -KeyboardMaxTilt, KeyboardMaxTilt)
	k.Alpha = math.Mod(k.Alpha+360, 360)

	if *k == before {
		return orientation.RawSample{}, false
	}
	return orientation.NewRawSample(k.Alpha, k.Beta, k.Gamma), true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
