package game

import (
	"math"
	"testing"
)

func TestKeyboardTiltIdle(t *testing.T) {
	var k KeyboardTilt
	if _, changed := k.Step(1.0/60, TiltKeys{}); changed {
		t.Error("Expected no sample without keys held")
	}
}

func TestKeyboardTiltMoves(t *testing.T) {
	var k KeyboardTilt
	raw, changed := k.Step(0.5, TiltKeys{Down: true, Right: true})
	if !changed {
		t.Fatal("Expected a sample while keys are held")
	}
	if *raw.Beta != 30 || *raw.Gamma != 30 {
		t.Errorf("Expected beta and gamma of 30°, got %v and %v", *raw.Beta, *raw.Gamma)
	}
	if *raw.Alpha != 0 {
		t.Errorf("Expected alpha 0, got %v", *raw.Alpha)
	}
}

func TestKeyboardTiltClamps(t *testing.T) {
	var k KeyboardTilt
	for range 10 {
		k.Step(1, TiltKeys{Up: true, Left: true})
	}
	if k.Beta != -KeyboardMaxTilt || k.Gamma != -KeyboardMaxTilt {
		t.Errorf("Expected tilt clamped to -%v, got %v and %v", KeyboardMaxTilt, k.Beta, k.Gamma)
	}

	// held against the limit nothing changes
	if _, changed := k.Step(1, TiltKeys{Up: true, Left: true}); changed {
		t.Error("Expected no sample when already at the limit")
	}
}

func TestKeyboardTiltHeadingWraps(t *testing.T) {
	var k KeyboardTilt
	k.Step(1, TiltKeys{SpinRight: true})
	if math.Abs(k.Alpha-300) > 1e-9 {
		t.Errorf("Expected heading 300°, got %v", k.Alpha)
	}
}

func TestKeyboardTiltLevel(t *testing.T) {
	k := KeyboardTilt{Beta: 10, Gamma: -20, Alpha: 90}
	raw, changed := k.Step(1.0/60, TiltKeys{Level: true})
	if !changed {
		t.Fatal("Expected a sample when leveling")
	}
	if *raw.Beta != 0 || *raw.Gamma != 0 || *raw.Alpha != 0 {
		t.Errorf("Expected flat sample, got %v %v %v", *raw.Beta, *raw.Gamma, *raw.Alpha)
	}
}
