package orientation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RawSample is one device-orientation event as the browser reports it, in degrees.
// A nil axis was not reported.
type RawSample struct {
	Alpha *float64 `json:"alpha"`
	Beta  *float64 `json:"beta"`
	Gamma *float64 `json:"gamma"`
}

// NewRawSample builds a sample with all three axes present.
func NewRawSample(alpha, beta, gamma float64) RawSample {
	return RawSample{Alpha: &alpha, Beta: &beta, Gamma: &gamma}
}

// Angles is the canonical form of a sample, in radians.
type Angles struct {
	Beta  float64 // front-to-back tilt
	Gamma float64 // left-to-right tilt
	Alpha float64 // compass heading
}

// axis returns the value of a reported axis, or 0 for a missing or non-finite one.
func axis(v *float64) float64 {
	if !valid(v) {
		return 0
	}
	return *v
}

// ToRadians converts a raw sample componentwise. Missing axes contribute zero.
func ToRadians(raw RawSample) Angles {
	return Angles{
		Beta:  mgl64.DegToRad(axis(raw.Beta)),
		Gamma: mgl64.DegToRad(axis(raw.Gamma)),
		Alpha: mgl64.DegToRad(axis(raw.Alpha)),
	}
}

// Update returns a with every reported axis of raw replaced. Missing and non-finite axes
// keep their previous value.
func (a Angles) Update(raw RawSample) Angles {
	if valid(raw.Beta) {
		a.Beta = mgl64.DegToRad(*raw.Beta)
	}
	if valid(raw.Gamma) {
		a.Gamma = mgl64.DegToRad(*raw.Gamma)
	}
	if valid(raw.Alpha) {
		a.Alpha = mgl64.DegToRad(*raw.Alpha)
	}
	return a
}

// Empty reports whether raw carries no usable axis.
func (raw RawSample) Empty() bool {
	return !valid(raw.Alpha) && !valid(raw.Beta) && !valid(raw.Gamma)
}

func valid(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// ToDegrees is the inverse of ToRadians.
func ToDegrees(a Angles) RawSample {
	return NewRawSample(mgl64.RadToDeg(a.Alpha), mgl64.RadToDeg(a.Beta), mgl64.RadToDeg(a.Gamma))
}

// AxisOrder decides which angle turns about which axis.
type AxisOrder string

const (
	// OrderXYZ turns beta about X, gamma about Y, alpha about Z, intrinsic X then Y then Z.
	OrderXYZ AxisOrder = "xyz"
	// OrderYXZ swaps the tilt axes: gamma about X, beta about Y.
	OrderYXZ AxisOrder = "yxz"
)

// Quat builds the unit quaternion for the angles. Unknown orders fall back to OrderXYZ.
func (a Angles) Quat(order AxisOrder) mgl64.Quat {
	x, y := a.Beta, a.Gamma
	if order == OrderYXZ {
		x, y = a.Gamma, a.Beta
	}
	return mgl64.AnglesToQuat(x, y, a.Alpha, mgl64.XYZ).Normalize()
}
