package orientation

import (
	"context"
	"errors"
)

// ErrDenied is returned by a Gate when the user refuses sensor access.
var ErrDenied = errors.New("motion access denied")

type Permission int

const (
	PermissionUnknown Permission = iota // not requested yet
	PermissionPending
	PermissionGranted
	PermissionDenied
	PermissionNotRequired // the platform has no consent step
)

func (p Permission) String() string {
	switch p {
	case PermissionUnknown:
		return "unknown"
	case PermissionPending:
		return "pending"
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	case PermissionNotRequired:
		return "not_required"
	}
	return "invalid"
}

// ParsePermission maps the phone's wire value to a Permission.
func ParsePermission(s string) (Permission, bool) {
	switch s {
	case "granted":
		return PermissionGranted, true
	case "denied":
		return PermissionDenied, true
	case "not_required":
		return PermissionNotRequired, true
	}
	return PermissionUnknown, false
}

// Allowed reports whether samples may be applied.
func (p Permission) Allowed() bool {
	return p == PermissionGranted || p == PermissionNotRequired
}

// Gate asks the user for sensor access. RequestPermission blocks until the user decides
// or ctx is done. A denial is reported as ErrDenied.
type Gate interface {
	RequestPermission(ctx context.Context) (Permission, error)
}

// Dispatcher runs fn on the goroutine that owns the filter. The game loop's Post fits.
type Dispatcher func(fn func())
