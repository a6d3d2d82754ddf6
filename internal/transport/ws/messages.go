package ws

import "tiltbox/internal/orientation"

// Message types on the /ws socket.
const (
	TypeOrientation       = "orientation"        // phone -> desktop
	TypePermission        = "permission"         // phone -> desktop, reply to a request
	TypeRequestPermission = "request_permission" // desktop -> phone
)

// Message is the single envelope used in both directions. Only the fields for Type are set.
type Message struct {
	Type string `json:"type"`

	// orientation, in degrees; null when the browser does not report the axis
	Alpha *float64 `json:"alpha,omitempty"`
	Beta  *float64 `json:"beta,omitempty"`
	Gamma *float64 `json:"gamma,omitempty"`

	// permission
	State string `json:"state,omitempty"`
}

// Sample returns the orientation fields as a raw sample.
func (m Message) Sample() orientation.RawSample {
	return orientation.RawSample{Alpha: m.Alpha, Beta: m.Beta, Gamma: m.Gamma}
}
