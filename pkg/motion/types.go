// Package motion converts target position and range errors into smooth,
// safety-bounded velocity commands using two PID loops.
package motion

import "time"

// Priority ranks movement commands. Emergency commands always win.
type Priority int

const (
	PriorityNormal Priority = iota + 1
	PriorityEmergency
)

// Command is one velocity command for the platform. Commands are produced
// fresh every control tick and consumed immediately by dispatch.
type Command struct {
	Linear   float64 // m/s, forward positive
	Angular  float64 // rad/s, counterclockwise positive
	Duration time.Duration
	Priority Priority
}

// IsZero reports whether the command requests no motion.
func (c Command) IsZero() bool {
	return c.Linear == 0 && c.Angular == 0
}

// State is the observational movement state, derived each tick from the
// current distance relative to the configured thresholds. It never gates
// which commands are computed.
type State int

const (
	StateStopped State = iota
	StateFollowing
	StateSearching
	StateApproaching
	StateBackingUp
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateFollowing:
		return "following"
	case StateSearching:
		return "searching"
	case StateApproaching:
		return "approaching"
	case StateBackingUp:
		return "backing_up"
	default:
		return "unknown"
	}
}
