// Package follow orchestrates the per-frame person-following loop: it runs
// detection, identity tracking, distance estimation, and motion control in
// sequence, arbitrates task-state transitions, and ingests asynchronous
// external commands between frames.
package follow

// TaskState is the task-level state machine. Only the orchestrator mutates
// it, in response to commands or distance-category transitions.
type TaskState int

const (
	StateIdle TaskState = iota
	StateFollowing
	StateSearching
	StateStopped
	StateError
)

// String returns the state name.
func (s TaskState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFollowing:
		return "following"
	case StateSearching:
		return "searching"
	case StateStopped:
		return "stopped"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
