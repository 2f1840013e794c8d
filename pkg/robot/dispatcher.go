// Package robot dispatches movement commands to the platform. The follow
// loop emits abstract velocity commands; implementations here carry them to
// a transport (HTTP) or just log them when no hardware is attached.
package robot

import (
	"math"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/motion"
)

// Dispatcher accepts movement commands. Dispatch is fire-and-forget from
// the control loop's perspective: errors are logged by the caller, never
// acted on.
type Dispatcher interface {
	Dispatch(cmd motion.Command) error
}

// LogDispatcher logs commands instead of sending them anywhere. Used when
// no robot is attached.
type LogDispatcher struct{}

// Dispatch logs non-trivial commands at debug level, emergencies at warn.
func (LogDispatcher) Dispatch(cmd motion.Command) error {
	if cmd.Priority == motion.PriorityEmergency {
		log.Warn("dispatch: emergency stop")
		return nil
	}
	if math.Abs(cmd.Linear) > 0.01 || math.Abs(cmd.Angular) > 0.01 {
		log.Debug("dispatch", "linear", cmd.Linear, "angular", cmd.Angular)
	}
	return nil
}
