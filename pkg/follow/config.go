package follow

import (
	"time"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/distance"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/motion"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/tracking"
)

// Config holds follow task parameters plus the configs of the stages the
// task constructs itself.
type Config struct {
	FrameWidth  int
	FrameHeight int

	// MaxCaptureErrors is the number of consecutive capture failures
	// tolerated before the task gives up. One good frame resets the count.
	MaxCaptureErrors int

	// CommandPoll bounds how long the loop waits for an external command
	// between frames. Keeps the loop paced without busy-spinning.
	CommandPoll time.Duration

	// CommandBuffer sizes the command channel shared with voice, web, and
	// keyboard producers. Producers drop on overflow.
	CommandBuffer int

	Tracking tracking.Config
	Distance distance.Config
	Motion   motion.Config
}

// DefaultConfig returns settings for a 640x480 camera feed.
func DefaultConfig() Config {
	return Config{
		FrameWidth:       640,
		FrameHeight:      480,
		MaxCaptureErrors: 10,
		CommandPoll:      10 * time.Millisecond,
		CommandBuffer:    8,
		Tracking:         tracking.DefaultConfig(),
		Distance:         distance.DefaultConfig(),
		Motion:           motion.DefaultConfig(),
	}
}
