package motion

import (
	"time"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/distance"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
)

// Controller drives the platform toward its target with separate PID loops
// for range and bearing, plus safety clamps, acceleration smoothing, and a
// back-and-forth search sweep. It is used only from the control-loop thread.
type Controller struct {
	config Config

	distancePID *PID
	bearingPID  *PID

	state     State
	following bool

	// Last emitted velocities, the basis for acceleration limiting.
	linear  float64
	angular float64

	// Search behavior
	searchDirection float64 // +1 clockwise, -1 counterclockwise
	searchStart     time.Time

	now func() time.Time
}

// NewController creates a motion controller.
func NewController(config Config) *Controller {
	return &Controller{
		config:          config,
		distancePID:     NewPID(config.DistanceGains, config.IntegralLimit),
		bearingPID:      NewPID(config.BearingGains, config.IntegralLimit),
		state:           StateStopped,
		searchDirection: 1,
		now:             time.Now,
	}
}

// StartFollowing enables following mode and resets both PID loops.
func (c *Controller) StartFollowing() {
	c.following = true
	c.state = StateFollowing
	c.distancePID.Reset()
	c.bearingPID.Reset()
	log.Info("following started")
}

// StopFollowing disables following mode and zeroes the velocity state so
// the next start accelerates from rest.
func (c *Controller) StopFollowing() {
	c.following = false
	c.state = StateStopped
	c.linear = 0
	c.angular = 0
	log.Info("following stopped")
}

// IsFollowing reports whether following mode is active.
func (c *Controller) IsFollowing() bool {
	return c.following
}

// CurrentState returns the observational movement state.
func (c *Controller) CurrentState() State {
	return c.state
}

// UpdateTarget computes the next velocity command for the target person.
// Any internal failure degrades to a zero command; UpdateTarget never
// panics out to the caller.
func (c *Controller) UpdateTarget(target vision.BoundingBox, est distance.Estimate, frameWidth, frameHeight int) (cmd Command) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("target update failed, stopping", "panic", r)
			cmd = Command{Priority: PriorityNormal}
		}
	}()

	if !c.following {
		return Command{Priority: PriorityNormal}
	}

	// Bearing error: horizontal offset of the target center from frame
	// center, normalized by frame width.
	cx, _ := target.Center()
	bearingErr := float64(cx-frameWidth/2) / float64(frameWidth)

	distanceErr := est.Meters - c.config.SafeDistance

	// The state is observational only; recompute it before the safety
	// check so an emergency tick still reports BackingUp.
	c.state = c.observeState(est.Meters)

	// Safety override: hard stop wins over everything and is a one-step
	// decision, never smoothed.
	if est.Meters <= c.config.EmergencyStopDistance {
		log.Warn("emergency stop: target too close", "distance_m", est.Meters)
		c.linear = 0
		c.angular = 0
		return Command{Priority: PriorityEmergency}
	}

	linear := c.distancePID.Compute(distanceErr)

	// Positive angular is counterclockwise; a target right of center
	// (positive bearing error) steers clockwise.
	angular := c.bearingPID.Compute(-bearingErr)

	linear = clamp(linear, -c.config.MaxLinearVelocity, c.config.MaxLinearVelocity)
	angular = clamp(angular, -c.config.MaxAngularVelocity, c.config.MaxAngularVelocity)

	linear = c.linear + clampStep(linear-c.linear, c.config.MaxLinearAccel)
	angular = c.angular + clampStep(angular-c.angular, c.config.MaxAngularAccel)

	c.linear = linear
	c.angular = angular

	return Command{
		Linear:   linear,
		Angular:  angular,
		Duration: c.config.CommandDuration,
		Priority: PriorityNormal,
	}
}

// StartSearch begins the sweep behavior: clockwise first, flipping
// direction every SearchFlipInterval.
func (c *Controller) StartSearch() {
	c.state = StateSearching
	c.searchStart = c.now()
	c.searchDirection = 1
	log.Info("search started")
}

// UpdateSearch returns the current sweep command: pure rotation, no linear
// motion. Outside of search mode it returns the zero command.
func (c *Controller) UpdateSearch() Command {
	if c.state != StateSearching {
		return Command{Priority: PriorityNormal}
	}

	if c.now().Sub(c.searchStart) >= c.config.SearchFlipInterval {
		c.searchDirection *= -1
		c.searchStart = c.now()
		log.Debug("search direction flipped", "direction", c.searchDirection)
	}

	return Command{
		Angular:  c.config.SearchAngularVelocity * c.searchDirection,
		Duration: c.config.CommandDuration,
		Priority: PriorityNormal,
	}
}

// observeState buckets the current distance against the configured
// thresholds.
func (c *Controller) observeState(meters float64) State {
	switch {
	case meters < c.config.MinDistance:
		return StateBackingUp
	case meters < c.config.SafeDistance:
		return StateApproaching
	case meters > c.config.MaxDistance:
		return StateSearching
	default:
		return StateFollowing
	}
}

// clampStep limits a velocity change to the per-tick acceleration budget.
func clampStep(delta, maxStep float64) float64 {
	if delta > maxStep {
		return maxStep
	}
	if delta < -maxStep {
		return -maxStep
	}
	return delta
}
