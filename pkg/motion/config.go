package motion

import "time"

// Gains holds one PID gain set.
type Gains struct {
	Kp float64
	Ki float64
	Kd float64
}

// Config holds all tunable parameters for the motion controller.
type Config struct {
	// Velocity limits
	MaxLinearVelocity  float64 // m/s
	MaxAngularVelocity float64 // rad/s

	// Distance thresholds (meters)
	SafeDistance          float64 // optimal following distance
	MinDistance           float64 // closer than this means backing up
	MaxDistance           float64 // farther than this means searching
	EmergencyStopDistance float64 // hard stop, bypasses PID

	// Acceleration limits (change per control tick)
	MaxLinearAccel  float64 // m/s per tick
	MaxAngularAccel float64 // rad/s per tick

	// PID gain sets
	DistanceGains Gains
	BearingGains  Gains

	// IntegralLimit bounds each PID's accumulated integral (anti-windup).
	IntegralLimit float64

	// Search behavior
	SearchAngularVelocity float64       // rad/s while sweeping
	SearchFlipInterval    time.Duration // direction flip period

	// CommandDuration is the intended lifetime of each emitted command.
	CommandDuration time.Duration
}

// DefaultConfig returns the recommended configuration for indoor following.
func DefaultConfig() Config {
	return Config{
		MaxLinearVelocity:  0.5,
		MaxAngularVelocity: 1.0,

		SafeDistance:          1.0,
		MinDistance:           0.5,
		MaxDistance:           3.0,
		EmergencyStopDistance: 0.3,

		MaxLinearAccel:  0.1,
		MaxAngularAccel: 0.2,

		DistanceGains: Gains{Kp: 0.8, Ki: 0.1, Kd: 0.2},
		BearingGains:  Gains{Kp: 1.2, Ki: 0.0, Kd: 0.3},

		IntegralLimit: 10.0,

		SearchAngularVelocity: 0.3,
		SearchFlipInterval:    2 * time.Second,

		CommandDuration: 100 * time.Millisecond,
	}
}

// GentleConfig returns a configuration for slower, smoother following,
// suitable for crowded spaces.
func GentleConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxLinearVelocity = 0.3
	cfg.MaxLinearAccel = 0.05
	cfg.DistanceGains = Gains{Kp: 0.5, Ki: 0.05, Kd: 0.25} // more dampening
	cfg.SearchAngularVelocity = 0.2
	return cfg
}
