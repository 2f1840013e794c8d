package motion

import "time"

// minDT floors the time delta between Compute calls so a burst of ticks
// cannot blow up the derivative term.
const minDT = 0.01

// PID is a proportional-integral-derivative controller operating directly
// on an error signal. The integral is clamped to ±integralLimit
// (0 disables the clamp).
type PID struct {
	Kp float64
	Ki float64
	Kd float64

	integralLimit float64

	prevError float64
	integral  float64
	lastTime  time.Time

	now func() time.Time
}

// NewPID creates a PID controller from a gain set.
func NewPID(gains Gains, integralLimit float64) *PID {
	p := &PID{
		Kp:            gains.Kp,
		Ki:            gains.Ki,
		Kd:            gains.Kd,
		integralLimit: integralLimit,
		now:           time.Now,
	}
	p.lastTime = p.now()
	return p
}

// Compute returns the correction for the given error. dt is the wall-clock
// delta since the previous call, floored at 10ms.
func (p *PID) Compute(err float64) float64 {
	now := p.now()
	dt := now.Sub(p.lastTime).Seconds()
	if dt < minDT {
		dt = minDT
	}

	p.integral += err * dt
	if p.integralLimit > 0 {
		p.integral = clamp(p.integral, -p.integralLimit, p.integralLimit)
	}

	output := p.Kp*err + p.Ki*p.integral + p.Kd*(err-p.prevError)/dt

	p.prevError = err
	p.lastTime = now

	return output
}

// Reset clears the accumulated integral and error history.
func (p *PID) Reset() {
	p.prevError = 0
	p.integral = 0
	p.lastTime = p.now()
}

// clamp limits a value to a range.
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
