// Package distance estimates the range to a detected person from bounding
// box geometry. Two independent heuristics are fused into one
// confidence-weighted estimate each frame.
package distance

import (
	"math"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
)

// Method tags which heuristic produced an estimate.
type Method string

const (
	MethodSize     Method = "size_based"
	MethodPosition Method = "position_based"
	MethodCombined Method = "combined"
)

// Estimate is the result of one distance estimation. Estimates are created
// fresh each frame and never mutated.
type Estimate struct {
	Meters     float64
	Confidence float64 // 0-1
	Method     Method
	BoxArea    int // bounding box area used
	BoxHeight  int // bounding box pixel height used
}

// Sanity bounds for the individual and fused estimates (meters).
const (
	minSizeDistance = 0.2
	maxSizeDistance = 5.0
	minFusedMeters  = 0.2
	maxFusedMeters  = 4.0
)

// Config holds camera and reference geometry for distance estimation.
type Config struct {
	// ReferenceHeightMeters is the assumed real-world height of a person.
	ReferenceHeightMeters float64

	// FocalLengthPx is the pre-calibrated focal length in pixels for the
	// pinhole model (typical webcam at 480p: ~580px).
	FocalLengthPx float64

	// SizeConstant is the default k in distance = k/sqrt(area). Replaced
	// by Fit when enough calibration points have been collected.
	SizeConstant float64
}

// DefaultConfig returns geometry defaults for a typical 640x480 webcam.
func DefaultConfig() Config {
	return Config{
		ReferenceHeightMeters: 1.7,
		FocalLengthPx:         580.0,
		SizeConstant:          200.0,
	}
}

// Estimator fuses size-based and position-based range heuristics.
// It is used only from the control-loop thread and needs no locking.
type Estimator struct {
	config Config

	// sizeK is the active area constant: SizeConstant until a successful
	// calibration fit replaces it.
	sizeK      float64
	calibrated bool
	points     []CalibrationPoint
}

// New creates an estimator with the given geometry.
func New(config Config) *Estimator {
	return &Estimator{
		config: config,
		sizeK:  config.SizeConstant,
	}
}

// SizeBased estimates distance from bounding box height using the pinhole
// relation distance = (reference_height * focal_length) / pixel_height.
// Taller (closer) boxes produce higher confidence. Degenerate geometry
// yields a zero-confidence estimate rather than an error.
func (e *Estimator) SizeBased(box vision.BoundingBox, frameHeight int) Estimate {
	h := box.Height()
	if h <= 0 || frameHeight <= 0 {
		return Estimate{Method: MethodSize}
	}

	d := (e.config.ReferenceHeightMeters * e.config.FocalLengthPx) / float64(h)
	d = clamp(d, minSizeDistance, maxSizeDistance)

	confidence := math.Min(1.0, float64(h)/(float64(frameHeight)*0.5))

	return Estimate{
		Meters:     d,
		Confidence: confidence,
		Method:     MethodSize,
		BoxArea:    box.Area(),
		BoxHeight:  h,
	}
}

// PositionBased estimates distance from the box's offset from frame center:
// people near the edges are assumed farther away. The base distance comes
// from the area relation k/sqrt(area), scaled by a linear edge penalty.
func (e *Estimator) PositionBased(box vision.BoundingBox, frameWidth, frameHeight int) Estimate {
	area := box.Area()
	if area <= 0 || frameWidth <= 0 || frameHeight <= 0 {
		return Estimate{Method: MethodPosition}
	}

	cx, cy := box.Center()
	offsetX := math.Abs(float64(cx-frameWidth/2)) / float64(frameWidth)
	offsetY := math.Abs(float64(cy-frameHeight/2)) / float64(frameHeight)
	offset := math.Hypot(offsetX, offsetY)

	base := e.sizeK / math.Sqrt(float64(area))
	d := base * (1.0 + 0.5*offset)

	confidence := math.Max(0.3, 1.0-offset)

	return Estimate{
		Meters:     d,
		Confidence: confidence,
		Method:     MethodPosition,
		BoxArea:    area,
		BoxHeight:  box.Height(),
	}
}

// Combined fuses both heuristics. When the size-based confidence is high it
// dominates (0.7/0.3); otherwise position-based leads (0.6/0.4). The fused
// distance is clamped to indoor range and the confidence attenuated whenever
// clamping fires, signaling reduced trust.
func (e *Estimator) Combined(box vision.BoundingBox, frameWidth, frameHeight int) Estimate {
	size := e.SizeBased(box, frameHeight)
	position := e.PositionBased(box, frameWidth, frameHeight)

	primary, secondary := size, position
	primaryWeight, secondaryWeight := 0.7, 0.3
	if size.Confidence <= 0.5 {
		primary, secondary = position, size
		primaryWeight, secondaryWeight = 0.6, 0.4
	}

	d := primary.Meters*primaryWeight + secondary.Meters*secondaryWeight
	confidence := primary.Confidence*primaryWeight + secondary.Confidence*secondaryWeight

	switch {
	case d < minFusedMeters:
		d = minFusedMeters
		confidence *= 0.8
	case d > maxFusedMeters:
		d = maxFusedMeters
		confidence *= 0.7
	}

	return Estimate{
		Meters:     d,
		Confidence: confidence,
		Method:     MethodCombined,
		BoxArea:    box.Area(),
		BoxHeight:  box.Height(),
	}
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
