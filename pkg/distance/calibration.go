package distance

import (
	"encoding/json"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
)

// minFitPoints is the minimum number of calibration samples for a fit.
const minFitPoints = 3

// CalibrationPoint pairs observed box geometry with an operator-supplied
// ground-truth distance. Points are append-only until a fit is run.
type CalibrationPoint struct {
	BoxArea     int     `json:"bbox_area"`
	BoxHeight   int     `json:"bbox_height"`
	Distance    float64 `json:"actual_distance"`
	FrameWidth  int     `json:"frame_width"`
	FrameHeight int     `json:"frame_height"`
}

// calibrationFile is the on-disk calibration record.
type calibrationFile struct {
	Points          []CalibrationPoint `json:"calibration_data"`
	SizeK           float64            `json:"size_k"`
	Calibrated      bool               `json:"is_calibrated"`
	ReferenceHeight float64            `json:"reference_height_meters"`
}

// AddCalibrationPoint records one labeled sample for later fitting.
func (e *Estimator) AddCalibrationPoint(box vision.BoundingBox, actualMeters float64, frameWidth, frameHeight int) {
	e.points = append(e.points, CalibrationPoint{
		BoxArea:     box.Area(),
		BoxHeight:   box.Height(),
		Distance:    actualMeters,
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
	})
	log.Info("calibration point added",
		"distance_m", actualMeters, "bbox_area", box.Area(), "points", len(e.points))
}

// PointCount returns the number of collected calibration points.
func (e *Estimator) PointCount() int {
	return len(e.points)
}

// IsCalibrated reports whether a fit has replaced the default size constant.
func (e *Estimator) IsCalibrated() bool {
	return e.calibrated
}

// SizeK returns the active area constant.
func (e *Estimator) SizeK() float64 {
	return e.sizeK
}

// Fit runs a least-squares fit of distance = k/sqrt(area) over the collected
// points and replaces the default size constant. With fewer than three
// usable points the fit is skipped: logged, never surfaced to the caller.
func (e *Estimator) Fit() {
	var xs, ds []float64
	for _, p := range e.points {
		if p.BoxArea <= 0 {
			continue
		}
		xs = append(xs, 1.0/math.Sqrt(float64(p.BoxArea)))
		ds = append(ds, p.Distance)
	}

	if len(xs) < minFitPoints {
		log.Warn("calibration skipped: need at least 3 points", "points", len(xs))
		return
	}

	// d_i = k * (1/sqrt(area_i)) is linear in k; solve the overdetermined
	// n x 1 system with QR.
	a := mat.NewDense(len(xs), 1, xs)
	b := mat.NewDense(len(ds), 1, ds)

	var qr mat.QR
	qr.Factorize(a)

	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, b); err != nil {
		log.Error("calibration fit failed", "error", err)
		return
	}

	k := solution.At(0, 0)
	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		log.Error("calibration fit rejected", "k", k)
		return
	}

	e.sizeK = k
	e.calibrated = true
	log.Info("calibration completed", "size_k", k, "points", len(xs))
}

// SaveCalibration writes the calibration record to path.
func (e *Estimator) SaveCalibration(path string) error {
	record := calibrationFile{
		Points:          e.points,
		SizeK:           e.sizeK,
		Calibrated:      e.calibrated,
		ReferenceHeight: e.config.ReferenceHeightMeters,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	log.Info("calibration saved", "path", path, "points", len(e.points))
	return nil
}

// LoadCalibration restores a calibration record from path. A missing or
// corrupt file is non-fatal: defaults are kept and false is returned.
func (e *Estimator) LoadCalibration(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("calibration not loaded, using defaults", "path", path, "error", err)
		return false
	}

	var record calibrationFile
	if err := json.Unmarshal(data, &record); err != nil {
		log.Warn("calibration file corrupt, using defaults", "path", path, "error", err)
		return false
	}

	e.points = record.Points
	if record.Calibrated && record.SizeK > 0 {
		e.sizeK = record.SizeK
		e.calibrated = true
	}

	log.Info("calibration loaded", "path", path,
		"points", len(e.points), "calibrated", e.calibrated)
	return true
}
