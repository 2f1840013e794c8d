package distance

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
)

// squareBox builds a side x side box at the origin.
func squareBox(side int) vision.BoundingBox {
	return vision.BoundingBox{X2: side, Y2: side}
}

// addExactPoints records samples generated from distance = k/sqrt(area).
func addExactPoints(e *Estimator, k float64) {
	for _, side := range []int{100, 200, 300} {
		area := float64(side * side)
		e.AddCalibrationPoint(squareBox(side), k/math.Sqrt(area), 640, 480)
	}
}

func TestFit_RecoversSizeConstant(t *testing.T) {
	e := New(DefaultConfig())
	addExactPoints(e, 300.0)

	e.Fit()

	if !e.IsCalibrated() {
		t.Fatal("Expected a successful fit")
	}
	if math.Abs(e.SizeK()-300.0) > 1e-6 {
		t.Errorf("Fitted constant: got %v, want 300.0", e.SizeK())
	}
}

func TestFit_TooFewPoints(t *testing.T) {
	e := New(DefaultConfig())
	e.AddCalibrationPoint(squareBox(100), 2.0, 640, 480)
	e.AddCalibrationPoint(squareBox(200), 1.0, 640, 480)

	e.Fit()

	if e.IsCalibrated() {
		t.Error("Fit with 2 points should be skipped")
	}
	if e.SizeK() != DefaultConfig().SizeConstant {
		t.Errorf("Size constant changed: got %v, want default %v",
			e.SizeK(), DefaultConfig().SizeConstant)
	}
}

func TestFit_IgnoresZeroAreaPoints(t *testing.T) {
	e := New(DefaultConfig())
	addExactPoints(e, 250.0)
	e.AddCalibrationPoint(vision.BoundingBox{}, 1.0, 640, 480)

	e.Fit()

	if !e.IsCalibrated() {
		t.Fatal("Expected a successful fit")
	}
	if math.Abs(e.SizeK()-250.0) > 1e-6 {
		t.Errorf("Fitted constant: got %v, want 250.0", e.SizeK())
	}
}

func TestFit_FlowsIntoPositionEstimates(t *testing.T) {
	e := New(DefaultConfig())
	before := e.PositionBased(centeredBox(100, 200), 640, 480)

	addExactPoints(e, 300.0)
	e.Fit()
	after := e.PositionBased(centeredBox(100, 200), 640, 480)

	// k grew from 200 to 300, so the same box reads 1.5x farther.
	if !floatEquals(after.Meters, before.Meters*1.5) {
		t.Errorf("Calibrated estimate: got %v, want %v", after.Meters, before.Meters*1.5)
	}
}

func TestCalibration_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")

	src := New(DefaultConfig())
	addExactPoints(src, 300.0)
	src.Fit()
	if err := src.SaveCalibration(path); err != nil {
		t.Fatalf("SaveCalibration: %v", err)
	}

	dst := New(DefaultConfig())
	if !dst.LoadCalibration(path) {
		t.Fatal("LoadCalibration should succeed")
	}
	if !dst.IsCalibrated() {
		t.Error("Loaded estimator should be calibrated")
	}
	if math.Abs(dst.SizeK()-src.SizeK()) > 1e-9 {
		t.Errorf("Loaded constant: got %v, want %v", dst.SizeK(), src.SizeK())
	}
	if dst.PointCount() != src.PointCount() {
		t.Errorf("Loaded points: got %d, want %d", dst.PointCount(), src.PointCount())
	}
}

func TestLoadCalibration_MissingFile(t *testing.T) {
	e := New(DefaultConfig())

	if e.LoadCalibration(filepath.Join(t.TempDir(), "nope.json")) {
		t.Error("Missing file should not load")
	}
	if e.IsCalibrated() || e.SizeK() != DefaultConfig().SizeConstant {
		t.Error("Defaults should be kept after failed load")
	}
}

func TestLoadCalibration_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New(DefaultConfig())
	if e.LoadCalibration(path) {
		t.Error("Corrupt file should not load")
	}
	if e.IsCalibrated() {
		t.Error("Defaults should be kept after corrupt load")
	}
}
