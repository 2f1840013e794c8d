package distance

import (
	"math"
	"testing"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
)

const floatTolerance = 1e-6

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// centeredBox builds a w x h box centered in a 640x480 frame.
func centeredBox(w, h int) vision.BoundingBox {
	return vision.BoundingBox{
		X1: 320 - w/2, Y1: 240 - h/2,
		X2: 320 + w/2, Y2: 240 + h/2,
	}
}

func TestSizeBased_PinholeRelation(t *testing.T) {
	e := New(DefaultConfig())

	// 290px tall person: (1.7 * 580) / 290 = 3.4m.
	got := e.SizeBased(centeredBox(100, 290), 480)
	if !floatEquals(got.Meters, 3.4) {
		t.Errorf("Distance: got %v, want 3.4", got.Meters)
	}
	// 290px fills more than half the frame height, full confidence.
	if !floatEquals(got.Confidence, 1.0) {
		t.Errorf("Confidence: got %v, want 1.0", got.Confidence)
	}
	if got.Method != MethodSize {
		t.Errorf("Method: got %q, want %q", got.Method, MethodSize)
	}
}

func TestSizeBased_TallerMeansCloser(t *testing.T) {
	e := New(DefaultConfig())

	near := e.SizeBased(centeredBox(100, 400), 480)
	far := e.SizeBased(centeredBox(100, 200), 480)

	if near.Meters >= far.Meters {
		t.Errorf("Taller box should be closer: near %v, far %v", near.Meters, far.Meters)
	}
}

func TestSizeBased_DegenerateBox(t *testing.T) {
	e := New(DefaultConfig())

	got := e.SizeBased(vision.BoundingBox{X1: 0, Y1: 100, X2: 50, Y2: 100}, 480)
	if got.Confidence != 0 {
		t.Errorf("Zero-height box confidence: got %v, want 0", got.Confidence)
	}
}

func TestPositionBased_EdgePenalty(t *testing.T) {
	e := New(DefaultConfig())

	center := e.PositionBased(centeredBox(100, 200), 640, 480)
	corner := e.PositionBased(vision.BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 200}, 640, 480)

	if corner.Meters <= center.Meters {
		t.Errorf("Edge box should estimate farther: corner %v, center %v",
			corner.Meters, center.Meters)
	}
	if corner.Confidence >= center.Confidence {
		t.Errorf("Edge box should be less confident: corner %v, center %v",
			corner.Confidence, center.Confidence)
	}
}

func TestPositionBased_ConfidenceFloor(t *testing.T) {
	e := New(DefaultConfig())

	// Tiny box in the far corner, offset just past 0.7.
	got := e.PositionBased(vision.BoundingBox{X1: 0, Y1: 0, X2: 2, Y2: 4}, 640, 480)
	if !floatEquals(got.Confidence, 0.3) {
		t.Errorf("Confidence floor: got %v, want 0.3", got.Confidence)
	}
}

func TestCombined_SizePrimaryWhenConfident(t *testing.T) {
	e := New(DefaultConfig())

	// Tall centered box: size confidence 1.0, so 0.7 size / 0.3 position.
	// size = 986/300 = 3.286667, position = 200/sqrt(60000) = 0.816497.
	got := e.Combined(centeredBox(200, 300), 640, 480)

	want := 0.7*(986.0/300.0) + 0.3*(200.0/math.Sqrt(60000.0))
	if !floatEquals(got.Meters, want) {
		t.Errorf("Fused distance: got %v, want %v", got.Meters, want)
	}
	if !floatEquals(got.Confidence, 1.0) {
		t.Errorf("Fused confidence: got %v, want 1.0", got.Confidence)
	}
	if got.Method != MethodCombined {
		t.Errorf("Method: got %q, want %q", got.Method, MethodCombined)
	}
}

func TestCombined_FarClampAttenuatesConfidence(t *testing.T) {
	e := New(DefaultConfig())

	// Tiny centered box. Size: 24.65m clamped to 5.0, confidence 40/240.
	// Position leads (0.6/0.4): 0.6*7.0711 + 0.4*5.0 = 6.24m, clamped to 4.0.
	got := e.Combined(centeredBox(20, 40), 640, 480)

	if !floatEquals(got.Meters, 4.0) {
		t.Errorf("Clamped distance: got %v, want 4.0", got.Meters)
	}
	wantConf := (0.6*1.0 + 0.4*(40.0/240.0)) * 0.7
	if !floatEquals(got.Confidence, wantConf) {
		t.Errorf("Attenuated confidence: got %v, want %v", got.Confidence, wantConf)
	}
}

func TestCombined_DegenerateClampsToMinimum(t *testing.T) {
	e := New(DefaultConfig())

	got := e.Combined(vision.BoundingBox{}, 640, 480)
	if !floatEquals(got.Meters, 0.2) {
		t.Errorf("Degenerate fused distance: got %v, want 0.2", got.Meters)
	}
	if got.Confidence != 0 {
		t.Errorf("Degenerate fused confidence: got %v, want 0", got.Confidence)
	}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		meters float64
		want   Category
	}{
		{0.3, CategoryTooClose},
		{0.5, CategoryClose},
		{0.9, CategoryClose},
		{1.0, CategoryOptimal},
		{1.9, CategoryOptimal},
		{2.5, CategoryFar},
		{3.0, CategoryVeryFar},
		{4.0, CategoryVeryFar},
	}

	for _, tc := range cases {
		if got := Categorize(tc.meters); got != tc.want {
			t.Errorf("Categorize(%v): got %q, want %q", tc.meters, got, tc.want)
		}
	}
}
