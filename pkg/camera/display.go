package camera

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/distance"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
)

// Overlay carries everything the display draws on top of a frame.
type Overlay struct {
	People    []vision.BoundingBox
	Distances []distance.Estimate // parallel to People; may be shorter

	// Target info panel; TargetID 0 means no target.
	TargetID       int
	TargetEstimate distance.Estimate

	TaskState string
}

var (
	colorClose  = color.RGBA{255, 0, 0, 0}   // red
	colorMedium = color.RGBA{0, 255, 255, 0} // yellow
	colorFar    = color.RGBA{0, 255, 0, 0}   // green
	colorWhite  = color.RGBA{255, 255, 255, 0}
	colorBlack  = color.RGBA{0, 0, 0, 0}
	colorCyan   = color.RGBA{0, 255, 255, 0}
	colorMark   = color.RGBA{0, 0, 255, 0} // blue center marker
)

// Display shows annotated frames in a window and reports keypresses.
type Display struct {
	window *gocv.Window
}

// NewDisplay opens the display window.
func NewDisplay(title string) *Display {
	return &Display{window: gocv.NewWindow(title)}
}

// Show decodes the frame, draws the overlay, and displays it.
// It returns the pressed key, or -1 if none.
func (d *Display) Show(jpeg []byte, overlay Overlay) (int, error) {
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return -1, fmt.Errorf("decode frame: %w", err)
	}
	defer img.Close()

	drawPeople(&img, overlay)
	if overlay.TargetID != 0 {
		drawTargetPanel(&img, overlay)
	}
	drawBanner(&img, overlay.TaskState)
	drawHelp(&img)

	d.window.IMShow(img)
	return d.window.WaitKey(1), nil
}

// Close destroys the window.
func (d *Display) Close() error {
	return d.window.Close()
}

// drawPeople draws each person's box, label, and center marker, colored by
// distance band.
func drawPeople(img *gocv.Mat, overlay Overlay) {
	for i, p := range overlay.People {
		boxColor := colorFar
		label := fmt.Sprintf("Person %d: %.2f", p.ID, p.Confidence)

		if i < len(overlay.Distances) {
			est := overlay.Distances[i]
			switch {
			case est.Meters < 1.0:
				boxColor = colorClose
			case est.Meters < 2.0:
				boxColor = colorMedium
			}
			label = fmt.Sprintf("Person %d: %.1fm (%.2f)", p.ID, est.Meters, p.Confidence)
		}

		rect := image.Rect(p.X1, p.Y1, p.X2, p.Y2)
		gocv.Rectangle(img, rect, boxColor, 3)
		gocv.PutText(img, label, image.Pt(p.X1, p.Y1-10),
			gocv.FontHersheySimplex, 0.6, colorWhite, 2)

		cx, cy := p.Center()
		gocv.Circle(img, image.Pt(cx, cy), 8, colorMark, -1)
		gocv.Circle(img, image.Pt(cx, cy), 12, colorWhite, 2)
	}
}

// drawTargetPanel draws the target distance info box in the top-right corner.
func drawTargetPanel(img *gocv.Mat, overlay Overlay) {
	const panelW, panelH = 300, 120
	x := img.Cols() - panelW - 10
	y := 10

	gocv.Rectangle(img, image.Rect(x, y, x+panelW, y+panelH), colorBlack, -1)
	gocv.Rectangle(img, image.Rect(x, y, x+panelW, y+panelH), colorWhite, 2)

	est := overlay.TargetEstimate
	category := distance.Categorize(est.Meters)

	gocv.PutText(img, fmt.Sprintf("TARGET: person %d", overlay.TargetID),
		image.Pt(x+10, y+25), gocv.FontHersheySimplex, 0.7, colorCyan, 2)
	gocv.PutText(img, fmt.Sprintf("Distance: %.1fm", est.Meters),
		image.Pt(x+10, y+50), gocv.FontHersheySimplex, 0.5, colorWhite, 1)
	gocv.PutText(img, fmt.Sprintf("Confidence: %.2f", est.Confidence),
		image.Pt(x+10, y+70), gocv.FontHersheySimplex, 0.5, colorWhite, 1)
	gocv.PutText(img, fmt.Sprintf("Category: %s", category),
		image.Pt(x+10, y+90), gocv.FontHersheySimplex, 0.5, colorWhite, 1)
}

// drawBanner draws the task state at the top-left.
func drawBanner(img *gocv.Mat, state string) {
	gocv.PutText(img, "State: "+strings.ToUpper(state),
		image.Pt(10, 30), gocv.FontHersheySimplex, 0.8, colorCyan, 2)
}

// drawHelp draws the keyboard controls near the bottom.
func drawHelp(img *gocv.Mat) {
	lines := []string{
		"F - follow  S - stop  Q/ESC - quit",
	}

	y := img.Rows() - 20
	for _, line := range lines {
		gocv.PutText(img, line, image.Pt(10, y),
			gocv.FontHersheySimplex, 0.5, colorWhite, 1)
		y += 20
	}
}
