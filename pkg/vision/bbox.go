// Package vision provides person detection primitives for the follow system.
package vision

// BoundingBox is an axis-aligned rectangle locating a detected person,
// in pixel coordinates. Corners satisfy X2 >= X1 and Y2 >= Y1.
type BoundingBox struct {
	X1, Y1     int
	X2, Y2     int
	Confidence float64 // Detection confidence (0-1)
	ID         int     // Stable identity, 0 until assigned by the tracker
}

// Center returns the center point of the bounding box.
func (b BoundingBox) Center() (x, y int) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// Width returns the width of the bounding box.
func (b BoundingBox) Width() int {
	return b.X2 - b.X1
}

// Height returns the height of the bounding box.
func (b BoundingBox) Height() int {
	return b.Y2 - b.Y1
}

// Area returns the area of the bounding box.
func (b BoundingBox) Area() int {
	return b.Width() * b.Height()
}

// Largest returns the box with the biggest area, or false if boxes is empty.
// Ties keep the first box encountered, so target selection is reproducible.
func Largest(boxes []BoundingBox) (BoundingBox, bool) {
	if len(boxes) == 0 {
		return BoundingBox{}, false
	}

	best := boxes[0]
	for _, b := range boxes[1:] {
		if b.Area() > best.Area() {
			best = b
		}
	}
	return best, true
}
