package vision

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
)

// personClassID is the "person" class in the COCO dataset.
const personClassID = 0

// YOLODetector detects people using a YOLOv8 ONNX model.
type YOLODetector struct {
	net       gocv.Net
	config    Config
	mu        sync.Mutex
	inputSize image.Point
}

// NewYOLO creates a new YOLO person detector.
func NewYOLO(cfg Config) (*YOLODetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load YOLO model from %s", cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &YOLODetector{
		net:       net,
		config:    cfg,
		inputSize: image.Pt(cfg.InputWidth, cfg.InputHeight),
	}, nil
}

// Detect finds people in the JPEG image.
func (d *YOLODetector) Detect(jpeg []byte) ([]BoundingBox, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	imgW := float32(img.Cols())
	imgH := float32(img.Rows())

	blob := gocv.BlobFromImage(img, 1.0/255.0, d.inputSize, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	people := d.parseOutput(output, imgW, imgH)
	if len(people) > 0 {
		log.Debug("yolo detections", "count", len(people))
	}

	return people, nil
}

// parseOutput extracts person boxes from the YOLOv8 output tensor.
// Output shape is [1, 84, 8400]: 4 bbox values + 80 class scores per column.
func (d *YOLODetector) parseOutput(output gocv.Mat, imgW, imgH float32) []BoundingBox {
	var boxes []image.Rectangle
	var confidences []float32

	rows := output.Cols() // 8400 candidate detections
	cols := output.Rows() // 84 (4 bbox + 80 classes)

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil
	}

	for i := 0; i < rows; i++ {
		score := data[(4+personClassID)*rows+i]
		if score < d.config.ConfidenceThresh {
			continue
		}

		// Bounding box is center x, center y, width, height in model space
		cx := data[0*rows+i]
		cy := data[1*rows+i]
		w := data[2*rows+i]
		h := data[3*rows+i]

		x1 := int((cx - w/2) * imgW / float32(d.config.InputWidth))
		y1 := int((cy - h/2) * imgH / float32(d.config.InputHeight))
		x2 := int((cx + w/2) * imgW / float32(d.config.InputWidth))
		y2 := int((cy + h/2) * imgH / float32(d.config.InputHeight))

		boxes = append(boxes, image.Rect(x1, y1, x2, y2))
		confidences = append(confidences, score)
	}

	if len(boxes) == 0 {
		return nil
	}

	indices := gocv.NMSBoxes(boxes, confidences, d.config.ConfidenceThresh, d.config.NMSThresh)

	people := make([]BoundingBox, 0, len(indices))
	for _, idx := range indices {
		box := boxes[idx]
		people = append(people, BoundingBox{
			X1:         box.Min.X,
			Y1:         box.Min.Y,
			X2:         box.Max.X,
			Y2:         box.Max.Y,
			Confidence: float64(confidences[idx]),
		})
	}

	return people
}

// Close releases the detector resources.
func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.net.Close()
	return nil
}
