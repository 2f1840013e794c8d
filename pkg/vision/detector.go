package vision

// Detector is the interface for person detection backends.
// Implementations filter to person detections and apply their own
// confidence threshold; returned boxes carry no identity.
type Detector interface {
	// Detect finds people in the JPEG image and returns their bounding boxes.
	Detect(jpeg []byte) ([]BoundingBox, error)

	// Close releases resources.
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float32 // Minimum confidence (default 0.3)
	NMSThresh        float32 // Non-maximum suppression threshold
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YOLOv8n. The confidence
// threshold is low; the tracker smooths identity over frames, so false
// positives are cheaper than missed detections.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/yolov8n.onnx",
		ConfidenceThresh: 0.3,
		NMSThresh:        0.45,
		InputWidth:       640,
		InputHeight:      640,
	}
}
