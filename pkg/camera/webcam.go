// Package camera provides the video capture, display, and recording devices
// around the follow loop. Frames cross package boundaries as JPEG bytes so
// the core pipeline stays free of gocv types.
package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
)

// Webcam captures frames from a local video device.
type Webcam struct {
	mu  sync.Mutex
	cap *gocv.VideoCapture
	img gocv.Mat
}

// OpenWebcam opens the capture device and applies the requested geometry.
func OpenWebcam(cfg Config) (*Webcam, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cap, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.DeviceID, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	cap.Set(gocv.VideoCaptureFPS, float64(cfg.FPS))

	log.Info("camera opened", "device", cfg.DeviceID,
		"width", cfg.Width, "height", cfg.Height, "fps", cfg.FPS)

	return &Webcam{
		cap: cap,
		img: gocv.NewMat(),
	}, nil
}

// CaptureJPEG grabs one frame and returns it JPEG-encoded.
func (w *Webcam) CaptureJPEG() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ok := w.cap.Read(&w.img); !ok || w.img.Empty() {
		return nil, fmt.Errorf("camera read failed")
	}

	buf, err := gocv.IMEncode(".jpg", w.img)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}

// Close releases the capture device.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.img.Close()
	return w.cap.Close()
}
