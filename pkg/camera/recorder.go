package camera

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
)

// Recorder writes frames to an AVI file.
type Recorder struct {
	writer *gocv.VideoWriter
	frames int
}

// NewRecorder creates a video recorder for the given geometry.
func NewRecorder(path string, fps float64, width, height int) (*Recorder, error) {
	writer, err := gocv.VideoWriterFile(path, "XVID", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("open video writer %s: %w", path, err)
	}

	log.Info("recording started", "path", path, "fps", fps)
	return &Recorder{writer: writer}, nil
}

// Write appends one JPEG frame to the recording.
func (r *Recorder) Write(jpeg []byte) error {
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	defer img.Close()

	if err := r.writer.Write(img); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	r.frames++
	return nil
}

// Close finalizes the recording.
func (r *Recorder) Close() error {
	log.Info("recording finished", "frames", r.frames)
	return r.writer.Close()
}
