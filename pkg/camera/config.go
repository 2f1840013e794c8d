package camera

import "fmt"

// Config holds capture device settings.
type Config struct {
	DeviceID int `json:"device_id"` // V4L2 device index
	Width    int `json:"width"`     // Frame width in pixels
	Height   int `json:"height"`    // Frame height in pixels
	FPS      int `json:"fps"`       // Target capture rate
}

// DefaultConfig returns the recommended 480p capture configuration.
// The distance estimator's focal-length constant assumes this geometry.
func DefaultConfig() Config {
	return Config{
		DeviceID: 0,
		Width:    640,
		Height:   480,
		FPS:      30,
	}
}

// Validate checks the config values are within sane ranges.
func (c Config) Validate() error {
	if c.DeviceID < 0 {
		return fmt.Errorf("camera: device id %d is negative", c.DeviceID)
	}
	if c.Width < 160 || c.Height < 120 {
		return fmt.Errorf("camera: resolution %dx%d below minimum 160x120", c.Width, c.Height)
	}
	if c.FPS < 1 || c.FPS > 120 {
		return fmt.Errorf("camera: fps %d outside 1-120", c.FPS)
	}
	return nil
}
