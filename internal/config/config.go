// Package config provides configuration helpers for follow-system commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for process-level settings.
const (
	DefaultCameraID    = 0
	DefaultWebPort     = "8090"
	DefaultCalibration = "calibration.json"
)

// Env returns the value of key, or fallback if unset or empty.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvInt returns the integer value of key, or fallback if unset or unparsable.
func EnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// EnvBool returns true if key is set to "1", "true", or "yes".
func EnvBool(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// CameraID returns the capture device index from CAMERA_ID.
func CameraID() int {
	return EnvInt("CAMERA_ID", DefaultCameraID)
}

// RobotAddr returns the robot base address from ROBOT_ADDR.
// Empty means no robot is attached and commands are logged only.
func RobotAddr() string {
	return os.Getenv("ROBOT_ADDR")
}

// ASRAddr returns the streaming speech-recognition websocket URL from ASR_ADDR.
// Empty disables voice commands.
func ASRAddr() string {
	return os.Getenv("ASR_ADDR")
}

// WebPort returns the status server port from WEB_PORT.
func WebPort() string {
	return Env("WEB_PORT", DefaultWebPort)
}

// CalibrationPath returns the calibration file path from CALIBRATION_FILE.
func CalibrationPath() string {
	return Env("CALIBRATION_FILE", DefaultCalibration)
}
