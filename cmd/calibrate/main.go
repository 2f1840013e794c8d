// Calibrate collects distance calibration samples interactively. Stand at a
// measured distance from the camera, enter that distance in meters, and the
// tool records the detected bounding box geometry. With three or more
// samples it fits the size constant and writes the calibration file used by
// the follow command.
//
// Environment: CAMERA_ID, MODEL_PATH, CALIBRATION_FILE (same as follow).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/config"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/camera"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/distance"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
)

const frameWidth, frameHeight = 640, 480

func main() {
	log.Init(config.Env("LOG_LEVEL", "info"))

	camCfg := camera.DefaultConfig()
	camCfg.DeviceID = config.CameraID()

	cam, err := camera.OpenWebcam(camCfg)
	if err != nil {
		log.Error("camera init failed", "error", err)
		os.Exit(1)
	}
	defer cam.Close()

	visionCfg := vision.DefaultConfig()
	visionCfg.ModelPath = config.Env("MODEL_PATH", visionCfg.ModelPath)
	detector, err := vision.NewYOLO(visionCfg)
	if err != nil {
		log.Error("detector init failed", "error", err, "model", visionCfg.ModelPath)
		os.Exit(1)
	}
	defer detector.Close()

	estimator := distance.New(distance.DefaultConfig())
	path := config.CalibrationPath()
	if estimator.LoadCalibration(path) {
		fmt.Printf("Loaded %d existing samples from %s\n", estimator.PointCount(), path)
	}

	fmt.Println("Distance calibration")
	fmt.Println("Stand at a measured distance, then enter it in meters (e.g. 1.5).")
	fmt.Println("Commands: fit, save, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%d samples] > ", estimator.PointCount())
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "":
			continue
		case "quit", "q":
			return
		case "fit":
			fit(estimator)
			continue
		case "save":
			fit(estimator)
			if err := estimator.SaveCalibration(path); err != nil {
				fmt.Printf("save failed: %v\n", err)
				continue
			}
			fmt.Printf("Saved %d samples to %s\n", estimator.PointCount(), path)
			continue
		}

		meters, err := strconv.ParseFloat(input, 64)
		if err != nil || meters <= 0 {
			fmt.Println("Enter a positive distance in meters, or fit/save/quit.")
			continue
		}

		if err := sample(cam, detector, estimator, meters); err != nil {
			fmt.Printf("sample failed: %v\n", err)
		}
	}
}

// sample captures one frame, detects the largest person, and records a
// calibration point at the given ground-truth distance.
func sample(cam *camera.Webcam, detector vision.Detector, estimator *distance.Estimator, meters float64) error {
	jpeg, err := cam.CaptureJPEG()
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	people, err := detector.Detect(jpeg)
	if err != nil {
		return fmt.Errorf("detect: %w", err)
	}

	person, ok := vision.Largest(people)
	if !ok {
		return fmt.Errorf("no person detected, stand in frame and retry")
	}

	estimator.AddCalibrationPoint(person, meters, frameWidth, frameHeight)
	fmt.Printf("Recorded %.2fm: box %dx%d (area %d)\n",
		meters, person.Width(), person.Height(), person.Area())
	return nil
}

// fit runs the least-squares fit and reports the result.
func fit(estimator *distance.Estimator) {
	if estimator.PointCount() < 3 {
		fmt.Printf("Need at least 3 samples, have %d.\n", estimator.PointCount())
		return
	}
	estimator.Fit()
	if estimator.IsCalibrated() {
		fmt.Printf("Fitted size constant: %.1f\n", estimator.SizeK())
	} else {
		fmt.Println("Fit rejected, collect better-spread samples.")
	}
}
