// Follow runs the person-following control loop: camera capture, YOLO
// person detection, identity tracking, distance estimation, and PID motion
// control, with a web dashboard and optional voice commands.
//
// Configuration is environment-driven:
//
//	CAMERA_ID        capture device index (default 0)
//	MODEL_PATH       YOLOv8 ONNX model (default models/yolov8n.onnx)
//	ROBOT_ADDR       robot HTTP API host:port; empty logs commands only
//	ASR_ADDR         streaming speech-recognition websocket URL; empty disables voice
//	WEB_PORT         dashboard port (default 8090)
//	CALIBRATION_FILE distance calibration file (default calibration.json)
//	HEADLESS         set to disable the display window
//	RECORD_FILE      record annotated session video to this path
//	AUTO_FOLLOW      start in following mode without waiting for a command
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/config"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/camera"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/command"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/follow"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/robot"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/voice"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/web"

	// Default streaming transcriber.
	_ "github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/voice/bundled"
)

func main() {
	log.Init(config.Env("LOG_LEVEL", "info"))

	cfg := follow.DefaultConfig()

	camCfg := camera.DefaultConfig()
	camCfg.DeviceID = config.CameraID()
	camCfg.Width = cfg.FrameWidth
	camCfg.Height = cfg.FrameHeight

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

	var dispatcher robot.Dispatcher = robot.LogDispatcher{}
	if addr := config.RobotAddr(); addr != "" {
		httpd := robot.NewHTTPDispatcher(addr)
		if state, err := httpd.Status(); err != nil {
			log.Warn("robot unreachable, running in log-only mode", "addr", addr, "error", err)
		} else {
			log.Info("robot connected", "addr", addr, "state", state)
			dispatcher = httpd
		}
	}

	task := follow.NewTask(cfg, cam, detector, dispatcher)

	if task.Estimator().LoadCalibration(config.CalibrationPath()) {
		log.Info("distance calibration loaded",
			"path", config.CalibrationPath(), "size_k", task.Estimator().SizeK())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if url := config.ASRAddr(); url != "" {
		startVoice(ctx, url, task)
	}

	server := web.NewServer(config.WebPort(), task)
	server.StartAsync()
	defer server.Shutdown()

	var display *camera.Display
	if !config.EnvBool("HEADLESS") {
		display = camera.NewDisplay("TARA Follow")
		defer display.Close()
	}

	var recorder *camera.Recorder
	if path := os.Getenv("RECORD_FILE"); path != "" {
		recorder, err = camera.NewRecorder(path, float64(camCfg.FPS), cfg.FrameWidth, cfg.FrameHeight)
		if err != nil {
			log.Error("recorder init failed", "error", err)
			os.Exit(1)
		}
		defer recorder.Close()
	}

	task.OnFrame = func(jpeg []byte, info follow.FrameInfo) {
		server.PublishStatus(info.Status)
		server.PublishFrame(jpeg)

		if recorder != nil {
			if err := recorder.Write(jpeg); err != nil {
				log.Warn("recording frame failed", "error", err)
			}
		}

		if display == nil {
			return
		}
		key, err := display.Show(jpeg, camera.Overlay{
			People:         info.People,
			Distances:      info.Estimates,
			TargetID:       info.TargetID,
			TargetEstimate: info.TargetEst,
			TaskState:      info.Status.State,
		})
		if err != nil {
			log.Warn("display failed", "error", err)
			return
		}
		switch key {
		case 'q', 'Q', 27: // ESC
			cancel()
		default:
			if cmd := command.ParseKey(key); cmd != command.Unknown {
				task.Push(cmd)
			}
		}
	}

	if config.EnvBool("AUTO_FOLLOW") {
		task.Push(command.FollowMe)
	}

	if err := task.Run(ctx); err != nil {
		log.Error("follow task failed", "error", err)
		os.Exit(1)
	}
}

// startVoice wires the streaming transcriber into the task's command
// channel. Voice failures never stop the control loop.
func startVoice(ctx context.Context, url string, task *follow.Task) {
	voiceCfg := voice.DefaultConfig()
	voiceCfg.URL = url

	transcriber, err := voice.New(voiceCfg)
	if err != nil {
		log.Warn("voice disabled", "error", err)
		return
	}

	listener := voice.NewListener(transcriber, task.Commands())
	if err := listener.Start(ctx); err != nil {
		log.Warn("voice disabled", "error", err)
		return
	}

	log.Info("voice commands enabled", "url", url)
	go func() {
		<-ctx.Done()
		listener.Stop()
	}()
}
