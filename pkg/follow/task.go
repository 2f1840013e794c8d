package follow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/command"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/distance"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/motion"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/robot"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/tracking"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
)

// FrameSource produces camera frames as JPEG bytes.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// Status is a point-in-time snapshot of the task, safe to serve from other
// goroutines.
type Status struct {
	SessionID     string  `json:"session_id"`
	State         string  `json:"state"`
	MovementState string  `json:"movement_state"`
	FrameCount    uint64  `json:"frame_count"`
	ErrorCount    int     `json:"error_count"`
	PeopleCount   int     `json:"people_count"`
	TargetID      int     `json:"target_id"`
	TargetMeters  float64 `json:"target_distance_m"`
	TargetConf    float64 `json:"target_confidence"`
	Category      string  `json:"distance_category"`
	FPS           float64 `json:"fps"`
	UptimeSeconds float64 `json:"uptime_s"`
}

// FrameInfo carries one frame's results to an observer (display, recorder).
type FrameInfo struct {
	People    []vision.BoundingBox
	Estimates []distance.Estimate // parallel to People
	TargetID  int
	TargetEst distance.Estimate
	Status    Status
}

// Task runs the follow control loop. Capture, detection, tracking,
// estimation, and control all happen on the Run goroutine; commands arrive
// through a bounded channel and status leaves through a locked snapshot.
type Task struct {
	config Config

	source     FrameSource
	detector   vision.Detector
	tracker    *tracking.Tracker
	estimator  *distance.Estimator
	controller *motion.Controller
	dispatcher robot.Dispatcher

	cmds chan command.Type

	// OnFrame, if set before Run, is called on the loop goroutine after
	// every processed frame with the raw JPEG and that frame's results.
	OnFrame func(jpeg []byte, info FrameInfo)

	state           TaskState
	sessionID       string
	frameCount      uint64
	errorCount      int
	captureFailures int
	started         time.Time

	// FPS accounting over one-second windows.
	fps       float64
	fpsFrames int
	fpsWindow time.Time

	statusMu sync.RWMutex
	status   Status
}

// NewTask creates a follow task. The caller owns source, detector, and
// dispatcher lifecycles; tracker, estimator, and controller are built from
// the config.
func NewTask(config Config, source FrameSource, detector vision.Detector, dispatcher robot.Dispatcher) *Task {
	return &Task{
		config:     config,
		source:     source,
		detector:   detector,
		tracker:    tracking.New(config.Tracking),
		estimator:  distance.New(config.Distance),
		controller: motion.NewController(config.Motion),
		dispatcher: dispatcher,
		cmds:       make(chan command.Type, config.CommandBuffer),
		state:      StateIdle,
		sessionID:  uuid.NewString(),
	}
}

// Estimator exposes the task's estimator so calibration data can be loaded
// before Run.
func (t *Task) Estimator() *distance.Estimator {
	return t.estimator
}

// Commands returns the channel external producers feed commands into.
// Producers must send non-blocking and drop on overflow.
func (t *Task) Commands() chan<- command.Type {
	return t.cmds
}

// Push injects a command, dropping it if the channel is full.
func (t *Task) Push(cmd command.Type) {
	select {
	case t.cmds <- cmd:
	default:
		log.Warn("command dropped, queue full", "command", cmd)
	}
}

// Status returns the latest snapshot.
func (t *Task) Status() Status {
	t.statusMu.RLock()
	defer t.statusMu.RUnlock()
	return t.status
}

// Run executes the control loop until ctx is canceled or capture fails
// persistently. On return the platform has been commanded to stop.
func (t *Task) Run(ctx context.Context) error {
	t.started = time.Now()
	t.fpsWindow = t.started
	log.Info("follow task started", "session", t.sessionID)

	defer func() {
		t.controller.StopFollowing()
		t.dispatch(motion.Command{Priority: motion.PriorityNormal})
		log.Info("follow task finished",
			"frames", t.frameCount, "errors", t.errorCount)
	}()

	for {
		select {
		case <-ctx.Done():
			if t.state != StateError {
				t.state = StateStopped
			}
			t.publishStatus(0, 0, distance.Estimate{})
			return nil
		default:
		}

		jpeg, err := t.source.CaptureJPEG()
		if err != nil {
			t.errorCount++
			t.captureFailures++
			log.Error("frame capture failed", "error", err,
				"consecutive", t.captureFailures)
			if t.captureFailures >= t.config.MaxCaptureErrors {
				t.state = StateError
				t.publishStatus(0, 0, distance.Estimate{})
				return fmt.Errorf("follow: %d consecutive capture failures, giving up",
					t.captureFailures)
			}
			t.waitCommand()
			continue
		}
		t.captureFailures = 0

		if err := t.processFrame(jpeg); err != nil {
			t.errorCount++
			log.Error("frame processing failed", "error", err)
		}

		t.frameCount++
		t.tickFPS()
		t.waitCommand()
	}
}

// processFrame runs one full perception-control cycle. A panic anywhere in
// the cycle is contained to this frame.
func (t *Task) processFrame(jpeg []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("follow: frame panic: %v", r)
		}
	}()

	people, err := t.detector.Detect(jpeg)
	if err != nil {
		return fmt.Errorf("detect: %w", err)
	}

	tracked := t.tracker.Assign(people)

	estimates := make([]distance.Estimate, len(tracked))
	for i, p := range tracked {
		estimates[i] = t.estimator.Combined(p, t.config.FrameWidth, t.config.FrameHeight)
	}

	target, found := vision.Largest(tracked)

	var targetEst distance.Estimate
	if found {
		for i, p := range tracked {
			if p.ID == target.ID {
				targetEst = estimates[i]
				break
			}
		}

		// A target back in range ends the search; one still at the far
		// edge keeps the sweep going.
		if t.state == StateSearching &&
			distance.Categorize(targetEst.Meters) != distance.CategoryVeryFar {
			log.Info("target reacquired", "id", target.ID,
				"distance_m", targetEst.Meters)
			t.state = StateFollowing
			t.controller.StartFollowing()
		}

		if t.state == StateFollowing {
			cmd := t.controller.UpdateTarget(target, targetEst,
				t.config.FrameWidth, t.config.FrameHeight)
			t.dispatch(cmd)

			if distance.Categorize(targetEst.Meters) == distance.CategoryVeryFar {
				log.Info("target too far, searching", "distance_m", targetEst.Meters)
				t.state = StateSearching
				t.controller.StartSearch()
			}
		}
	} else if t.state == StateFollowing {
		log.Info("target lost, searching")
		t.state = StateSearching
		t.controller.StartSearch()
	}

	if t.state == StateSearching {
		t.dispatch(t.controller.UpdateSearch())
	}

	targetID := 0
	if found {
		targetID = target.ID
	}
	t.publishStatus(len(tracked), targetID, targetEst)

	if t.OnFrame != nil {
		t.OnFrame(jpeg, FrameInfo{
			People:    tracked,
			Estimates: estimates,
			TargetID:  targetID,
			TargetEst: targetEst,
			Status:    t.Status(),
		})
	}

	return nil
}

// waitCommand drains at most one pending command, waiting up to CommandPoll
// so the loop yields between frames.
func (t *Task) waitCommand() {
	select {
	case cmd := <-t.cmds:
		t.apply(cmd)
	case <-time.After(t.config.CommandPoll):
	}
}

// apply executes one external command.
func (t *Task) apply(cmd command.Type) {
	switch cmd {
	case command.FollowMe:
		if t.state == StateFollowing {
			return
		}
		log.Info("command: follow")
		t.state = StateFollowing
		t.controller.StartFollowing()
	case command.Stop:
		log.Info("command: stop")
		t.state = StateStopped
		t.controller.StopFollowing()
		t.dispatch(motion.Command{Priority: motion.PriorityNormal})
	}
}

// dispatch forwards a command to the platform. Dispatch failures are logged
// and otherwise ignored; the next frame supersedes this command anyway.
func (t *Task) dispatch(cmd motion.Command) {
	if err := t.dispatcher.Dispatch(cmd); err != nil {
		t.errorCount++
		log.Error("dispatch failed", "error", err)
	}
}

// tickFPS advances the one-second FPS window.
func (t *Task) tickFPS() {
	t.fpsFrames++
	if elapsed := time.Since(t.fpsWindow); elapsed >= time.Second {
		t.fps = float64(t.fpsFrames) / elapsed.Seconds()
		t.fpsFrames = 0
		t.fpsWindow = time.Now()
	}
}

// publishStatus refreshes the shared snapshot.
func (t *Task) publishStatus(people, targetID int, targetEst distance.Estimate) {
	category := ""
	if targetID != 0 {
		category = string(distance.Categorize(targetEst.Meters))
	}

	t.statusMu.Lock()
	t.status = Status{
		SessionID:     t.sessionID,
		State:         t.state.String(),
		MovementState: t.controller.CurrentState().String(),
		FrameCount:    t.frameCount,
		ErrorCount:    t.errorCount,
		PeopleCount:   people,
		TargetID:      targetID,
		TargetMeters:  targetEst.Meters,
		TargetConf:    targetEst.Confidence,
		Category:      category,
		FPS:           t.fps,
		UptimeSeconds: time.Since(t.started).Seconds(),
	}
	t.statusMu.Unlock()
}
