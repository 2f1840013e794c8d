package follow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/command"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/motion"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/vision"
)

// stubSource serves placeholder frames and cancels the run context once
// maxFrames have been captured. failFirst makes the first N captures fail.
type stubSource struct {
	maxFrames int
	failFirst int
	cancel    context.CancelFunc

	n int
}

func (s *stubSource) CaptureJPEG() ([]byte, error) {
	s.n++
	if s.n <= s.failFirst {
		return nil, errors.New("camera read failed")
	}
	if s.n >= s.maxFrames+s.failFirst && s.cancel != nil {
		s.cancel()
	}
	return []byte("jpeg"), nil
}

// recordDispatcher captures every dispatched command. The loop goroutine is
// the only writer; tests read after Run returns.
type recordDispatcher struct {
	cmds []motion.Command
}

func (d *recordDispatcher) Dispatch(cmd motion.Command) error {
	d.cmds = append(d.cmds, cmd)
	return nil
}

// nearPerson is a large centered box that fuses to roughly 2m.
func nearPerson() vision.BoundingBox {
	return vision.BoundingBox{X1: 245, Y1: 40, X2: 395, Y2: 440, Confidence: 0.9}
}

// farPerson is a tiny centered box that fuses to the 4m clamp (very far).
func farPerson() vision.BoundingBox {
	return vision.BoundingBox{X1: 310, Y1: 220, X2: 330, Y2: 260, Confidence: 0.6}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CommandPoll = time.Millisecond
	return cfg
}

// runTask drives a task over scripted detections and returns the dispatched
// commands, the per-frame status history, and Run's error.
func runTask(t *testing.T, script [][]vision.BoundingBox, frames, failFirst int,
	setup func(*Task)) (*recordDispatcher, []Status, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	source := &stubSource{maxFrames: frames, failFirst: failFirst, cancel: cancel}
	dispatcher := &recordDispatcher{}
	task := NewTask(testConfig(), source, &vision.MockDetector{Script: script}, dispatcher)

	var history []Status
	task.OnFrame = func(jpeg []byte, info FrameInfo) {
		history = append(history, info.Status)
	}

	if setup != nil {
		setup(task)
	}

	err := task.Run(ctx)
	return dispatcher, history, err
}

func lastStatus(t *testing.T, history []Status) Status {
	t.Helper()
	if len(history) == 0 {
		t.Fatal("No frames were processed")
	}
	return history[len(history)-1]
}

func TestTask_IdleDispatchesNothing(t *testing.T) {
	dispatcher, history, err := runTask(t, [][]vision.BoundingBox{{nearPerson()}}, 4, 0, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := lastStatus(t, history).State; got != "idle" {
		t.Errorf("State: got %q, want idle", got)
	}
	// Only the shutdown stop may be dispatched.
	for _, cmd := range dispatcher.cmds {
		if !cmd.IsZero() {
			t.Errorf("Unexpected movement while idle: %+v", cmd)
		}
	}
}

func TestTask_FollowCommandStartsFollowing(t *testing.T) {
	dispatcher, history, err := runTask(t, [][]vision.BoundingBox{{nearPerson()}}, 6, 0,
		func(task *Task) { task.Push(command.FollowMe) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	last := lastStatus(t, history)
	if last.State != "following" {
		t.Errorf("State: got %q, want following", last.State)
	}
	if last.TargetID != 1 {
		t.Errorf("TargetID: got %d, want 1", last.TargetID)
	}
	if last.PeopleCount != 1 {
		t.Errorf("PeopleCount: got %d, want 1", last.PeopleCount)
	}

	var forward bool
	for _, cmd := range dispatcher.cmds {
		if cmd.Linear > 0 {
			forward = true
		}
	}
	if !forward {
		t.Error("Expected at least one forward command toward a 2m target")
	}
}

func TestTask_TargetLostStartsSearching(t *testing.T) {
	// One frame with a person, then the person vanishes.
	script := [][]vision.BoundingBox{{nearPerson()}, {nearPerson()}, {}}
	dispatcher, history, err := runTask(t, script, 6, 0,
		func(task *Task) { task.Push(command.FollowMe) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := lastStatus(t, history).State; got != "searching" {
		t.Errorf("State: got %q, want searching", got)
	}

	// The sweep rotates in place at the search speed, clockwise first.
	var swept bool
	for _, cmd := range dispatcher.cmds {
		if cmd.Linear == 0 && cmd.Angular == testConfig().Motion.SearchAngularVelocity {
			swept = true
		}
	}
	if !swept {
		t.Error("Expected a pure-rotation search command after losing the target")
	}
}

func TestTask_VeryFarTargetStartsSearching(t *testing.T) {
	_, history, err := runTask(t, [][]vision.BoundingBox{{farPerson()}}, 6, 0,
		func(task *Task) { task.Push(command.FollowMe) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	last := lastStatus(t, history)
	if last.State != "searching" {
		t.Errorf("State: got %q, want searching", last.State)
	}
	if last.Category != "very_far" {
		t.Errorf("Category: got %q, want very_far", last.Category)
	}
}

func TestTask_ReacquireResumesFollowing(t *testing.T) {
	// Person, gone for one frame, then back at the same spot.
	script := [][]vision.BoundingBox{{nearPerson()}, {}, {nearPerson()}}
	_, history, err := runTask(t, script, 6, 0,
		func(task *Task) { task.Push(command.FollowMe) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var searched bool
	for _, st := range history {
		if st.State == "searching" {
			searched = true
		}
	}
	if !searched {
		t.Error("Expected a searching phase while the person was gone")
	}

	last := lastStatus(t, history)
	if last.State != "following" {
		t.Errorf("State after reacquire: got %q, want following", last.State)
	}
	if last.TargetID != 1 {
		t.Errorf("Identity after reacquire: got %d, want 1", last.TargetID)
	}
}

func TestTask_StopCommandHalts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	source := &stubSource{maxFrames: 8, cancel: cancel}
	dispatcher := &recordDispatcher{}
	task := NewTask(testConfig(), source,
		&vision.MockDetector{Script: [][]vision.BoundingBox{{nearPerson()}}}, dispatcher)

	var history []Status
	task.OnFrame = func(jpeg []byte, info FrameInfo) {
		history = append(history, info.Status)
		if info.Status.FrameCount == 3 {
			task.Push(command.Stop)
		}
	}
	task.Push(command.FollowMe)

	if err := task.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	last := lastStatus(t, history)
	if last.State != "stopped" {
		t.Errorf("State: got %q, want stopped", last.State)
	}
	if last.MovementState != "stopped" {
		t.Errorf("MovementState: got %q, want stopped", last.MovementState)
	}
}

func TestTask_PersistentCaptureFailureIsFatal(t *testing.T) {
	ctx := context.Background()

	source := &stubSource{failFirst: 1 << 30}
	dispatcher := &recordDispatcher{}
	task := NewTask(testConfig(), source, &vision.MockDetector{}, dispatcher)

	err := task.Run(ctx)
	if err == nil {
		t.Fatal("Run should fail after sustained capture failures")
	}
	status := task.Status()
	if status.State != "error" {
		t.Errorf("State: got %q, want error", status.State)
	}
	if status.ErrorCount != testConfig().MaxCaptureErrors {
		t.Errorf("ErrorCount: got %d, want %d", status.ErrorCount, testConfig().MaxCaptureErrors)
	}
}

func TestTask_CaptureRecoveryResetsFailureCount(t *testing.T) {
	// 5 failures, under the limit of 10, then good frames.
	_, history, err := runTask(t, [][]vision.BoundingBox{{nearPerson()}}, 4, 5, nil)
	if err != nil {
		t.Fatalf("Run should survive transient capture failures: %v", err)
	}

	last := lastStatus(t, history)
	if last.ErrorCount != 5 {
		t.Errorf("ErrorCount: got %d, want 5", last.ErrorCount)
	}
}

func TestTask_DetectorErrorsAreTransient(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	source := &stubSource{maxFrames: 4, cancel: cancel}
	detector := &vision.MockDetector{Err: errors.New("inference failed")}
	task := NewTask(testConfig(), source, detector, &recordDispatcher{})

	if err := task.Run(ctx); err != nil {
		t.Fatalf("Run should survive detector errors: %v", err)
	}
	if task.Status().ErrorCount == 0 {
		t.Error("Detector errors should be counted")
	}
}

func TestTask_StatusSnapshot(t *testing.T) {
	_, history, err := runTask(t, [][]vision.BoundingBox{{nearPerson()}}, 5, 0,
		func(task *Task) { task.Push(command.FollowMe) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	last := lastStatus(t, history)
	if last.SessionID == "" {
		t.Error("SessionID should be set")
	}
	if last.Category != "optimal" {
		t.Errorf("Category for a ~2m target: got %q, want optimal", last.Category)
	}
	if last.TargetMeters < 1.0 || last.TargetMeters > 3.0 {
		t.Errorf("TargetMeters: got %v, want within (1.0, 3.0)", last.TargetMeters)
	}
	if last.FrameCount < 3 {
		t.Errorf("FrameCount: got %d, want at least 3", last.FrameCount)
	}
}

func TestTask_LargestOfSeveralIsTarget(t *testing.T) {
	small := vision.BoundingBox{X1: 60, Y1: 100, X2: 140, Y2: 300, Confidence: 0.8}
	script := [][]vision.BoundingBox{{small, nearPerson()}}

	_, history, err := runTask(t, script, 5, 0,
		func(task *Task) { task.Push(command.FollowMe) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	last := lastStatus(t, history)
	if last.PeopleCount != 2 {
		t.Errorf("PeopleCount: got %d, want 2", last.PeopleCount)
	}
	// The larger (closer) person gets identity 2 in detection order.
	if last.TargetID != 2 {
		t.Errorf("TargetID: got %d, want 2 (the larger box)", last.TargetID)
	}
}
