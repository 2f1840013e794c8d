// Package bundled provides the default streaming speech-recognition
// transcriber, a websocket client for an external ASR service that emits
// transcript events as JSON text messages.
//
// Import for side effect to register it:
//
//	import _ "github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/voice/bundled"
package bundled

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/voice"
)

func init() {
	voice.Register(func(cfg voice.Config) (voice.Transcriber, error) {
		return newStreamTranscriber(cfg), nil
	})
}

// transcriptEvent is one message from the recognizer stream.
type transcriptEvent struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"is_final"`
}

// streamTranscriber reads transcript events from a websocket ASR service,
// reconnecting with a fixed delay until stopped.
type streamTranscriber struct {
	cfg voice.Config

	mu           sync.Mutex
	conn         *websocket.Conn
	started      bool
	cancel       context.CancelFunc
	done         chan struct{}
	onTranscript func(text string, isFinal bool)
	onError      func(err error)
}

func newStreamTranscriber(cfg voice.Config) *streamTranscriber {
	return &streamTranscriber{cfg: cfg}
}

func (t *streamTranscriber) OnTranscript(fn func(text string, isFinal bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTranscript = fn
}

func (t *streamTranscriber) OnError(fn func(err error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onError = fn
}

// Start launches the read loop. It returns immediately; connection failures
// are reported through OnError and retried.
func (t *streamTranscriber) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return voice.ErrAlreadyStarted
	}
	t.started = true

	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})

	go t.run(ctx)
	return nil
}

// run dials the recognizer and consumes transcript events until ctx ends.
func (t *streamTranscriber) run(ctx context.Context) {
	defer close(t.done)

	for ctx.Err() == nil {
		if err := t.connectAndRead(ctx); err != nil && ctx.Err() == nil {
			t.reportError(err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(t.cfg.ReconnectDelay):
		}
	}
}

func (t *streamTranscriber) connectAndRead(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.cfg.URL, nil)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	log.Info("speech recognizer connected", "url", t.cfg.URL, "language", t.cfg.Language)

	defer func() {
		t.mu.Lock()
		t.conn = nil
		t.mu.Unlock()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var event transcriptEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Debug("unparsable recognizer message", "error", err)
			continue
		}

		t.mu.Lock()
		fn := t.onTranscript
		t.mu.Unlock()
		if fn != nil && event.Text != "" {
			fn(event.Text, event.IsFinal)
		}
	}
}

// Stop closes the connection and waits for the read loop, bounded by
// voice.ShutdownTimeout. On timeout it proceeds in degraded shutdown.
func (t *streamTranscriber) Stop() error {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return nil
	}
	t.started = false
	cancel := t.cancel
	conn := t.conn
	done := t.done
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close() // unblocks ReadMessage
	}

	select {
	case <-done:
	case <-time.After(voice.ShutdownTimeout):
		log.Warn("recognizer goroutine did not exit in time, continuing shutdown")
	}

	return nil
}

func (t *streamTranscriber) reportError(err error) {
	t.mu.Lock()
	fn := t.onError
	t.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}
