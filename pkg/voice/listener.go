package voice

import (
	"context"

	"github.com/VatsalyaBhadaurya/follow-detect-TARA/internal/log"
	"github.com/VatsalyaBhadaurya/follow-detect-TARA/pkg/command"
)

// Listener bridges a Transcriber to the control loop's command channel.
// It is the sole producer; the push is non-blocking and drops on a full
// channel so recognition can never stall the control loop.
type Listener struct {
	transcriber Transcriber
	out         chan<- command.Type
}

// NewListener creates a listener feeding commands into out.
func NewListener(transcriber Transcriber, out chan<- command.Type) *Listener {
	return &Listener{
		transcriber: transcriber,
		out:         out,
	}
}

// Start wires the transcript callbacks and starts the transcriber.
func (l *Listener) Start(ctx context.Context) error {
	l.transcriber.OnTranscript(func(text string, isFinal bool) {
		if !isFinal {
			return
		}

		cmd := command.ParseUtterance(text)
		if cmd == command.Unknown {
			log.Debug("utterance not recognized as command", "text", text)
			return
		}

		log.Info("voice command recognized", "command", cmd.String(), "text", text)
		select {
		case l.out <- cmd:
		default:
			log.Warn("command channel full, dropping", "command", cmd.String())
		}
	})

	l.transcriber.OnError(func(err error) {
		log.Error("speech recognition error", "error", err)
	})

	return l.transcriber.Start(ctx)
}

// Stop shuts the transcriber down. The underlying Stop is bounded by
// ShutdownTimeout, so this never blocks shutdown indefinitely.
func (l *Listener) Stop() error {
	return l.transcriber.Stop()
}
