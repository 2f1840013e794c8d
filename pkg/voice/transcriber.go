// Package voice turns recognized speech into follow-system commands.
//
// A Transcriber is a streaming speech-recognition backend; implementations
// register a factory so callers select one at startup without importing its
// internals. The Listener owns the background recognition goroutine and is
// the single producer into the control loop's bounded command channel.
package voice

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by transcribers.
var (
	ErrNotConnected   = errors.New("voice: transcriber not connected")
	ErrAlreadyStarted = errors.New("voice: transcriber already started")
	ErrMissingURL     = errors.New("voice: missing recognizer URL")
)

// ShutdownTimeout bounds how long Stop waits for the background recognition
// goroutine; past it, shutdown proceeds degraded instead of blocking forever.
const ShutdownTimeout = 2 * time.Second

// Transcriber is the interface for streaming speech-recognition backends.
type Transcriber interface {
	// Start connects to the backend and begins streaming transcripts.
	// Set callbacks before calling Start.
	Start(ctx context.Context) error

	// Stop shuts the transcriber down, waiting at most ShutdownTimeout
	// for its goroutine to exit.
	Stop() error

	// OnTranscript sets the callback for recognized speech. isFinal
	// marks the end of an utterance.
	OnTranscript(fn func(text string, isFinal bool))

	// OnError sets the callback for recognition errors.
	OnError(fn func(err error))
}

// Config holds transcriber configuration.
type Config struct {
	// URL of the streaming recognizer websocket endpoint.
	URL string

	// Language hint for recognition (default "en-US").
	Language string

	// ReconnectDelay between connection attempts (default 1s).
	ReconnectDelay time.Duration
}

// DefaultConfig returns transcriber defaults.
func DefaultConfig() Config {
	return Config{
		Language:       "en-US",
		ReconnectDelay: time.Second,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrMissingURL
	}
	return nil
}

// TranscriberFactory is a function that creates a Transcriber.
type TranscriberFactory func(cfg Config) (Transcriber, error)

// factory holds the registered transcriber factory.
var factory TranscriberFactory

// Register sets the transcriber factory. Called by the bundled
// implementation in init().
func Register(f TranscriberFactory) {
	factory = f
}

// New creates a Transcriber with the given configuration. Returns an error
// if the config is invalid or no factory is registered.
func New(cfg Config) (Transcriber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if factory == nil {
		return nil, errors.New("voice: no transcriber implementation registered")
	}

	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = time.Second
	}

	return factory(cfg)
}
