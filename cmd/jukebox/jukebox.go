// Package jukebox plays audio files synchronously, one at a time.
package jukebox

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrDeviceUnavailable = errors.New("audio device unavailable")
	ErrUnknownBackend    = errors.New("unknown playback backend")
	ErrNoPlayerCommand   = errors.New("no external player command found")
)

// Backend selects how audio reaches the speakers.
type Backend string

const (
	BackendAuto Backend = "auto"
	BackendBeep Backend = "beep"
	BackendExec Backend = "exec"
)

// StartFunc is called once a track has been opened and is about to play.
// length is zero when the backend cannot tell.
type StartFunc func(path string, length time.Duration)

// Player plays one file at a time. Play blocks until the track has finished,
// playback failed, or ctx is done. All resources for a track are released
// before Play returns.
type Player interface {
	Play(ctx context.Context, path string) error
	Close() error
}

// Options configures a Player.
type Options struct {
	Backend Backend

	// Command is the external player for BackendExec. The file path is
	// appended, or substituted for a "{file}" argument.
	Command []string

	// MaxTrackLength bounds a single external player run.
	MaxTrackLength time.Duration

	OnStart StartFunc
}

// New creates a Player for the configured backend.
// BackendAuto uses beep when this build has audio support, otherwise an external player.
func New(opts Options) (Player, error) {
	if opts.OnStart == nil {
		opts.OnStart = func(string, time.Duration) {}
	}
	if opts.MaxTrackLength <= 0 {
		opts.MaxTrackLength = 6 * time.Hour
	}

	switch opts.Backend {
	case BackendAuto, "":
		if AudioAvailable {
			return newBeepPlayer(opts), nil
		}
		return newExecPlayer(opts)
	case BackendBeep:
		if !AudioAvailable {
			return nil, fmt.Errorf("beep backend requires a cgo build: %w", ErrDeviceUnavailable)
		}
		return newBeepPlayer(opts), nil
	case BackendExec:
		return newExecPlayer(opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, opts.Backend)
	}
}
