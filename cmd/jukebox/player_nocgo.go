//go:build linux && !cgo

package jukebox

import (
	"context"
	"fmt"
)

// AudioAvailable indicates whether in-process audio playback is supported in this build.
// On linux, audio requires CGO for the ALSA bindings.
const AudioAvailable = false

// beepPlayer fails every track when cgo is disabled.
type beepPlayer struct{}

func newBeepPlayer(Options) *beepPlayer {
	return &beepPlayer{}
}

func (p *beepPlayer) Play(ctx context.Context, path string) error {
	return fmt.Errorf("cannot play %s without cgo: %w", path, ErrDeviceUnavailable)
}

func (p *beepPlayer) Close() error {
	return nil
}
