//go:build !linux || cgo

package jukebox

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// AudioAvailable indicates whether in-process audio playback is supported in this build.
const AudioAvailable = true

// beepPlayer decodes files with beep and plays them on the default speaker.
type beepPlayer struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	onStart     StartFunc
}

func newBeepPlayer(opts Options) *beepPlayer {
	return &beepPlayer{
		sampleRate: beep.SampleRate(44100), // Standard sample rate
		onStart:    opts.OnStart,
	}
}

// initSpeaker initializes the speaker if not already done.
func (p *beepPlayer) initSpeaker() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	p.initialized = true
	return nil
}

// decode picks a decoder by file extension.
func decode(rc io.ReadCloser, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return wav.Decode(rc)
	case ".mp3":
		return mp3.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("no decoder for %q", filepath.Ext(path))
	}
}

// Play opens, decodes and plays path, blocking until the track ends or ctx is done.
func (p *beepPlayer) Play(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decode(file, path)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, filepath.Base(path), err)
	}
	// Closing the decoder closes the file
	defer streamer.Close()

	if err := p.initSpeaker(); err != nil {
		return err
	}

	p.onStart(path, format.SampleRate.D(streamer.Len()))

	// Resample if needed to match speaker sample rate
	resampled := beep.Resample(4, format.SampleRate, p.sampleRate, streamer)

	done := make(chan struct{})
	speaker.Play(beep.Seq(resampled, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		if err := streamer.Err(); err != nil {
			return fmt.Errorf("playback of %s failed: %w", filepath.Base(path), err)
		}
		return nil
	case <-ctx.Done():
		// Detach the stream from the mixer before the deferred Close
		speaker.Clear()
		return ctx.Err()
	}
}

// Close releases the audio device.
func (p *beepPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	return nil
}
