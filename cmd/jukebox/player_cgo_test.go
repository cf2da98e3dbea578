//go:build !linux || cgo

package jukebox

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"
)

// These cases fail before the speaker is touched, so they run without a sound card.

func TestBeepPlayer_RejectsCorruptWav(t *testing.T) {
	path := writeTrack(t, "broken.wav")

	p := newBeepPlayer(Options{OnStart: func(_ string, _ time.Duration) {
		t.Error("OnStart should not be called for a corrupt file")
	}})
	err := p.Play(context.Background(), path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Play() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestBeepPlayer_RejectsUnknownExtension(t *testing.T) {
	path := writeTrack(t, "song.flac")

	p := newBeepPlayer(Options{})
	err := p.Play(context.Background(), path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Play() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestBeepPlayer_MissingFile(t *testing.T) {
	p := newBeepPlayer(Options{})
	err := p.Play(context.Background(), filepath.Join(t.TempDir(), "gone.wav"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Play() error = %v, want fs.ErrNotExist", err)
	}
}
