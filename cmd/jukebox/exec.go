package jukebox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/GiGurra/cmder"
)

// knownPlayers are tried in order when no command is configured.
var knownPlayers = [][]string{
	{"afplay"},      // macOS
	{"paplay"},      // Linux with PulseAudio
	{"pw-play"},     // Linux with PipeWire
	{"aplay", "-q"}, // Linux with ALSA
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "error"},
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// execPlayer plays files by running an external command per track.
type execPlayer struct {
	command []string
	opts    Options
}

func newExecPlayer(opts Options) (*execPlayer, error) {
	command := opts.Command
	if len(command) == 0 {
		detected, err := detectPlayer()
		if err != nil {
			return nil, err
		}
		command = detected
	}
	return &execPlayer{command: command, opts: opts}, nil
}

func detectPlayer() ([]string, error) {
	for _, candidate := range knownPlayers {
		if _, err := lookPath(candidate[0]); err == nil {
			return candidate, nil
		}
	}
	return nil, ErrNoPlayerCommand
}

// Args returns the full command line used to play path.
func (p *execPlayer) Args(path string) []string {
	args := make([]string, 0, len(p.command)+1)
	substituted := false
	for _, arg := range p.command {
		if strings.Contains(arg, "{file}") {
			arg = strings.ReplaceAll(arg, "{file}", path)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, path)
	}
	return args
}

func (p *execPlayer) Play(ctx context.Context, path string) error {
	// Surface I/O errors the same way the in-process backend does
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	_ = f.Close()

	p.opts.OnStart(path, 0)

	result := cmder.New(p.Args(path)...).
		WithAttemptTimeout(p.opts.MaxTrackLength).
		Run(ctx)
	if result.Err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var execErr *exec.Error
		if errors.As(result.Err, &execErr) {
			return fmt.Errorf("%w: %v", ErrDeviceUnavailable, result.Err)
		}
		return fmt.Errorf("%s failed on %s: %w: %s",
			p.command[0], filepath.Base(path), result.Err, strings.TrimSpace(result.Combined))
	}
	return nil
}

func (p *execPlayer) Close() error {
	return nil
}
