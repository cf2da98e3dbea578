package play

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/gigurra/randplay/cmd/jukebox"
	"github.com/gigurra/randplay/cmd/library"
)

var (
	ErrEmptyLibrary = errors.New("no audio files to play")

	errFileVanished = errors.New("file vanished")
)

// Config is the scheduling configuration, fixed for the lifetime of a Scheduler.
type Config struct {
	Dir           string
	Interval      int // Seconds, at least 1
	Randomization int // Upper bound (exclusive) of the extra random wait in seconds; <= 0 disables it
	Recursive     bool
	Order         bool
	Extensions    []string
	Seed          uint64 // 0 seeds from the clock
}

// Hooks let the caller observe the loop. All fields are optional.
type Hooks struct {
	OnPlayed func(path string, err error)
	OnRescan func(files int)
}

// Scheduler owns the library and cursor and drives playback.
// It is not safe for concurrent use.
type Scheduler struct {
	cfg     Config
	player  jukebox.Player
	library []string
	cursor  int
	rng     *rand.Rand
	hooks   Hooks

	// Seams for tests
	scan   func(root string, opts library.Options) ([]string, error)
	exists func(path string) bool
	sleep  func(ctx context.Context, d time.Duration) error
	stale  func() bool
}

// NewScheduler creates a scheduler. Call Load before Run.
func NewScheduler(cfg Config, player jukebox.Player) *Scheduler {
	if cfg.Interval < 1 {
		cfg.Interval = 1
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Scheduler{
		cfg:    cfg,
		player: player,
		cursor: -1,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		scan:   library.Scan,
		exists: fileExists,
		sleep:  sleepContext,
	}
}

// SetHooks replaces the loop observers.
func (s *Scheduler) SetHooks(hooks Hooks) {
	s.hooks = hooks
}

// SetStaleCheck installs a function polled before every selection.
// When it reports true the library is rescanned.
func (s *Scheduler) SetStaleCheck(stale func() bool) {
	s.stale = stale
}

// Library returns a copy of the current library.
func (s *Scheduler) Library() []string {
	return slices.Clone(s.library)
}

// Load scans the directory and replaces the library.
// On error the current library is left untouched.
func (s *Scheduler) Load() error {
	files, err := s.scan(s.cfg.Dir, library.Options{
		Recursive:  s.cfg.Recursive,
		Extensions: s.cfg.Extensions,
	})
	if err != nil {
		return err
	}

	s.library = files
	if s.hooks.OnRescan != nil {
		s.hooks.OnRescan(len(files))
	}
	return nil
}

// Run waits, selects, verifies and plays until ctx is done or the library is empty.
// Returns nil when ctx is cancelled and ErrEmptyLibrary when nothing is left to play.
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.library) == 0 {
		return ErrEmptyLibrary
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := s.sleep(ctx, s.nextWait()); err != nil {
			return nil
		}

		if err := s.step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// nextWait returns the base interval plus a uniform draw from [0, randomization).
func (s *Scheduler) nextWait() time.Duration {
	secs := s.cfg.Interval
	if s.cfg.Randomization > 0 {
		secs += s.rng.IntN(s.cfg.Randomization)
	}
	return time.Duration(secs) * time.Second
}

// step runs one SELECT, VERIFY, PLAY cycle.
func (s *Scheduler) step(ctx context.Context) error {
	if s.stale != nil && s.stale() {
		slog.Debug("directory changed, regenerating list", "dir", s.cfg.Dir)
		if err := s.Load(); err != nil {
			slog.Warn("rescan failed, keeping current list", "dir", s.cfg.Dir, "error", err)
		}
	}

	index, err := s.pick()
	if err != nil {
		if errors.Is(err, errFileVanished) {
			slog.Warn("skipping playback, selected file vanished after rescan", "error", err)
			return nil
		}
		return err
	}

	path := s.library[index]
	slog.Debug("next file to play", "path", path)

	err = s.player.Play(ctx, path)
	if s.hooks.OnPlayed != nil {
		s.hooks.OnPlayed(path, err)
	}
	if err == nil || ctx.Err() != nil {
		return nil
	}

	slog.Warn("a problem occurred while playing the file, removing it", "path", path, "error", err)
	s.remove(index)
	if len(s.library) == 0 {
		return ErrEmptyLibrary
	}
	return nil
}

// pick selects the next index and makes sure its file still exists.
// A vanished file triggers a rescan followed by a fresh selection.
func (s *Scheduler) pick() (int, error) {
	index, err := s.selectNext()
	if err != nil {
		return 0, err
	}
	if s.exists(s.library[index]) {
		return index, nil
	}

	vanished := s.library[index]
	slog.Debug("file no longer exists, regenerating list", "path", vanished)
	if err := s.Load(); err != nil {
		slog.Warn("rescan failed, dropping vanished file", "dir", s.cfg.Dir, "error", err)
		s.remove(index)
	} else if s.cfg.Order {
		// Re-select the slot the vanished file occupied
		s.cursor--
	}

	index, err = s.selectNext()
	if err != nil {
		return 0, err
	}
	if !s.exists(s.library[index]) {
		return 0, fmt.Errorf("%s: %w", s.library[index], errFileVanished)
	}
	return index, nil
}

// selectNext advances the cursor: cyclically in order mode, uniformly at random otherwise.
func (s *Scheduler) selectNext() (int, error) {
	if len(s.library) == 0 {
		return 0, ErrEmptyLibrary
	}

	if s.cfg.Order {
		if s.cursor < len(s.library)-1 {
			s.cursor++
		} else {
			s.cursor = 0
		}
	} else {
		s.cursor = s.rng.IntN(len(s.library))
	}
	return s.cursor, nil
}

// remove drops the entry at index. In order mode the cursor steps back so
// the entry that moved into this slot is played next.
func (s *Scheduler) remove(index int) {
	s.library = slices.Delete(s.library, index, index+1)
	if s.cfg.Order && s.cursor >= index {
		s.cursor--
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
