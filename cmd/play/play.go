package play

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/randplay/cmd/common"
	"github.com/gigurra/randplay/cmd/common/config"
	"github.com/gigurra/randplay/cmd/common/notify"
	"github.com/gigurra/randplay/cmd/jukebox"
	"github.com/gigurra/randplay/cmd/library"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type Params struct {
	Directory     string   `pos:"true" optional:"true" help:"Directory containing the audio files."`
	Interval      string   `pos:"true" optional:"true" help:"Base wait between plays in seconds. Fractions round up, 0 becomes 1."`
	Randomization string   `pos:"true" optional:"true" help:"Upper bound of the extra random wait in seconds. 0 disables it."`
	Options       []string `pos:"true" optional:"true" help:"Any of: recursive, order."`

	Ext       []string `short:"e" optional:"true" help:"File extensions to play (repeatable). Defaults to the config file or .wav."`
	Backend   string   `short:"b" optional:"true" help:"Playback backend: auto, beep or exec."`
	PlayerCmd string   `optional:"true" help:"External player command for the exec backend. {file} is replaced by the path."`
	Config    string   `short:"c" optional:"true" help:"Path to the config file."`
	Watch     bool     `short:"w" help:"Watch the directory and rescan when files are added or removed."`
	Notify    bool     `short:"n" help:"Show a desktop notification when a file starts playing."`
	Progress  bool     `help:"Show a progress bar while a file plays."`
	Seed      int64    `optional:"true" help:"Random seed. 0 seeds from the clock." default:"0"`
	Verbose   bool     `short:"v" help:"Enable debug logging."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "randplay",
		Short: "Play audio files from a directory at random intervals",
		Long: `Scan a directory for audio files and play one every <interval> seconds,
plus a random extra wait below <randomization> seconds.

Options:
  recursive  also load files from subdirectories
  order      play files in sorted order instead of at random

Files that disappear trigger a rescan. Files that fail to play are dropped.
Stop with Ctrl+C.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			cfg, err := config.Load(params.Config)
			if err != nil {
				fmt.Fprintf(os.Stderr, "randplay: %v\n", err)
				os.Exit(1)
			}

			settings, err := ParseSettings(params, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "randplay: %v\n", err)
				_, _ = fmt.Fprint(os.Stdout, cmd.UsageString())
				os.Exit(2)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := Run(ctx, settings, cmd.Root().Version, os.Stdout); err != nil {
				stop()
				fmt.Fprintf(os.Stderr, "randplay: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("session", uuid.NewString()))
}

// Run loads the library and plays until ctx is cancelled.
// A cancelled session returns nil.
func Run(ctx context.Context, settings Settings, version string, stdout io.Writer) error {
	configureLogging(settings.Verbose)

	out := newConsole(stdout, settings.Progress)
	defer out.finished()

	out.banner(version)
	out.loading(settings.Dir, settings.Recursive)

	sched := NewScheduler(settings.Config, nil)
	if err := sched.Load(); err != nil {
		return err
	}
	files := len(sched.Library())
	if files == 0 {
		return fmt.Errorf("given folder %s is empty: %w", settings.Dir, ErrEmptyLibrary)
	}
	out.loaded(files)

	var notifier *notify.Notifier
	if settings.Notify {
		notifier = notify.New(settings.NotifyCooldown)
	}

	player, err := jukebox.New(jukebox.Options{
		Backend:        settings.Backend,
		Command:        settings.PlayerCommand,
		MaxTrackLength: settings.MaxTrackLength,
		OnStart: func(path string, length time.Duration) {
			track := jukebox.ReadTrack(path)
			out.playing(track, length)
			notifier.Notify("randplay", track.DisplayName())
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := player.Close(); err != nil {
			slog.Debug("failed to close player", "error", err)
		}
	}()
	sched.player = player

	sched.SetHooks(Hooks{
		OnPlayed: func(path string, err error) {
			out.finished()
		},
		OnRescan: func(files int) {
			slog.Debug("library rescanned", "dir", settings.Dir, "files", files)
		},
	})

	if settings.Watch {
		w, err := library.NewWatcher(settings.Dir, library.Options{
			Recursive:  settings.Recursive,
			Extensions: settings.Extensions,
		})
		if err != nil {
			slog.Warn("could not watch directory, relying on rescans", "dir", settings.Dir, "error", err)
		} else {
			w.Start(ctx)
			sched.SetStaleCheck(w.Stale)
			slog.Debug("watching directory", "dir", settings.Dir, "dirs", w.WatchedDirs())
		}
	}

	err = sched.Run(ctx)
	if errors.Is(err, ErrEmptyLibrary) {
		return fmt.Errorf("every file in %s failed to play: %w", settings.Dir, err)
	}
	return err
}
