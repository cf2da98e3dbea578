package play

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gigurra/randplay/cmd/common"
	"github.com/gigurra/randplay/cmd/common/config"
	"github.com/gigurra/randplay/cmd/jukebox"
	"github.com/gigurra/randplay/cmd/library"
)

var ErrInvalidArguments = errors.New("invalid arguments")

const (
	optionRecursive = "recursive"
	optionOrder     = "order"
)

// Settings is everything a playback session needs, resolved from the
// command line and the config file.
type Settings struct {
	Config

	Backend        jukebox.Backend
	PlayerCommand  []string
	MaxTrackLength time.Duration

	Watch          bool
	Notify         bool
	NotifyCooldown time.Duration
	Progress       bool
	Verbose        bool
}

// ParseSettings validates params and merges them over cfg. Flags win over the file.
func ParseSettings(params *Params, cfg *config.Config) (Settings, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if params.Directory == "" || params.Interval == "" || params.Randomization == "" {
		return Settings{}, fmt.Errorf("%w: expected <directory> <interval> <randomization>", ErrInvalidArguments)
	}

	interval, err := common.ParseSeconds(params.Interval)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: interval: %v", ErrInvalidArguments, err)
	}
	if interval < 0 {
		return Settings{}, fmt.Errorf("%w: interval can't be negative", ErrInvalidArguments)
	}
	if interval == 0 {
		interval = 1
	}

	randomization, err := common.ParseSeconds(params.Randomization)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: randomization: %v", ErrInvalidArguments, err)
	}
	if randomization < 0 {
		randomization = 0
	}

	s := Settings{
		Config: Config{
			Dir:           params.Directory,
			Interval:      interval,
			Randomization: randomization,
			Seed:          uint64(params.Seed),
		},
		Watch:   params.Watch,
		Verbose: params.Verbose,
	}

	for _, opt := range params.Options {
		switch strings.ToLower(opt) {
		case optionRecursive:
			s.Recursive = true
		case optionOrder:
			s.Order = true
		default:
			return Settings{}, fmt.Errorf("%w: no option '%s'", ErrInvalidArguments, opt)
		}
	}

	s.Extensions = cfg.Extensions
	if len(params.Ext) > 0 {
		s.Extensions = params.Ext
	}
	s.Extensions = library.NormalizeExtensions(s.Extensions)

	backend := cfg.Backend
	if params.Backend != "" {
		backend = params.Backend
	}
	switch jukebox.Backend(backend) {
	case jukebox.BackendAuto, jukebox.BackendBeep, jukebox.BackendExec:
		s.Backend = jukebox.Backend(backend)
	case "":
		s.Backend = jukebox.BackendAuto
	default:
		return Settings{}, fmt.Errorf("%w: unknown backend '%s' (auto, beep, exec)", ErrInvalidArguments, backend)
	}

	s.PlayerCommand = cfg.PlayerCommand
	if params.PlayerCmd != "" {
		s.PlayerCommand = strings.Fields(params.PlayerCmd)
	}
	s.MaxTrackLength = time.Duration(cfg.MaxTrackSeconds) * time.Second

	s.Progress = params.Progress || cfg.Progress
	if cfg.Notifications != nil {
		s.Notify = cfg.Notifications.Enabled
		s.NotifyCooldown = time.Duration(cfg.Notifications.CooldownSeconds) * time.Second
	}
	s.Notify = s.Notify || params.Notify

	return s, nil
}
