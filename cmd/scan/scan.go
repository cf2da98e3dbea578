package scan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/randplay/cmd/common"
	"github.com/gigurra/randplay/cmd/common/config"
	"github.com/gigurra/randplay/cmd/jukebox"
	"github.com/gigurra/randplay/cmd/library"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Directory string   `pos:"true" help:"Directory to scan."`
	Recursive bool     `short:"r" help:"Include subdirectories."`
	Ext       []string `short:"e" optional:"true" help:"File extensions to include (repeatable). Defaults to the config file or .wav."`
	Config    string   `short:"c" optional:"true" help:"Path to the config file."`
	Paths     bool     `help:"Print one path per line instead of a table."`
	JSON      bool     `short:"j" help:"Output as JSON."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "scan",
		Short:       "List the files that would be played",
		Long:        "Scan a directory with the same rules as playback and list the matching files with their tags and sizes.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "scan: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdout io.Writer) error {
	cfg, err := config.Load(params.Config)
	if err != nil {
		return err
	}

	exts := cfg.Extensions
	if len(params.Ext) > 0 {
		exts = params.Ext
	}

	files, err := library.Scan(params.Directory, library.Options{
		Recursive:  params.Recursive,
		Extensions: exts,
	})
	if err != nil {
		return err
	}

	if params.Paths {
		for _, f := range files {
			_, _ = fmt.Fprintln(stdout, f)
		}
		return nil
	}

	tracks := lo.Map(files, func(f string, _ int) *jukebox.Track {
		return jukebox.ReadTrack(f)
	})

	if params.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tracks)
	}

	if len(tracks) == 0 {
		_, _ = fmt.Fprintf(stdout, "No audio files found in %s\n", params.Directory)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.SetAllowedRowLength(termWidth())
	t.AppendHeader(table.Row{"#", "File", "Title", "Size"})

	for i, track := range tracks {
		t.AppendRow(table.Row{
			i + 1,
			relativePath(params.Directory, track.Path),
			track.DisplayName(),
			common.FormatSize(track.Size),
		})
	}

	total := lo.SumBy(tracks, func(track *jukebox.Track) int64 { return track.Size })
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d files", len(tracks)), "", common.FormatSize(total)})
	t.Render()

	return nil
}

func relativePath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

func termWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 120
}
