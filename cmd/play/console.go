package play

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/randplay/cmd/jukebox"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true)
	playingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// console writes operator-facing lines. Diagnostics go through slog instead.
type console struct {
	out          io.Writer
	styled       bool
	showProgress bool

	stopProgress func()
}

func newConsole(out io.Writer, progress bool) *console {
	tty := isTerminal(out)
	return &console{
		out:          out,
		styled:       tty,
		showProgress: progress && tty,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *console) render(style lipgloss.Style, s string) string {
	if !c.styled {
		return s
	}
	return style.Render(s)
}

func (c *console) banner(version string) {
	line := "randplay"
	if version != "" {
		line += " " + version
	}
	_, _ = fmt.Fprintln(c.out, c.render(bannerStyle, line))
}

func (c *console) loading(dir string, recursive bool) {
	suffix := ""
	if recursive {
		suffix = " and its subdirectories"
	}
	_, _ = fmt.Fprintf(c.out, "Loading files from directory %s%s\n", dir, suffix)
}

func (c *console) loaded(count int) {
	_, _ = fmt.Fprintf(c.out, "%d files loaded!\n", count)
}

func (c *console) playing(track *jukebox.Track, length time.Duration) {
	line := "Playing " + filepath.Base(track.Path)
	if name := track.DisplayName(); name != track.Name {
		line += c.render(dimStyle, " ("+name+")")
	}
	if length > 0 {
		line += c.render(dimStyle, fmt.Sprintf(" [%s]", length.Round(time.Second)))
	}
	if c.styled {
		line = playingStyle.Render("▶ ") + line
	}
	_, _ = fmt.Fprintln(c.out, line)

	c.startProgress(track.DisplayName(), length)
}

// startProgress draws a bar sized to length until finished is called.
func (c *console) startProgress(name string, length time.Duration) {
	c.finished()
	if !c.showProgress || length <= 0 {
		return
	}

	total := length.Milliseconds()
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(name),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)

	stop := make(chan struct{})
	done := make(chan struct{})
	start := time.Now()
	go func() {
		defer close(done)
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Set64(min(time.Since(start).Milliseconds(), total))
			}
		}
	}()

	c.stopProgress = func() {
		close(stop)
		<-done
		_ = bar.Finish()
	}
}

// finished tears down the progress bar of the current track, if any.
func (c *console) finished() {
	if c.stopProgress != nil {
		c.stopProgress()
		c.stopProgress = nil
	}
}
