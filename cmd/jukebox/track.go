package jukebox

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Track describes an audio file for display.
type Track struct {
	Path   string `json:"path"`             // File path as found by the scanner
	Name   string `json:"name"`             // Display name (filename without extension)
	Title  string `json:"title,omitempty"`  // Tag title, if any
	Artist string `json:"artist,omitempty"` // Tag artist, if any
	Size   int64  `json:"size"`             // Size in bytes
}

// ReadTrack collects display information for path. Missing or unparseable
// tags are not an error; the file name is used instead.
func ReadTrack(path string) *Track {
	track := &Track{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	file, err := os.Open(path)
	if err != nil {
		slog.Debug("could not open track for metadata", "path", path, "error", err)
		return track
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil {
		track.Size = info.Size()
	}

	meta, err := tag.ReadFrom(file)
	if err != nil {
		slog.Debug("no tag metadata", "path", path, "error", err)
		return track
	}

	track.Title = strings.TrimSpace(meta.Title())
	track.Artist = strings.TrimSpace(meta.Artist())
	return track
}

// DisplayName returns "Artist - Title", the title alone, or the file name.
func (t *Track) DisplayName() string {
	switch {
	case t.Title != "" && t.Artist != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Name
	}
}
