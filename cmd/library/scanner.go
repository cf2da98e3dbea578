// Package library discovers playable audio files on disk.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrDirectoryNotFound = errors.New("directory not found")
)

// DefaultExtensions are the file suffixes considered audio when none are configured.
var DefaultExtensions = []string{".wav"}

// Options controls how a directory is scanned.
type Options struct {
	Recursive  bool
	Extensions []string // Matched case-insensitively against the file name. Empty means DefaultExtensions.
}

// NormalizeExtensions lowercases extensions, adds a missing leading dot and drops duplicates.
func NormalizeExtensions(exts []string) []string {
	normalized := lo.FilterMap(exts, func(ext string, _ int) (string, bool) {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return "", false
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return ext, true
	})
	if len(normalized) == 0 {
		return DefaultExtensions
	}
	return lo.Uniq(normalized)
}

// HasAudioExtension reports whether name ends in one of exts.
// exts must already be normalized.
func HasAudioExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	return lo.SomeBy(exts, func(ext string) bool {
		return strings.HasSuffix(lower, ext)
	})
}

// Scan returns the audio files in root, in directory listing order.
// Subdirectories are descended into depth-first when opts.Recursive is set.
// Each call builds a fresh slice from the current state of the filesystem.
func Scan(root string, opts Options) ([]string, error) {
	st, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", root, ErrDirectoryNotFound)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, ErrDirectoryNotFound)
	}

	files, err := scanDir(root, opts.Recursive, NormalizeExtensions(opts.Extensions))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}
	return files, nil
}

func scanDir(dir string, recursive bool, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Stat follows symlinks and catches entries removed since the listing
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Warn("file vanished during scan", "path", path)
			} else {
				slog.Warn("failed to inspect file", "path", path, "error", err)
			}
			continue
		}

		if info.IsDir() {
			if !recursive {
				continue
			}
			sub, err := scanDir(path, true, exts)
			if err != nil {
				switch {
				case errors.Is(err, fs.ErrPermission):
					slog.Debug("skipping unreadable directory", "path", path)
				case errors.Is(err, fs.ErrNotExist):
					slog.Warn("directory vanished during scan", "path", path)
				default:
					slog.Warn("skipping directory", "path", path, "error", err)
				}
				continue
			}
			slog.Debug("added directory", "path", path, "files", len(sub))
			files = append(files, sub...)
			continue
		}

		if !info.Mode().IsRegular() || !HasAudioExtension(entry.Name(), exts) {
			continue
		}

		slog.Debug("added file", "path", path)
		files = append(files, path)
	}

	return files, nil
}
