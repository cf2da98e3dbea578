package jukebox

import (
	"path/filepath"
	"testing"
)

func TestReadTrack_FallsBackToFileName(t *testing.T) {
	path := writeTrack(t, "Morning Birds.wav")

	track := ReadTrack(path)
	if track.Name != "Morning Birds" {
		t.Errorf("Name = %q, want %q", track.Name, "Morning Birds")
	}
	if track.DisplayName() != "Morning Birds" {
		t.Errorf("DisplayName() = %q, want %q", track.DisplayName(), "Morning Birds")
	}
	if track.Size != int64(len("not really audio")) {
		t.Errorf("Size = %d, want %d", track.Size, len("not really audio"))
	}
}

func TestReadTrack_MissingFile(t *testing.T) {
	track := ReadTrack(filepath.Join(t.TempDir(), "gone.wav"))
	if track.Name != "gone" {
		t.Errorf("Name = %q, want %q", track.Name, "gone")
	}
	if track.Size != 0 {
		t.Errorf("Size = %d, want 0", track.Size)
	}
}

func TestTrack_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		track    Track
		expected string
	}{
		{"artist and title", Track{Name: "01", Title: "Song", Artist: "Band"}, "Band - Song"},
		{"title only", Track{Name: "01", Title: "Song"}, "Song"},
		{"artist only", Track{Name: "01", Artist: "Band"}, "01"},
		{"nothing", Track{Name: "01"}, "01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.DisplayName(); got != tt.expected {
				t.Errorf("DisplayName() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
