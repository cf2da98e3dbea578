package scan

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigurra/randplay/cmd/jukebox"
	"github.com/gigurra/randplay/cmd/library"
)

func setupLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.wav":          "aaaa",
		"b.WAV":          "bb",
		"notes.txt":      "skip me",
		"sub/c.wav":      "c",
		"sub/d.mp3":      "d",
		"sub/deep/e.wav": "e",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
	return dir
}

func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.yaml")
}

func TestRun_Paths(t *testing.T) {
	dir := setupLibrary(t)

	var buf bytes.Buffer
	if err := Run(&Params{Directory: dir, Paths: true, Config: noConfig(t)}, &buf); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(lines), lines)
	}
	for _, line := range lines {
		if filepath.Dir(line) != dir {
			t.Errorf("non-recursive scan returned %s", line)
		}
	}
}

func TestRun_RecursiveWithExtensions(t *testing.T) {
	dir := setupLibrary(t)

	var buf bytes.Buffer
	err := Run(&Params{Directory: dir, Recursive: true, Ext: []string{"wav", "mp3"}, Paths: true, Config: noConfig(t)}, &buf)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Errorf("expected 5 files, got %d: %v", len(lines), lines)
	}
}

func TestRun_Table(t *testing.T) {
	dir := setupLibrary(t)

	var buf bytes.Buffer
	if err := Run(&Params{Directory: dir, Recursive: true, Config: noConfig(t)}, &buf); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"FILE", "a.wav", filepath.Join("sub", "deep", "e.wav"), "4 files", "8B"} {
		if !strings.Contains(output, want) {
			t.Errorf("table missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "d.mp3") {
		t.Errorf("table should not list mp3 files with default extensions:\n%s", output)
	}
}

func TestRun_JSON(t *testing.T) {
	dir := setupLibrary(t)

	var buf bytes.Buffer
	if err := Run(&Params{Directory: dir, JSON: true, Config: noConfig(t)}, &buf); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var tracks []jukebox.Track
	if err := json.Unmarshal(buf.Bytes(), &tracks); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].Name != "a" || tracks[0].Size != 4 {
		t.Errorf("first track = %+v", tracks[0])
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	if err := Run(&Params{Directory: dir, Config: noConfig(t)}, &buf); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "No audio files found") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	var buf bytes.Buffer
	err := Run(&Params{Directory: filepath.Join(t.TempDir(), "nope"), Config: noConfig(t)}, &buf)
	if !errors.Is(err, library.ErrDirectoryNotFound) {
		t.Errorf("expected ErrDirectoryNotFound, got %v", err)
	}
}

func TestCmd_Help(t *testing.T) {
	cmd := Cmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	for _, want := range []string{"--recursive", "--paths", "--json"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("help missing %q:\n%s", want, buf.String())
		}
	}
}
