package configure

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigurra/randplay/cmd/common/config"
)

func TestInit_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	var buf bytes.Buffer
	if err := Init(&InitParams{Path: path}, &buf); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if !strings.Contains(buf.String(), path) {
		t.Errorf("output should name the written file: %q", buf.String())
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend != "auto" || len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".wav" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: exec\n"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	var buf bytes.Buffer
	err := Init(&InitParams{Path: path}, &buf)
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}

	if err := Init(&InitParams{Path: path, Force: true}, &buf); err != nil {
		t.Fatalf("Init with force returned error: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend != "auto" {
		t.Errorf("Backend = %q, want overwritten default", cfg.Backend)
	}
}

func TestShow_IncludesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: exec\nplayer_command: [aplay, -q]\n"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	var buf bytes.Buffer
	if err := Show(&ShowParams{Path: path}, &buf); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"backend: exec", "- aplay", "- .wav", "cooldown_seconds: 10"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestCmd_InitHelp(t *testing.T) {
	cmd := Cmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"init", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "--force") {
		t.Errorf("help missing --force:\n%s", buf.String())
	}
}
