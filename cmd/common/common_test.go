package common

import (
	"errors"
	"testing"
)

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"0", 0},
		{"5", 5},
		{"  5  ", 5},
		{"0.1", 1},
		{"1.5", 2},
		{"2.0", 2},
		{"-0.5", 0},
		{"-3", -3},
		{"1e1", 10},
	}

	for _, tt := range tests {
		result, err := ParseSeconds(tt.input)
		if err != nil {
			t.Errorf("ParseSeconds(%q) returned error: %v", tt.input, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ParseSeconds(%q) = %d, want %d", tt.input, result, tt.expected)
		}
	}
}

func TestParseSeconds_Invalid(t *testing.T) {
	tests := []string{
		"",
		"abc",
		"5s",
		"NaN",
		"Inf",
		"1e300",
	}

	for _, tt := range tests {
		_, err := ParseSeconds(tt)
		if !errors.Is(err, ErrInvalidSeconds) {
			t.Errorf("ParseSeconds(%q) error = %v, want ErrInvalidSeconds", tt, err)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{KB, "1.0K"},
		{1536, "1.5K"},
		{10 * MB, "10.0M"},
		{2 * GB, "2.0G"},
		{TB, "1.0T"},
	}

	for _, tt := range tests {
		if result := FormatSize(tt.input); result != tt.expected {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestConfigDir_Override(t *testing.T) {
	t.Setenv("RANDPLAY_HOME", "/tmp/randplay-test")
	if got := ConfigDir(); got != "/tmp/randplay-test" {
		t.Errorf("ConfigDir() = %q, want %q", got, "/tmp/randplay-test")
	}
}
