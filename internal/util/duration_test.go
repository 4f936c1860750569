package util

import (
	"strings"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  time.Duration
		wantError bool
	}{
		{name: "bare minutes", input: "90", expected: 90 * time.Minute},
		{name: "bare zero", input: "0", expected: 0},
		{name: "full day in minutes", input: "1440", expected: 24 * time.Hour},
		{name: "hours", input: "8h", expected: 8 * time.Hour},
		{name: "hours and minutes", input: "1h30m", expected: 90 * time.Minute},
		{name: "seconds are kept", input: "1h0m30s", expected: time.Hour + 30*time.Second},
		{name: "letters", input: "abc", wantError: true},
		{name: "unknown unit", input: "2x30m", wantError: true},
		{name: "empty", input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)

			if tt.wantError {
				if err == nil {
					t.Fatalf("ParseDuration(%q) expected error but got none", tt.input)
				}
				if !strings.Contains(err.Error(), "Valid formats") {
					t.Errorf("ParseDuration(%q) error should contain format help, got: %v", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDuration(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
