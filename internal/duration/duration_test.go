package duration

import (
	"testing"
	"time"
)

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2h", 7200},
		{"30m", 1800},
		{"2h 30m", 9000},
		{"1.5h", 5400},
		{"1d", 28800},
		{"2d 1h", 61200},
		{"1w", 144000},
		{"45m", 2700},
		{"0h", 0},
		{"", 0},
		{"  2h  30m  ", 9000},
		{"1H 15M", 4500},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseSeconds(tt.input)
			if got != tt.want {
				t.Errorf("ParseSeconds(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromElapsed(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"rounds down", 125 * time.Second, "2m"},
		{"rounds up", 150 * time.Second, "3m"},
		{"floors at one minute", 10 * time.Second, "1m"},
		{"zero floors at one minute", 0, "1m"},
		{"negative clamps", -5 * time.Second, "1m"},
		{"exact", 45 * time.Minute, "45m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromElapsed(tt.elapsed)
			if got != tt.want {
				t.Errorf("FromElapsed(%v) = %q, want %q", tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0m"},
		{1800, "30m"},
		{3600, "1h 0m"},
		{9000, "2h 30m"},
		{-10, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatSeconds(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatSeconds(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
