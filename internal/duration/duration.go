package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseSeconds converts a Jira-style duration string like "2d", "1h 30m" or
// "45m" into seconds. Units follow Jira's defaults: a day is 8 hours.
// Unrecognized parts contribute nothing.
func ParseSeconds(input string) int {
	s := strings.ToLower(strings.TrimSpace(input))

	totalSeconds := 0

	if strings.Contains(s, "w") {
		parts := strings.SplitN(s, "w", 2)
		weeks, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err == nil {
			totalSeconds += int(weeks * 5 * 8 * 3600)
		}
		s = rest(parts)
	}

	if strings.Contains(s, "d") {
		parts := strings.SplitN(s, "d", 2)
		days, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err == nil {
			totalSeconds += int(days * 8 * 3600)
		}
		s = rest(parts)
	}

	if strings.Contains(s, "h") {
		parts := strings.SplitN(s, "h", 2)
		hours, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err == nil {
			totalSeconds += int(hours * 3600)
		}
		s = rest(parts)
	}

	if strings.Contains(s, "m") {
		parts := strings.SplitN(s, "m", 2)
		minutes, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err == nil {
			totalSeconds += int(minutes * 60)
		}
	}

	return totalSeconds
}

func rest(parts []string) string {
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}

// FromElapsed converts a wall-clock timer reading into a Jira duration
// string. The elapsed time is rounded to the nearest whole minute with a
// floor of one minute, so a short timer run never produces "0m".
func FromElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(math.Round(d.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%dm", minutes)
}

// Minutes reports the whole-minute value FromElapsed would render.
func Minutes(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	minutes := int(math.Round(d.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// FormatSeconds renders a second count as "2h 30m" for display.
func FormatSeconds(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
