package util

import (
	"fmt"
	"strings"
	"time"
)

// ParseClock parses a wall-clock time of day in either 12-hour or 24-hour format
// and returns its hour and minute.
// Supported formats:
// - 24-hour: "HH:MM" (e.g., "18:00", "09:45")
// - 12-hour: "HH:MM[AM|PM]" (e.g., "6:00PM", "09:45 AM")
func ParseClock(clock string) (hour, minute int, err error) {
	clock = strings.TrimSpace(strings.ToUpper(clock))

	if t, err := time.Parse("15:04", clock); err == nil {
		return t.Hour(), t.Minute(), nil
	}

	formats := []string{"3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}
	for _, format := range formats {
		if t, err := time.Parse(format, clock); err == nil {
			return t.Hour(), t.Minute(), nil
		}
	}

	return 0, 0, fmt.Errorf("invalid time format: %s\n\nValid formats:\n"+
		"• 24-hour format: HH:MM (e.g., '18:00', '09:45')\n"+
		"• 12-hour format: HH:MM[AM|PM] (e.g., '6:00PM', '9:45 AM')", clock)
}
