package util

import (
	"fmt"
	"strconv"
	"time"
)

// ParseDuration parses either a bare number of minutes ("90") or a Go
// duration string ("1h30m").
func ParseDuration(input string) (time.Duration, error) {
	if minutes, err := strconv.Atoi(input); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s\n\nValid formats:\n"+
			"• minutes: 90\n"+
			"• duration: 1h30m, 45m, 2h", input)
	}
	return duration, nil
}
