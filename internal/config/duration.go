package config

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

var durationUnits = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// ParseDuration parses a duration string in the format "<number><unit>" where unit can be:
// - s: seconds
// - m: minutes
// - h: hours
// - d: days
//
// Anything else is handed to time.ParseDuration, so "1h30m" works too.
// Negative durations and values that do not fit in a time.Duration are
// rejected.
func ParseDuration(input string) (time.Duration, error) {
	if len(input) < 2 {
		return 0, fmt.Errorf("invalid input format")
	}

	unit := input[len(input)-1:]
	value, err := strconv.ParseInt(input[:len(input)-1], 10, 64)
	if err != nil {
		d, perr := time.ParseDuration(input)
		if perr != nil {
			return 0, fmt.Errorf("invalid duration: %s", input)
		}
		if d < 0 {
			return 0, fmt.Errorf("negative duration: %s", input)
		}
		return d, nil
	}
	if value < 0 {
		return 0, fmt.Errorf("negative duration: %s", input)
	}

	scale, ok := durationUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown time unit: %s", unit)
	}
	if value > math.MaxInt64/int64(scale) {
		return 0, fmt.Errorf("duration out of range: %s", input)
	}
	return time.Duration(value) * scale, nil
}
