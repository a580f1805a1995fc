package offer

import (
	"regexp"
	"strconv"
	"time"
)

// upstream travel times are ISO-8601 duration strings such as "PT5H30M";
// only the hour and minute components are meaningful for display
var durationPattern = regexp.MustCompile(`^P(?:[\dW]*D?)?T?(?:(\d+)H)?(?:(\d+)M)?`)

// ParseISODuration extracts the hour/minute components of an upstream
// duration string. Unrecognised input yields zero.
func ParseISODuration(iso string) time.Duration {
	matches := durationPattern.FindStringSubmatch(iso)
	if matches == nil {
		return 0
	}

	var total time.Duration

	if matches[1] != "" {
		hours, _ := strconv.Atoi(matches[1])
		total += time.Duration(hours) * time.Hour
	}

	if matches[2] != "" {
		minutes, _ := strconv.Atoi(matches[2])
		total += time.Duration(minutes) * time.Minute
	}

	return total
}
