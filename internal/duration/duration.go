package duration

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// compactPattern accepts "2h30m", "2h 30m", "45m", "3h" and the ISO-8601
// time form "PT2H30M". Case-insensitive.
var compactPattern = regexp.MustCompile(`(?i)^\s*(?:PT)?(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?\s*$`)

// ParseCompact returns the total minutes of a compact hours/minutes string.
// ok is false when the string is empty, does not match, or carries neither
// an hour nor a minute component, or when the total does not fit in an int.
func ParseCompact(s string) (minutes int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	matches := compactPattern.FindStringSubmatch(s)
	if matches == nil || (matches[1] == "" && matches[2] == "") {
		return 0, false
	}

	var hours, mins int
	if matches[1] != "" {
		v, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, false
		}
		hours = v
	}
	if matches[2] != "" {
		v, err := strconv.Atoi(matches[2])
		if err != nil {
			return 0, false
		}
		mins = v
	}

	if hours > (math.MaxInt-mins)/60 {
		return 0, false
	}

	return hours*60 + mins, true
}
