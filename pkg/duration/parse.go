// Package duration parses schedule intervals and timeouts from configuration values.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Calendar units accepted on top of the standard Go units.
const (
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 30 * Day  // approximate
	Year  = 365 * Day // approximate
)

var calendarUnits = map[string]time.Duration{
	"d": Day,
	"w": Week,
	"M": Month, // capital M, lowercase m stays minutes
	"y": Year,
}

var calendarPattern = regexp.MustCompile(`(\d+)([dwMy])`)

// Parse reads an interval setting:
//
//	Parse("3600")   // bare integer: seconds
//	Parse("6h")     // Go duration
//	Parse("1d12h")  // calendar units d, w, M, y, optionally mixed with Go units
//
// Negative values are rejected.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration string")
	}

	if seconds, err := strconv.ParseInt(s, 10, 64); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	total, rest, err := splitCalendar(s)
	if err != nil {
		return 0, err
	}
	if rest != "" {
		d, err := time.ParseDuration(rest)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w (units: s, m, h, d, w, M, y or plain seconds)", s, err)
		}
		total += d
	}

	if total < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return total, nil
}

// Seconds parses a plain count of seconds, also accepting any form Parse does.
// An empty value yields def.
func Seconds(s string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return Parse(s)
}

// splitCalendar sums the calendar components of s and returns what is left for time.ParseDuration.
func splitCalendar(s string) (time.Duration, string, error) {
	var total time.Duration
	for _, match := range calendarPattern.FindAllStringSubmatch(s, -1) {
		value, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q in %q", match[1], s)
		}
		total += time.Duration(value) * calendarUnits[match[2]]
	}
	return total, strings.TrimSpace(calendarPattern.ReplaceAllString(s, "")), nil
}
