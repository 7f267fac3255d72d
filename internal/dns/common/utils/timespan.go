package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// spanPattern matches a time-span string: an integer followed by a unit
// suffix s/m/h/d/w, with optional surrounding whitespace.
var spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([smhdw])\s*$`)

var spanUnits = map[string]uint32{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
	"w": 604800,
}

// Seconds resolves a duration value to whole seconds. Plain decimal
// strings parse as seconds; span strings like "2h" or "30m" are scaled by
// their unit. Anything else yields (0, false), leaving the original
// string with the caller to decide how to treat it.
func Seconds(value string) (uint32, bool) {
	if m := spanPattern.FindStringSubmatch(value); m != nil {
		n, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			return 0, false
		}
		return uint32(n) * spanUnits[m[2]], true
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// SerialNow is the magic serial value resolved to the current UNIX time.
const SerialNow = "now"

// Serial resolves a zone serial value. "now" becomes the current UNIX
// seconds at the supplied instant; anything else must be a decimal u32.
func Serial(value string, now time.Time) (uint32, bool) {
	if strings.TrimSpace(value) == SerialNow {
		return uint32(now.Unix()), true
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
