package xtime

import (
	"fmt"
	"time"
	"unicode"
)

// ParseDuration converts a string with a time format into Seconds. The
// accepted format is digits followed optionally by whitespace and a unit:
// s/m/h/d, singular or plural, or the full word ("2 seconds", "2second",
// "2 s"). Processing stops at the first non-digit character; no unit
// character at all means seconds. An empty string is zero.
func ParseDuration(s string) (Seconds, error) {
	var seconds int64
	for _, c := range s {
		if unicode.IsDigit(c) {
			seconds = seconds*10 + int64(c-'0')
			continue
		}
		if unicode.IsSpace(c) {
			continue
		}
		mult, err := unitSeconds(c)
		if err != nil {
			return 0, err
		}
		seconds *= mult
		break
	}
	return Seconds(seconds), nil
}

// ComputeDuration returns the number of seconds between two RFC3339
// timestamps as adapters use to derive a pipeline/job's Duration field.
// Either side failing to parse, or a negative span, yields zero rather
// than an error: duration is a display nicety, not load-bearing.
func ComputeDuration(start, end string) int64 {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return 0
	}
	d := e.Sub(s)
	if d < 0 {
		return 0
	}
	return int64(d.Seconds())
}

func unitSeconds(c rune) (int64, error) {
	switch unicode.ToLower(c) {
	case 's':
		return 1, nil
	case 'm':
		return 60, nil
	case 'h':
		return 3600, nil
	case 'd':
		return 86400, nil
	default:
		return 0, fmt.Errorf("unknown time format char %q - valid types are s, m, h, d", c)
	}
}
