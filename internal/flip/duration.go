package flip

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// TransitionDurationProps lists the style properties consulted for a panel's
// transition duration, in priority order.
var TransitionDurationProps = []string{
	"transition-duration",
	"-webkit-transition-duration",
	"-moz-transition-duration",
}

// Styler exposes an element's computed style.
type Styler interface {
	// ComputedStyle returns the value of prop, or "" when unset.
	ComputedStyle(prop string) string
}

// TransitionDuration returns the effective transition duration of s.
// index selects a value from a multi-value list. Missing or malformed
// values yield 0.
func TransitionDuration(s Styler, index int) time.Duration {
	if s == nil {
		return 0
	}
	value := ""
	for _, prop := range TransitionDurationProps {
		if v := s.ComputedStyle(prop); strings.TrimSpace(v) != "" {
			value = v
			break
		}
	}
	return time.Duration(ParseTransitionDuration(value, index)) * time.Millisecond
}

// ParseTransitionDuration parses a CSS duration value into milliseconds.
//
// "0.3s" -> 300, "500ms" -> 500, "0.2s, 0.1s" with index 0 -> 200.
// Values without an "ms" suffix are seconds. An empty, negative or
// unparseable value, or an index past the end of the list, yields 0.
func ParseTransitionDuration(value string, index int) int {
	fields := strings.Fields(value)
	if index < 0 || index >= len(fields) {
		return 0
	}
	v := strings.NewReplacer(";", "", ",", "").Replace(fields[index])

	scale := 1000.0
	switch {
	case strings.HasSuffix(v, "ms"):
		v = strings.TrimSuffix(v, "ms")
		scale = 1
	case strings.HasSuffix(v, "s"):
		v = strings.TrimSuffix(v, "s")
	}
	if v == "" {
		return 0
	}

	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return int(math.Round(n * scale))
}
