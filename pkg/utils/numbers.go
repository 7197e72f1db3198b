package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// CoerceFloat parses the longest leading decimal literal of s, after trimming
// whitespace, and returns 0 when there is none.
// e.g. "12.5" -> 12.5, " 3km" -> 3, "abc" -> 0, "" -> 0
// Non-finite results are also reported as 0.
func CoerceFloat(s string) float64 {
	literal := leadingDecimal.FindString(strings.TrimSpace(s))
	if literal == "" {
		return 0
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	return f
}
