package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// amountPattern matches the first numeric run in a monetary string,
// including thousands separators and a decimal part.
var amountPattern = regexp.MustCompile(`\d[\d,.]*`)

// ParseEstateValue extracts a dollar amount from a loosely formatted value.
// It takes the first run of digits, commas and periods in the string form
// (floats are stringified in plain decimal notation, never scientific),
// strips commas, and applies a magnitude multiplier when the remainder
// contains "million"/"thousand"/"billion" or a trailing M/K/B marker.
// Absent or unparseable input yields 0. The parser never mutates its input
// and is idempotent over its own canonical output.
//
//	"1,500,000"    -> 1500000
//	"$2.5 million" -> 2500000
//	"500K"         -> 500000
//	"" / nil       -> 0
func ParseEstateValue(value any) int64 {
	var s string
	switch t := value.(type) {
	case nil:
		return 0
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		s = strings.TrimSpace(fmt.Sprint(value))
	}
	if s == "" {
		return 0
	}

	loc := amountPattern.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	num := strings.ReplaceAll(s[loc[0]:loc[1]], ",", "")
	num = strings.TrimRight(num, ".")
	amount, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}

	rest := strings.ToLower(strings.TrimSpace(s[loc[1]:]))
	switch {
	case strings.Contains(rest, "billion") || hasMagnitudeMarker(rest, 'b'):
		amount *= 1_000_000_000
	case strings.Contains(rest, "million") || hasMagnitudeMarker(rest, 'm'):
		amount *= 1_000_000
	case strings.Contains(rest, "thousand") || hasMagnitudeMarker(rest, 'k'):
		amount *= 1_000
	}

	return int64(amount)
}

// hasMagnitudeMarker reports whether rest begins with the single-letter
// magnitude marker, not followed by another letter ("500k", "1.5M dollars"
// match; "2 months" does not).
func hasMagnitudeMarker(rest string, marker byte) bool {
	if rest == "" || rest[0] != marker {
		return false
	}
	if len(rest) == 1 {
		return true
	}
	next := rest[1]
	return next < 'a' || next > 'z'
}
