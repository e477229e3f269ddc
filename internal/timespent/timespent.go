// Package timespent normalizes free-text "time spent" input into the token
// form the tracker accepts: whitespace-separated <number><unit> tokens where
// the unit is one of m (minutes), h (hours), d (days), w (weeks).
package timespent

import (
	"regexp"
	"strconv"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\d*\.?\d+[mhdw]`)

// Token is a single parsed duration component, e.g. 2.5 hours.
type Token struct {
	Value float64
	Unit  byte
}

// Normalize extracts every duration token from raw, in order of appearance,
// and joins them with single spaces. Characters outside tokens are dropped,
// so "2h and 30m please" normalizes to "2h 30m". An input with no tokens
// normalizes to the empty string, which is the invalid-field signal for
// callers. Normalization is idempotent.
func Normalize(raw string) string {
	return strings.Join(tokenPattern.FindAllString(raw, -1), " ")
}

// Parse returns the duration tokens of raw in order of appearance.
func Parse(raw string) []Token {
	matches := tokenPattern.FindAllString(raw, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		value, err := strconv.ParseFloat(m[:len(m)-1], 64)
		if err != nil {
			continue
		}
		tokens = append(tokens, Token{Value: value, Unit: m[len(m)-1]})
	}
	return tokens
}

// Seconds converts raw into a total second count using the tracker's working
// time configuration: a day is hoursPerDay hours and a week is daysPerWeek
// days. Returns 0 for input with no tokens.
func Seconds(raw string, hoursPerDay, daysPerWeek float64) int64 {
	if hoursPerDay <= 0 {
		hoursPerDay = 8
	}
	if daysPerWeek <= 0 {
		daysPerWeek = 5
	}

	var total float64
	for _, token := range Parse(raw) {
		switch token.Unit {
		case 'm':
			total += token.Value * 60
		case 'h':
			total += token.Value * 3600
		case 'd':
			total += token.Value * hoursPerDay * 3600
		case 'w':
			total += token.Value * daysPerWeek * hoursPerDay * 3600
		}
	}
	return int64(total)
}
